package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Bank is one institution the payment feed pulls from. ConnectorKey
// selects the connector implementation that talks to it; credential
// handling lives with the connectors, not here.
type Bank struct {
	DefaultModel
	Name         string    `json:"name"`
	ConnectorKey string    `json:"connectorKey" gorm:"uniqueIndex"`
	LastUpdate   time.Time `json:"lastUpdate"`
}

func (b *Bank) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	b.ConnectorKey = strings.TrimSpace(b.ConnectorKey)
	return nil
}

// BeforeCreate starts the sync window for banks created without an
// explicit LastUpdate.
func (b *Bank) BeforeCreate(tx *gorm.DB) error {
	_ = b.DefaultModel.BeforeCreate(tx)

	if b.LastUpdate.IsZero() {
		b.LastUpdate = tx.NowFunc()
	}

	return nil
}

// Banks returns all banks in the order they were created.
func Banks(db *gorm.DB) ([]Bank, error) {
	var banks []Bank
	err := db.Order("created_at ASC").Find(&banks).Error
	return banks, err
}
