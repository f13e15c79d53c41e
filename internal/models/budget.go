package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/kalekundert/two-cents/internal/ledger"
	"github.com/kalekundert/two-cents/internal/money"
)

// Budget is a named bucket of money. Its balance only ever changes through
// allowance accrual and payment assignment.
type Budget struct {
	DefaultModel
	Name       string    `json:"name" gorm:"uniqueIndex:idx_budget_name,where:deleted_at IS NULL"`
	Balance    int64     `json:"balance"`             // cents
	Allowance  string    `json:"allowance,omitempty"` // "<amount> per <day|month|year>", empty for no accrual
	LastUpdate time.Time `json:"lastUpdate"`
}

// BeforeSave validates the budget name and the allowance grammar, so that
// malformed allowances are rejected when they are configured instead of
// blowing up a later accrual sweep.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Allowance = strings.TrimSpace(b.Allowance)

	if ledger.Reserved(b.Name) {
		return fmt.Errorf("%w: '%s'", ErrBudgetNameReserved, b.Name)
	}

	_, err := money.ParseRate(b.Allowance)
	return err
}

// BeforeCreate starts the accrual clock for budgets that are created
// without an explicit LastUpdate.
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	_ = b.DefaultModel.BeforeCreate(tx)

	if b.LastUpdate.IsZero() {
		b.LastUpdate = tx.NowFunc()
	}

	return nil
}

// FormattedBalance renders the balance for display.
func (b Budget) FormattedBalance() string {
	return money.Format(b.Balance)
}

// Accrue advances the budget's balance to the given time and persists the
// result. Accruing twice with the same timestamp is a no-op the second
// time.
func (b *Budget) Accrue(tx *gorm.DB, at time.Time) error {
	if at.Before(b.LastUpdate) {
		return fmt.Errorf("%w: last update %s, accrual at %s", ErrClockRegression,
			b.LastUpdate.Format(time.RFC3339), at.Format(time.RFC3339))
	}

	rate, err := money.ParseRate(b.Allowance)
	if err != nil {
		return err
	}

	b.Balance += rate.Over(at.Sub(b.LastUpdate))
	b.LastUpdate = at

	return tx.Model(b).Updates(map[string]any{
		"balance":     b.Balance,
		"last_update": b.LastUpdate,
	}).Error
}

// AccrueAll advances every budget to the given time inside one unit of
// work. Budgets accrue independently, so the order does not matter, but a
// broken clock aborts the whole sweep.
func AccrueAll(db *gorm.DB, at time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var budgets []Budget
		err := tx.Order("created_at ASC").Find(&budgets).Error
		if err != nil {
			return err
		}

		for i := range budgets {
			err = budgets[i].Accrue(tx, at)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// Budgets returns all budgets in the order they were created.
func Budgets(db *gorm.DB) ([]Budget, error) {
	var budgets []Budget
	err := db.Order("created_at ASC").Find(&budgets).Error
	return budgets, err
}

// BudgetByName looks a budget up by its unique name.
func BudgetByName(db *gorm.DB, name string) (Budget, error) {
	var budget Budget
	err := db.Where(&Budget{Name: name}).First(&budget).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrResourceNotFound) {
		return Budget{}, fmt.Errorf("%w: '%s'", ErrBudgetNotFound, name)
	}
	if err != nil {
		return Budget{}, err
	}

	return budget, nil
}

// BudgetExists reports whether a budget with this name exists.
func BudgetExists(db *gorm.DB, name string) bool {
	var count int64
	db.Model(&Budget{}).Where(&Budget{Name: name}).Count(&count)
	return count > 0
}
