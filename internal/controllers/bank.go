package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kalekundert/two-cents/internal/httputil"
	"github.com/kalekundert/two-cents/internal/importer"
	"github.com/kalekundert/two-cents/internal/models"
	"github.com/kalekundert/two-cents/internal/money"
)

// RegisterBankRoutes registers the routes for banks with
// the RouterGroup that is passed.
func RegisterBankRoutes(r *gin.RouterGroup, clock money.Clock) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetBanks)
		r.POST("", CreateBank)
	}

	// Bank with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetDelete)
		r.GET("/:id", GetBank)
		r.DELETE("/:id", DeleteBank)
		r.OPTIONS("/:id/payments", httputil.OptionsPost)
		r.POST("/:id/payments", ImportPayments(clock))
		r.OPTIONS("/:id/sync", httputil.OptionsPost)
		r.POST("/:id/sync", SyncBank(clock))
	}
}

// BankEditable are the fields that can be set by API callers.
type BankEditable struct {
	Name         string `json:"name"`
	ConnectorKey string `json:"connectorKey" binding:"required"`
}

// CreateBank creates a new bank record.
func CreateBank(c *gin.Context) {
	var data BankEditable
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	bank := models.Bank{
		Name:         data.Name,
		ConnectorKey: data.ConnectorKey,
	}

	err := models.DB.Create(&bank).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": bank})
}

// GetBanks returns all banks in creation order.
func GetBanks(c *gin.Context) {
	banks, err := models.Banks(models.DB)
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": banks})
}

// GetBank returns a specific bank.
func GetBank(c *gin.Context) {
	var bank models.Bank
	if !fetch(c, &bank) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": bank})
}

// DeleteBank deletes a bank record. Its payments stay in the ledger.
func DeleteBank(c *gin.Context) {
	var bank models.Bank
	if !fetch(c, &bank) {
		return
	}

	err := models.DB.Delete(&bank).Error
	if err != nil {
		httputil.ErrorHandler(c, err)
		return
	}

	c.JSON(http.StatusNoContent, gin.H{})
}

// PaymentImport is one transaction tuple as handed over by a bank-sync
// collaborator.
type PaymentImport struct {
	AccountID     string    `json:"accountId" binding:"required"`
	TransactionID string    `json:"transactionId" binding:"required"`
	Date          time.Time `json:"date" binding:"required"`
	Value         int64     `json:"value"`
	Description   string    `json:"description"`
}

// ImportPayments records a batch of raw transactions for a bank. Known
// (account ID, transaction ID) pairs are skipped, so collaborators can
// re-send overlapping windows safely.
func ImportPayments(clock money.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bank models.Bank
		if !fetch(c, &bank) {
			return
		}

		var data []PaymentImport
		if err := httputil.BindData(c, &data); err != nil {
			return
		}

		transactions := make([]importer.Transaction, 0, len(data))
		for _, t := range data {
			transactions = append(transactions, importer.Transaction{
				AccountID:     t.AccountID,
				TransactionID: t.TransactionID,
				Date:          t.Date,
				Value:         t.Value,
				Description:   t.Description,
			})
		}

		created, err := importer.Import(models.DB, clock, &bank, transactions)
		if err != nil {
			httputil.ErrorHandler(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"data": bank, "created": created})
	}
}

// SyncBank pulls new transactions through the connector configured for the
// bank.
func SyncBank(clock money.Clock) gin.HandlerFunc {
	return func(c *gin.Context) {
		var bank models.Bank
		if !fetch(c, &bank) {
			return
		}

		created, err := importer.Sync(c.Request.Context(), models.DB, clock, &bank)
		if err != nil {
			httputil.ErrorHandler(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": bank, "created": created})
	}
}
