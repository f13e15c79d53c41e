// Package importer turns raw bank transactions into payment records. It
// de-duplicates against the feed, applies match rules to fresh payments and
// moves the bank's sync window forward, all in one unit of work.
package importer

import (
	"context"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/kalekundert/two-cents/internal/models"
	"github.com/kalekundert/two-cents/internal/money"
)

// Overlap between sync windows. Banks routinely backdate transactions, so
// every sync re-fetches the previous 30 days and relies on de-duplication.
const fetchOverlapDays = 30

// Sync pulls new transactions for one bank through its connector and
// records them.
func Sync(ctx context.Context, db *gorm.DB, clock money.Clock, bank *models.Bank) (int, error) {
	conn, err := ConnectorFor(bank.ConnectorKey)
	if err != nil {
		return 0, err
	}

	since := bank.LastUpdate.AddDate(0, 0, -fetchOverlapDays)
	transactions, err := conn.FetchNewTransactions(ctx, since)
	if err != nil {
		return 0, err
	}

	return Import(db, clock, bank, transactions)
}

// Import records the given transactions as payments for a bank. Records
// whose (account ID, transaction ID) pair is already known are skipped.
// New payments matching a match rule are assigned right away; the rest
// land in the unassigned queue. Returns the number of payments created.
func Import(db *gorm.DB, clock money.Clock, bank *models.Bank, transactions []Transaction) (int, error) {
	var created int

	err := db.Transaction(func(tx *gorm.DB) error {
		rules, err := models.MatchRules(tx)
		if err != nil {
			return err
		}

		for _, t := range transactions {
			var count int64
			err := tx.Model(&models.Payment{}).
				Where(&models.Payment{AccountID: t.AccountID, TransactionID: t.TransactionID}).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			payment := models.Payment{
				BankID:        bank.ID,
				AccountID:     t.AccountID,
				TransactionID: t.TransactionID,
				Date:          t.Date,
				Value:         t.Value,
				Description:   t.Description,
			}

			err = tx.Create(&payment).Error
			if err != nil {
				return err
			}
			created++

			autoAssign(tx, rules, &payment)
		}

		bank.LastUpdate = clock()
		return tx.Model(bank).Update("last_update", bank.LastUpdate).Error
	})
	if err != nil {
		return 0, err
	}

	return created, nil
}

// autoAssign applies the first matching rule to a fresh payment. A rule
// that fails to apply, e.g. because a budget it names was deleted, only
// leaves the payment in the unassigned queue, it never fails the import.
func autoAssign(tx *gorm.DB, rules []models.MatchRule, payment *models.Payment) {
	for _, rule := range rules {
		if !rule.Matches(payment.Description) {
			continue
		}

		err := payment.Assign(tx, rule.Expression)
		if err != nil {
			log.Debug().
				Err(err).
				Str("match", rule.Match).
				Str("payment", payment.Description).
				Msg("match rule did not apply")
		}

		return
	}
}
