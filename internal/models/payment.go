package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kalekundert/two-cents/internal/ledger"
	"github.com/kalekundert/two-cents/internal/money"
)

// Payment is a single transaction pulled from a bank feed. The
// (AccountID, TransactionID) pair identifies it against the feed, so the
// same transaction is never recorded twice.
//
// A payment is in exactly one of three states: unassigned (Assignment nil,
// Ignored false), ignored, or assigned. There is deliberately no way to
// clear an assignment; reassigning always names a new destination.
type Payment struct {
	DefaultModel
	BankID        uuid.UUID `json:"bankId"`
	Bank          Bank      `json:"-"`
	AccountID     string    `json:"accountId" gorm:"uniqueIndex:payment_feed_key"`
	TransactionID string    `json:"transactionId" gorm:"uniqueIndex:payment_feed_key"`
	Date          time.Time `json:"date"`
	Value         int64     `json:"value"` // cents, negative for debits
	Description   string    `json:"description"`
	Assignment    *string   `json:"assignment"`
	Ignored       bool      `json:"ignored"`
}

// FormattedValue renders the payment value for display.
func (p Payment) FormattedValue() string {
	return money.Format(p.Value)
}

// Assign splits the payment across the budgets named in the expression.
//
// If the payment was assigned before, the old allocation is reversed
// first: each budget it named is debited the share it originally received.
// Budgets that were deleted in the meantime are skipped, and the money
// assigned to them stays lost, which is why the new allocation runs on
// AssignableValue rather than Value.
//
// The whole operation is one unit of work. If the new expression does not
// allocate, or names a budget that does not exist, nothing changes: the
// reversal is rolled back along with everything else and the payment keeps
// its previous assignment.
func (p *Payment) Assign(db *gorm.DB, expression string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if p.Assignment != nil {
			shares, err := ledger.Allocate(*p.Assignment, p.Value)
			if err != nil {
				return err
			}

			for name, share := range shares {
				budget, err := BudgetByName(tx, name)
				if errors.Is(err, ErrBudgetNotFound) {
					continue
				}
				if err != nil {
					return err
				}

				err = tx.Model(&budget).Update("balance", budget.Balance-share).Error
				if err != nil {
					return err
				}
			}
		}

		assignable, err := p.AssignableValue(tx)
		if err != nil {
			return err
		}

		shares, err := ledger.Allocate(expression, assignable)
		if err != nil {
			return err
		}

		for name, share := range shares {
			budget, err := BudgetByName(tx, name)
			if err != nil {
				return fmt.Errorf("'%s': %w", expression, err)
			}

			err = tx.Model(&budget).Update("balance", budget.Balance+share).Error
			if err != nil {
				return err
			}
		}

		p.Assignment = &expression
		p.Ignored = false

		return tx.Model(p).Updates(map[string]any{
			"assignment": expression,
			"ignored":    false,
		}).Error
	})
}

// Ignore drops the payment from the unassigned queue without touching any
// budget. Only unassigned payments can be ignored.
func (p *Payment) Ignore(db *gorm.DB) error {
	if p.Assignment != nil {
		return ErrPaymentAlreadyAssigned
	}

	p.Ignored = true
	return db.Model(p).Update("ignored", true).Error
}

// AssignableValue is the portion of the payment that can still be
// (re)allocated: its value minus the shares of the current assignment that
// went to budgets which no longer exist. It is computed from the current
// registry state on every call, never cached.
func (p Payment) AssignableValue(db *gorm.DB) (int64, error) {
	assignable := p.Value

	if p.Assignment != nil {
		shares, err := ledger.Allocate(*p.Assignment, p.Value)
		if err != nil {
			return 0, err
		}

		for name, share := range shares {
			if !BudgetExists(db, name) {
				assignable -= share
			}
		}
	}

	return assignable, nil
}

// UnassignedPayments returns every payment still waiting for the user, in
// feed order.
func UnassignedPayments(db *gorm.DB) ([]Payment, error) {
	var payments []Payment
	err := db.
		Where("assignment IS NULL AND NOT ignored").
		Order("date ASC, created_at ASC").
		Find(&payments).Error
	return payments, err
}
