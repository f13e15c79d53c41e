package models_test

import (
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalekundert/two-cents/internal/ledger"
	"github.com/kalekundert/two-cents/internal/models"
)

func (suite *TestSuiteStandard) TestPaymentAssign() {
	_ = suite.createTestBudget(models.Budget{Name: "groceries"})
	payment := suite.createTestPayment(models.Payment{Value: -5000})

	err := payment.Assign(models.DB, "groceries")
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), int64(-5000), suite.balanceOf("groceries"))
	require.NotNil(suite.T(), payment.Assignment)
	assert.Equal(suite.T(), "groceries", *payment.Assignment)
	assert.False(suite.T(), payment.Ignored)
}

func (suite *TestSuiteStandard) TestPaymentAssignSplit() {
	_ = suite.createTestBudget(models.Budget{Name: "rent"})
	_ = suite.createTestBudget(models.Budget{Name: "groceries"})
	payment := suite.createTestPayment(models.Payment{Value: 100000})

	err := payment.Assign(models.DB, "rent=700 groceries")
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), int64(70000), suite.balanceOf("rent"))
	assert.Equal(suite.T(), int64(30000), suite.balanceOf("groceries"))
}

func (suite *TestSuiteStandard) TestPaymentAssignUnknownBudget() {
	_ = suite.createTestBudget(models.Budget{Name: "groceries"})
	payment := suite.createTestPayment(models.Payment{Value: -5000})

	err := payment.Assign(models.DB, "groceries missing")
	assert.ErrorIs(suite.T(), err, models.ErrBudgetNotFound)

	// All-or-nothing: the known budget was not credited either.
	assert.Equal(suite.T(), int64(0), suite.balanceOf("groceries"))
	assert.Nil(suite.T(), payment.Assignment)
}

func (suite *TestSuiteStandard) TestPaymentAssignBadExpression() {
	_ = suite.createTestBudget(models.Budget{Name: "groceries"})
	payment := suite.createTestPayment(models.Payment{Value: -5000})

	err := payment.Assign(models.DB, "")
	assert.ErrorIs(suite.T(), err, ledger.ErrNoAssignmentGiven)
	assert.Equal(suite.T(), int64(0), suite.balanceOf("groceries"))
}

// Assigning the same expression twice leaves the same balances as
// assigning it once.
func (suite *TestSuiteStandard) TestPaymentReassignIdempotent() {
	_ = suite.createTestBudget(models.Budget{Name: "food"})
	_ = suite.createTestBudget(models.Budget{Name: "fun"})
	payment := suite.createTestPayment(models.Payment{Value: -10000})

	require.Nil(suite.T(), payment.Assign(models.DB, "food=60 fun"))
	require.Nil(suite.T(), payment.Assign(models.DB, "food=60 fun"))

	assert.Equal(suite.T(), int64(-6000), suite.balanceOf("food"))
	assert.Equal(suite.T(), int64(-4000), suite.balanceOf("fun"))
}

// Assigning to X and then to Y leaves the same balances as assigning to Y
// directly.
func (suite *TestSuiteStandard) TestPaymentReassignReverses() {
	_ = suite.createTestBudget(models.Budget{Name: "food"})
	_ = suite.createTestBudget(models.Budget{Name: "fun"})
	payment := suite.createTestPayment(models.Payment{Value: -10000})

	require.Nil(suite.T(), payment.Assign(models.DB, "food=60 fun"))
	require.Nil(suite.T(), payment.Assign(models.DB, "food"))

	assert.Equal(suite.T(), int64(-10000), suite.balanceOf("food"))
	assert.Equal(suite.T(), int64(0), suite.balanceOf("fun"))
}

// A failed reassignment must not leave the payment half reversed: the old
// allocation stays in place.
func (suite *TestSuiteStandard) TestPaymentReassignFailureAtomic() {
	_ = suite.createTestBudget(models.Budget{Name: "food"})
	_ = suite.createTestBudget(models.Budget{Name: "fun"})
	payment := suite.createTestPayment(models.Payment{Value: -10000})

	require.Nil(suite.T(), payment.Assign(models.DB, "food=60 fun"))

	err := payment.Assign(models.DB, "missing")
	assert.ErrorIs(suite.T(), err, models.ErrBudgetNotFound)

	assert.Equal(suite.T(), int64(-6000), suite.balanceOf("food"))
	assert.Equal(suite.T(), int64(-4000), suite.balanceOf("fun"))

	var reloaded models.Payment
	require.Nil(suite.T(), models.DB.First(&reloaded, "id = ?", payment.ID).Error)
	require.NotNil(suite.T(), reloaded.Assignment)
	assert.Equal(suite.T(), "food=60 fun", *reloaded.Assignment)
}

// Money assigned to a budget that was deleted afterwards is gone: a
// reassignment only redistributes what is still assignable.
func (suite *TestSuiteStandard) TestPaymentDeletedBudgetContainment() {
	a := suite.createTestBudget(models.Budget{Name: "a"})
	_ = suite.createTestBudget(models.Budget{Name: "b"})
	payment := suite.createTestPayment(models.Payment{Value: -10000})

	require.Nil(suite.T(), payment.Assign(models.DB, "a=60 b"))
	require.Nil(suite.T(), models.DB.Delete(&a).Error)

	assignable, err := payment.AssignableValue(models.DB)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(-4000), assignable)

	require.Nil(suite.T(), payment.Assign(models.DB, "b"))
	assert.Equal(suite.T(), int64(-4000), suite.balanceOf("b"))
}

func (suite *TestSuiteStandard) TestPaymentAssignableValueUnassigned() {
	payment := suite.createTestPayment(models.Payment{Value: -5000})

	assignable, err := payment.AssignableValue(models.DB)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), int64(-5000), assignable)
}

func (suite *TestSuiteStandard) TestPaymentIgnore() {
	payment := suite.createTestPayment(models.Payment{Value: -5000})

	require.Nil(suite.T(), payment.Ignore(models.DB))
	assert.True(suite.T(), payment.Ignored)

	unassigned, err := models.UnassignedPayments(models.DB)
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), unassigned, 0)
}

func (suite *TestSuiteStandard) TestPaymentIgnoreAssigned() {
	_ = suite.createTestBudget(models.Budget{Name: "groceries"})
	payment := suite.createTestPayment(models.Payment{Value: -5000})

	require.Nil(suite.T(), payment.Assign(models.DB, "groceries"))

	err := payment.Ignore(models.DB)
	assert.ErrorIs(suite.T(), err, models.ErrPaymentAlreadyAssigned)
}

// Assigning an ignored payment pulls it back out of the ignored state.
func (suite *TestSuiteStandard) TestPaymentAssignClearsIgnored() {
	_ = suite.createTestBudget(models.Budget{Name: "groceries"})
	payment := suite.createTestPayment(models.Payment{Value: -5000})

	require.Nil(suite.T(), payment.Ignore(models.DB))
	require.Nil(suite.T(), payment.Assign(models.DB, "groceries"))

	assert.False(suite.T(), payment.Ignored)
}

func (suite *TestSuiteStandard) TestUnassignedPayments() {
	_ = suite.createTestBudget(models.Budget{Name: "groceries"})

	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	second := suite.createTestPayment(models.Payment{Value: -100, Date: newer})
	first := suite.createTestPayment(models.Payment{Value: -200, Date: older})
	assigned := suite.createTestPayment(models.Payment{Value: -300, Date: older})
	ignored := suite.createTestPayment(models.Payment{Value: -400, Date: older})

	require.Nil(suite.T(), assigned.Assign(models.DB, "groceries"))
	require.Nil(suite.T(), ignored.Ignore(models.DB))

	unassigned, err := models.UnassignedPayments(models.DB)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), unassigned, 2)

	assert.Equal(suite.T(), first.ID, unassigned[0].ID)
	assert.Equal(suite.T(), second.ID, unassigned[1].ID)
}

func (suite *TestSuiteStandard) TestPaymentDeduplicationKey() {
	payment := suite.createTestPayment(models.Payment{Value: -100})

	err := models.DB.Create(&models.Payment{
		BankID:        payment.BankID,
		AccountID:     payment.AccountID,
		TransactionID: payment.TransactionID,
		Value:         -100,
	}).Error
	assert.ErrorIs(suite.T(), err, models.ErrPaymentNotUnique)
}

// The payment feed always knows which bank a transaction came from, and
// the schema enforces it.
func (suite *TestSuiteStandard) TestPaymentRequiresBank() {
	err := models.DB.Create(&models.Payment{
		AccountID:     "1234",
		TransactionID: "a",
		Value:         -100,
	}).Error
	assert.NotNil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestPaymentFormattedValue() {
	payment := models.Payment{Value: -5000}
	assert.Equal(suite.T(), "-$50.00", payment.FormattedValue())
}
