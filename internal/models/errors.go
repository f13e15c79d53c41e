package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	ErrBudgetNameNotUnique = errors.New("the budget name must be unique")
	ErrBudgetNameReserved  = errors.New("this name is reserved for assignment directives")
	ErrBudgetNotFound      = errors.New("there is no budget with this name")

	ErrBankConnectorNotUnique = errors.New("the bank connector key must be unique")

	ErrPaymentAlreadyAssigned = errors.New("the payment is already assigned to budgets")
	ErrPaymentNotUnique       = errors.New("this bank transaction has already been recorded")

	ErrClockRegression = errors.New("the clock went backwards, refusing to accrue over negative time")
)
