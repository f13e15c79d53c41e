package money

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var ErrRateFormat = errors.New("the allowance must have the form '<amount> per <day|month|year>'")

// Conversion constants for allowance rates. Months and years are fixed
// lengths so that a budget accrues at a perfectly steady rate instead of
// jumping at calendar boundaries.
var (
	daysPerYear   = decimal.NewFromInt(365)
	daysPerMonth  = daysPerYear.Div(decimal.NewFromInt(12))
	secondsPerDay = decimal.NewFromInt(86400)
)

// Rate is an allowance converted to cents per day. The fractional part is
// kept until an increment is added to a balance.
type Rate struct {
	centsPerDay decimal.Decimal
}

// ParseRate parses an allowance string like "5 per day" or "$150 per month".
// The empty string is a valid allowance meaning "no accrual".
func ParseRate(allowance string) (Rate, error) {
	if allowance == "" {
		return Rate{}, nil
	}

	tokens := strings.Fields(allowance)
	if len(tokens) != 3 || tokens[1] != "per" {
		return Rate{}, fmt.Errorf("%w: '%s'", ErrRateFormat, allowance)
	}

	amount := strings.Replace(tokens[0], "$", "", 1)
	dollars, err := decimal.NewFromString(amount)
	if err != nil {
		return Rate{}, fmt.Errorf("%w: '%s'", ErrRateFormat, allowance)
	}
	cents := dollars.Mul(decimal.NewFromInt(100))

	var days decimal.Decimal
	switch tokens[2] {
	case "day":
		days = decimal.NewFromInt(1)
	case "month":
		days = daysPerMonth
	case "year":
		days = daysPerYear
	default:
		return Rate{}, fmt.Errorf("%w: '%s'", ErrRateFormat, allowance)
	}

	return Rate{centsPerDay: cents.Div(days)}, nil
}

// IsZero reports whether the rate accrues nothing.
func (r Rate) IsZero() bool {
	return r.centsPerDay.IsZero()
}

// Over returns the cents accrued over the elapsed duration, rounded half
// away from zero. Elapsed time is continuous, not a calendar day count, so
// partial days accrue partial allowances.
func (r Rate) Over(elapsed time.Duration) int64 {
	seconds := decimal.NewFromFloat(elapsed.Seconds())
	days := seconds.Div(secondsPerDay)
	return r.centsPerDay.Mul(days).Round(0).IntPart()
}
