// Package money holds the monetary primitives for two-cents.
//
// All stored amounts are signed integers in cents. Parsing and rate
// arithmetic go through shopspring/decimal so that no floating point
// error can creep into a balance; rounding to whole cents happens in
// exactly one place, see Rate.Over.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrMoneyFormat = errors.New("the amount must be a decimal number, optionally preceded by a currency symbol")

// Parse converts a user-supplied amount to cents.
//
// A single dollar sign is allowed anywhere a user would plausibly put it,
// i.e. "5", "$5", "-$5" and "$-5" all parse. Fractional cents are rounded
// half away from zero.
func Parse(input string) (int64, error) {
	s := strings.TrimSpace(input)
	s = strings.Replace(s, "$", "", 1)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: '%s'", ErrMoneyFormat, input)
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// Format renders cents as a dollar string, e.g. -150 becomes "-$1.50".
// Negative amounts always get a leading minus sign, never parentheses.
func Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
