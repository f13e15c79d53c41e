// Package ledger implements the assignment allocator: the pure arithmetic
// that splits a payment's value across budgets according to an assignment
// expression.
package ledger

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/kalekundert/two-cents/internal/money"
)

var (
	ErrNoAssignmentGiven     = errors.New("no assignment given")
	ErrOverassigned          = errors.New("more money assigned than the payment is worth")
	ErrUnderassigned         = errors.New("less money assigned than the payment is worth")
	ErrImplicitShareTooSmall = errors.New("no money left over for the budgets without an explicit amount")
)

// ReservedWords are directives that interactive callers interpret before an
// expression ever reaches Allocate. They can never be budget names.
var ReservedWords = []string{"skip", "ignore", "all"}

// Reserved reports whether name collides with an assignment directive.
func Reserved(name string) bool {
	return slices.Contains(ReservedWords, name)
}

// Allocate splits value across the budgets named in expression.
//
// An expression is a whitespace-separated list of tokens. Each token is
// either a bare budget name or "name=amount", where the amount is in the
// same currency as the payment. Budgets with an amount are explicit, the
// rest are implicit: whatever the explicit budgets leave over is divided
// evenly between the implicit ones, with the division remainder going to
// the last implicit budget in expression order.
//
// All arithmetic is done on the absolute value; the sign of value is
// reapplied to every share at the end, so the shares of a debit are all
// negative and the shares of a credit are all positive. The shares always
// sum to exactly value.
//
// If a name appears twice with an explicit amount, the last occurrence
// wins. A budget named both explicitly and implicitly collapses into a
// single implicit share; the explicit amount is discarded, so unless the
// rest of the expression still covers the full value the allocation ends
// in ErrUnderassigned.
func Allocate(expression string, value int64) (map[string]int64, error) {
	tokens := strings.Fields(expression)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("'%s': %w", expression, ErrNoAssignmentGiven)
	}

	total := value
	if total < 0 {
		total = -total
	}

	var implicit []string
	shares := make(map[string]int64)

	for _, token := range tokens {
		name, amount, explicit := strings.Cut(token, "=")
		if !explicit {
			implicit = append(implicit, token)
			continue
		}

		cents, err := money.Parse(amount)
		if err != nil {
			return nil, fmt.Errorf("'%s': %w", expression, err)
		}
		if cents < 0 {
			cents = -cents
		}
		shares[name] = cents
	}

	var allocated int64
	for _, cents := range shares {
		allocated += cents
	}

	if allocated > total {
		return nil, fmt.Errorf("'%s': %w (%s)", expression, ErrOverassigned, money.Format(total))
	}

	if len(implicit) > 0 {
		remainder := total - allocated
		chunk := remainder / int64(len(implicit))

		if chunk == 0 {
			return nil, fmt.Errorf("'%s': %w", expression, ErrImplicitShareTooSmall)
		}

		for _, name := range implicit {
			shares[name] = chunk
			remainder -= chunk
		}
		shares[implicit[len(implicit)-1]] += remainder
	}

	// Without implicit budgets there is nothing to absorb the leftover, so
	// the explicit amounts have to add up exactly.
	var sum int64
	for _, cents := range shares {
		sum += cents
	}
	if sum < total {
		return nil, fmt.Errorf("'%s': %w (%s)", expression, ErrUnderassigned, money.Format(total))
	}

	if value < 0 {
		for name := range shares {
			shares[name] = -shares[name]
		}
	}

	return shares, nil
}
