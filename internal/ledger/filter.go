// Package ledger filters, sorts and pages the transaction list shown in the
// history views.
package ledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/contas-em-dia/internal/model"
)

// TypeFilter restricts the ledger to one transaction type.
type TypeFilter string

const (
	// TypeAll shows every transaction.
	TypeAll TypeFilter = "all"
	// TypeIncome shows incomes only.
	TypeIncome TypeFilter = "income"
	// TypeExpense shows expenses only.
	TypeExpense TypeFilter = "expense"
)

// ParseTypeFilter accepts all, income or expense. An empty string means all.
func ParseTypeFilter(s string) (TypeFilter, error) {
	f := TypeFilter(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return TypeAll, nil
	case TypeAll, TypeIncome, TypeExpense:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", model.ErrInvalidType, s)
	}
}

func (f TypeFilter) matches(t model.TransactionType) bool {
	switch f {
	case "", TypeAll:
		return true
	default:
		return string(f) == string(t)
	}
}

// Filters are the user-selected predicates. Empty bounds are open.
// Bounds are inclusive and compared as YYYY-MM-DD strings.
type Filters struct {
	StartDate string
	EndDate   string
	Type      TypeFilter
}

// IsZero reports whether no predicate is set.
func (f Filters) IsZero() bool {
	return f.StartDate == "" && f.EndDate == "" && (f.Type == "" || f.Type == TypeAll)
}

// Match reports whether t passes every predicate.
func (f Filters) Match(t model.Transaction) bool {
	date := t.Date.String()
	if f.StartDate != "" && date < f.StartDate {
		return false
	}
	if f.EndDate != "" && date > f.EndDate {
		return false
	}
	return f.Type.matches(t.Type)
}

// Apply returns the transactions matching f, newest date first. Equal dates
// keep their collection order. txns is left untouched.
func Apply(txns []model.Transaction, f Filters) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if f.Match(t) {
			out = append(out, t.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
