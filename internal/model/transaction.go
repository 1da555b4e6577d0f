// Package model defines the core domain models used throughout the application.
package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/contas-em-dia/internal/calendar"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	// TypeIncome represents money received.
	TypeIncome TransactionType = "income"
	// TypeExpense represents money spent or owed.
	TypeExpense TransactionType = "expense"
)

// MaxDescriptionLength bounds the free-text label of a transaction.
const MaxDescriptionLength = 200

// Validation errors.
var (
	ErrEmptyDescription   = errors.New("description cannot be empty")
	ErrDescriptionTooLong = errors.New("description too long")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrMissingDate        = errors.New("missing date")
	ErrMissingID          = errors.New("missing id")
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// ParseTransactionType accepts "income" or "expense" in any case.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	return t, nil
}

// Transaction represents a single recorded income or expense.
type Transaction struct {
	Date        calendar.Date   `json:"date"`
	DueDate     *calendar.Date  `json:"dueDate,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	IsPaid      bool            `json:"isPaid"`
}

// TransactionInput carries the user-supplied fields of a new transaction.
type TransactionInput struct {
	Date        calendar.Date
	DueDate     *calendar.Date
	Amount      decimal.Decimal
	Description string
	Type        TransactionType
	Category    string
	IsPaid      bool
}

// NewTransaction validates input and builds a transaction with a fresh ID.
// Income is always paid and never carries a due date.
func NewTransaction(in TransactionInput) (Transaction, error) {
	txn := Transaction{
		ID:          uuid.NewString(),
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    strings.TrimSpace(in.Category),
		Date:        in.Date,
		IsPaid:      in.IsPaid,
	}
	if in.DueDate != nil && !in.DueDate.IsZero() {
		due := *in.DueDate
		txn.DueDate = &due
	}
	txn.Normalize()

	if err := txn.Validate(); err != nil {
		return Transaction{}, err
	}
	return txn, nil
}

// Normalize enforces the type-dependent field rules in place.
func (t *Transaction) Normalize() {
	if t.Type == TypeIncome {
		t.IsPaid = true
		t.DueDate = nil
	}
	if t.DueDate != nil && t.DueDate.IsZero() {
		t.DueDate = nil
	}
}

// Validate checks the transaction invariants.
func (t Transaction) Validate() error {
	if t.ID == "" {
		return ErrMissingID
	}
	if t.Description == "" {
		return ErrEmptyDescription
	}
	if len([]rune(t.Description)) > MaxDescriptionLength {
		return fmt.Errorf("%w: max %d characters", ErrDescriptionTooLong, MaxDescriptionLength)
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !t.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, t.Type)
	}
	if t.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// EffectiveDueDate is the due date when present, otherwise the transaction date.
func (t Transaction) EffectiveDueDate() calendar.Date {
	if t.DueDate != nil && !t.DueDate.IsZero() {
		return *t.DueDate
	}
	return t.Date
}

// IsPendingExpense reports whether t is an unpaid expense.
func (t Transaction) IsPendingExpense() bool {
	return t.Type == TypeExpense && !t.IsPaid
}

// Clone returns a deep copy of t.
func (t Transaction) Clone() Transaction {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}

// CloneTransactions deep-copies a slice of transactions.
func CloneTransactions(txns []Transaction) []Transaction {
	if txns == nil {
		return nil
	}
	out := make([]Transaction, len(txns))
	for i, t := range txns {
		out[i] = t.Clone()
	}
	return out
}

// BillDraft is the best-effort result of reading a bill image. It is a
// suggestion for the user to confirm, not a stored transaction.
type BillDraft struct {
	Date        calendar.Date
	DueDate     *calendar.Date
	Amount      decimal.Decimal
	Description string
	Category    string
	Type        TransactionType
}

// Input converts the draft into a transaction input, leaving the bill unpaid.
func (b BillDraft) Input() TransactionInput {
	return TransactionInput{
		Date:        b.Date,
		DueDate:     b.DueDate,
		Amount:      b.Amount,
		Description: b.Description,
		Type:        b.Type,
		Category:    b.Category,
	}
}
