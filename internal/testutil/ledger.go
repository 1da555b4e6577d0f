// Package testutil builds loaded engines and transaction fixtures for tests
// outside the engine package.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/contas-em-dia/internal/calendar"
	"github.com/Veraticus/contas-em-dia/internal/engine"
	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/Veraticus/contas-em-dia/internal/storage"
	"github.com/shopspring/decimal"
)

// NewEngine returns a loaded engine backed by memory.
func NewEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e := engine.New(storage.NewRepository(storage.NewMemoryStore()))
	if err := e.Load(context.Background()); err != nil {
		t.Fatalf("failed to load engine: %v", err)
	}
	return e
}

// NewSQLiteEngine returns a loaded engine on a fresh database in a temp
// dir, plus the store for tests that reopen or back it up.
func NewSQLiteEngine(t *testing.T) (*engine.Engine, *storage.SQLiteStore) {
	t.Helper()
	ctx := context.Background()

	store, err := storage.OpenSQLiteStore(ctx, filepath.Join(t.TempDir(), "contas.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	e := engine.New(storage.NewRepository(store))
	if err := e.Load(ctx); err != nil {
		t.Fatalf("failed to load engine: %v", err)
	}
	return e, store
}

// TxBuilder is a fluent TransactionInput builder. Amounts and dates are
// strings so fixtures read like the data they describe.
type TxBuilder struct {
	in model.TransactionInput
}

// Expense starts an unpaid expense in CategoryOther.
func Expense(description, amount, date string) TxBuilder {
	return TxBuilder{in: model.TransactionInput{
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Type:        model.TypeExpense,
		Category:    model.CategoryOther,
		Date:        calendar.MustParse(date),
	}}
}

// Income starts an income in CategorySalary.
func Income(description, amount, date string) TxBuilder {
	return TxBuilder{in: model.TransactionInput{
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Type:        model.TypeIncome,
		Category:    model.CategorySalary,
		Date:        calendar.MustParse(date),
	}}
}

// Category sets the category.
func (b TxBuilder) Category(name string) TxBuilder {
	b.in.Category = name
	return b
}

// Due sets the due date.
func (b TxBuilder) Due(date string) TxBuilder {
	due := calendar.MustParse(date)
	b.in.DueDate = &due
	return b
}

// Paid marks the expense paid.
func (b TxBuilder) Paid() TxBuilder {
	b.in.IsPaid = true
	return b
}

// Input returns the built input.
func (b TxBuilder) Input() model.TransactionInput {
	return b.in
}

// Seed adds each fixture in order and returns what the engine stored.
func Seed(t *testing.T, e *engine.Engine, fixtures ...TxBuilder) []model.Transaction {
	t.Helper()
	added := make([]model.Transaction, 0, len(fixtures))
	for _, f := range fixtures {
		txn, err := e.AddTransaction(context.Background(), f.Input())
		if err != nil {
			t.Fatalf("failed to seed %q: %v", f.in.Description, err)
		}
		added = append(added, txn)
	}
	return added
}
