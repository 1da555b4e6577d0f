package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/contas-em-dia/internal/common"
	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/Veraticus/contas-em-dia/internal/storage"
)

// AddTransaction validates in and puts the new transaction at the head of
// the list.
func (e *Engine) AddTransaction(ctx context.Context, in model.TransactionInput) (model.Transaction, error) {
	txn, err := model.NewTransaction(in)
	if err != nil {
		return model.Transaction{}, err
	}

	err = e.mutate(ctx, func(next *storage.State) error {
		next.Transactions = append([]model.Transaction{txn}, next.Transactions...)
		return nil
	}, e.saveTransactions)
	if err != nil {
		return model.Transaction{}, err
	}

	slog.Debug("Added transaction", "id", txn.ID, "type", txn.Type, "amount", txn.Amount.String())
	return txn.Clone(), nil
}

// ImportResult counts what ImportTransactions did.
type ImportResult struct {
	Added   int
	Skipped int
}

// ImportTransactions adds already-built transactions, skipping any whose id
// is present. New entries keep their relative order at the head of the list.
func (e *Engine) ImportTransactions(ctx context.Context, txns []model.Transaction) (ImportResult, error) {
	var result ImportResult

	err := e.mutate(ctx, func(next *storage.State) error {
		seen := make(map[string]bool, len(next.Transactions))
		for _, t := range next.Transactions {
			seen[t.ID] = true
		}

		fresh := make([]model.Transaction, 0, len(txns))
		for _, t := range txns {
			t = t.Clone()
			t.Normalize()
			if seen[t.ID] {
				result.Skipped++
				continue
			}
			if err := t.Validate(); err != nil {
				return fmt.Errorf("imported transaction %s: %w", t.ID, err)
			}
			seen[t.ID] = true
			fresh = append(fresh, t)
		}
		if len(fresh) == 0 {
			return errUnchanged
		}
		result.Added = len(fresh)
		next.Transactions = append(fresh, next.Transactions...)
		return nil
	}, e.saveTransactions)
	if err != nil {
		return ImportResult{}, err
	}
	return result, nil
}

// DeleteTransaction removes the transaction with the given id.
func (e *Engine) DeleteTransaction(ctx context.Context, id string) error {
	return e.mutate(ctx, func(next *storage.State) error {
		i := indexOfTransaction(next.Transactions, id)
		if i < 0 {
			return transactionNotFound(id)
		}
		next.Transactions = append(next.Transactions[:i], next.Transactions[i+1:]...)
		return nil
	}, e.saveTransactions)
}

// ToggleTransactionPaid flips the paid flag of an expense.
func (e *Engine) ToggleTransactionPaid(ctx context.Context, id string) (model.Transaction, error) {
	var updated model.Transaction

	err := e.mutate(ctx, func(next *storage.State) error {
		i := indexOfTransaction(next.Transactions, id)
		if i < 0 {
			return transactionNotFound(id)
		}
		if next.Transactions[i].Type == model.TypeIncome {
			return fmt.Errorf("transaction %s: %w", id, ErrIncomeIsPaid)
		}
		next.Transactions[i].IsPaid = !next.Transactions[i].IsPaid
		updated = next.Transactions[i].Clone()
		return nil
	}, e.saveTransactions)
	if err != nil {
		return model.Transaction{}, err
	}
	return updated, nil
}

// UpdateTransaction replaces every user-editable field of a transaction,
// keeping its id and position.
func (e *Engine) UpdateTransaction(ctx context.Context, id string, in model.TransactionInput) (model.Transaction, error) {
	var updated model.Transaction

	err := e.mutate(ctx, func(next *storage.State) error {
		i := indexOfTransaction(next.Transactions, id)
		if i < 0 {
			return transactionNotFound(id)
		}
		txn, err := model.NewTransaction(in)
		if err != nil {
			return err
		}
		txn.ID = id
		next.Transactions[i] = txn
		updated = txn.Clone()
		return nil
	}, e.saveTransactions)
	if err != nil {
		return model.Transaction{}, err
	}
	return updated, nil
}

// Transaction returns the transaction with the given id.
func (e *Engine) Transaction(id string) (model.Transaction, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	i := indexOfTransaction(e.state.Transactions, id)
	if i < 0 {
		return model.Transaction{}, transactionNotFound(id)
	}
	return e.state.Transactions[i].Clone(), nil
}

func indexOfTransaction(txns []model.Transaction, id string) int {
	for i, t := range txns {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func transactionNotFound(id string) error {
	return fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
}
