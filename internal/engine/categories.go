package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/Veraticus/contas-em-dia/internal/storage"
)

// AddCategory appends name to the set. It reports false, without saving,
// when the label already exists.
func (e *Engine) AddCategory(ctx context.Context, name string) (bool, error) {
	added := false
	err := e.mutate(ctx, func(next *storage.State) error {
		set, ok, err := model.AddCategory(next.Categories, name)
		if err != nil {
			return err
		}
		if !ok {
			return errUnchanged
		}
		next.Categories = set
		added = true
		return nil
	}, e.saveCategories)
	return added, err
}

// RemoveCategory drops name from the set. Transactions keep the label and
// become orphaned. It reports false when name was not in the set.
func (e *Engine) RemoveCategory(ctx context.Context, name string) (bool, error) {
	removed := false
	err := e.mutate(ctx, func(next *storage.State) error {
		set, ok := model.RemoveCategory(next.Categories, name)
		if !ok {
			return errUnchanged
		}
		next.Categories = set
		removed = true
		return nil
	}, e.saveCategories)
	return removed, err
}

// RenameCategory renames a category and every transaction that uses it,
// persisting both collections. It returns the number of transactions moved.
func (e *Engine) RenameCategory(ctx context.Context, oldName, newName string) (int, error) {
	updated := 0
	err := e.mutate(ctx, func(next *storage.State) error {
		set, txns, n, err := model.RenameCategory(next.Categories, next.Transactions, oldName, newName)
		if err != nil {
			return fmt.Errorf("rename %q: %w", oldName, err)
		}
		next.Categories = set
		next.Transactions = txns
		updated = n
		return nil
	}, e.saveRename)
	return updated, err
}

// saveRename writes transactions then categories. If the second write fails
// the first is rolled back so the store never holds half a rename.
func (e *Engine) saveRename(ctx context.Context, next storage.State) error {
	if err := e.store.SaveTransactions(ctx, next.Transactions); err != nil {
		return err
	}
	if err := e.store.SaveCategories(ctx, next.Categories); err != nil {
		if rollbackErr := e.store.SaveTransactions(ctx, e.state.Transactions); rollbackErr != nil {
			slog.Error("Failed to roll back transactions after rename", "error", rollbackErr)
		}
		return err
	}
	return nil
}
