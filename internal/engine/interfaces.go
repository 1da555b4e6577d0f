package engine

import (
	"context"

	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/Veraticus/contas-em-dia/internal/storage"
)

// Store persists the aggregates the engine owns. storage.Repository
// satisfies it.
type Store interface {
	Load(ctx context.Context) (storage.State, error)
	SaveTransactions(ctx context.Context, txns []model.Transaction) error
	SaveCategories(ctx context.Context, categories []string) error
	SaveReminders(ctx context.Context, reminders []model.Reminder) error
	SaveProfile(ctx context.Context, profile model.UserProfile) error
}

var _ Store = (*storage.Repository)(nil)
