// Package engine owns the in-memory finance state and applies every
// mutation to it, persisting each committed change through a Store.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Veraticus/contas-em-dia/internal/common"
	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/Veraticus/contas-em-dia/internal/storage"
)

// Engine errors.
var (
	ErrAmbiguousID  = errors.New("id prefix matches more than one record")
	ErrIncomeIsPaid = errors.New("income is always paid")
	ErrNotLoaded    = errors.New("engine state not loaded")
)

// errUnchanged lets a mutation finish without saving.
var errUnchanged = errors.New("unchanged")

// Engine is safe for concurrent use. Mutations are read-compute-replace
// under the write lock and are saved before the lock is released, so a
// failed save leaves memory unchanged.
type Engine struct {
	store  Store
	state  storage.State
	mu     sync.RWMutex
	loaded bool
}

// New creates an engine backed by store. Call Load before use.
func New(store Store) *Engine {
	return &Engine{store: store}
}

// Load replaces the in-memory state with what the store holds.
func (e *Engine) Load(ctx context.Context) error {
	state, err := e.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = state
	e.loaded = true

	slog.Debug("Loaded state",
		"transactions", len(state.Transactions),
		"categories", len(state.Categories),
		"reminders", len(state.Reminders))
	return nil
}

// Snapshot returns a deep copy of the whole state.
func (e *Engine) Snapshot() storage.State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return storage.State{
		Profile:      e.state.Profile,
		Transactions: model.CloneTransactions(e.state.Transactions),
		Categories:   append([]string(nil), e.state.Categories...),
		Reminders:    model.CloneReminders(e.state.Reminders),
	}
}

// Transactions returns a copy of the transaction list, newest entry first.
func (e *Engine) Transactions() []model.Transaction {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return model.CloneTransactions(e.state.Transactions)
}

// Categories returns a copy of the category set.
func (e *Engine) Categories() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.state.Categories...)
}

// Reminders returns a copy of the reminder list.
func (e *Engine) Reminders() []model.Reminder {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return model.CloneReminders(e.state.Reminders)
}

// Profile returns the user profile.
func (e *Engine) Profile() model.UserProfile {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Profile
}

// OrphanedCategories lists categories used by transactions but missing
// from the category set.
func (e *Engine) OrphanedCategories() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return model.OrphanedCategories(e.state.Transactions, e.state.Categories)
}

// ResolveTransactionID expands a unique id prefix to the full id.
func (e *Engine) ResolveTransactionID(prefix string) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ids := make([]string, len(e.state.Transactions))
	for i, t := range e.state.Transactions {
		ids[i] = t.ID
	}
	return resolveID("transaction", ids, prefix)
}

// ResolveReminderID expands a unique id prefix to the full id.
func (e *Engine) ResolveReminderID(prefix string) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ids := make([]string, len(e.state.Reminders))
	for i, r := range e.state.Reminders {
		ids[i] = r.ID
	}
	return resolveID("reminder", ids, prefix)
}

func resolveID(kind string, ids []string, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%s %q: %w", kind, prefix, common.ErrNotFound)
	}

	match := ""
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			if match != "" {
				return "", fmt.Errorf("%s %q: %w", kind, prefix, ErrAmbiguousID)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("%s %q: %w", kind, prefix, common.ErrNotFound)
	}
	return match, nil
}

// mutate runs fn on a copy of the state under the write lock and commits
// the copy only if fn and save both succeed.
func (e *Engine) mutate(ctx context.Context, fn func(next *storage.State) error, save func(ctx context.Context, next storage.State) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded {
		return ErrNotLoaded
	}

	next := storage.State{
		Profile:      e.state.Profile,
		Transactions: model.CloneTransactions(e.state.Transactions),
		Categories:   append([]string(nil), e.state.Categories...),
		Reminders:    model.CloneReminders(e.state.Reminders),
	}
	if err := fn(&next); err != nil {
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}
	if err := save(ctx, next); err != nil {
		return err
	}
	e.state = next
	return nil
}

func (e *Engine) saveTransactions(ctx context.Context, next storage.State) error {
	return e.store.SaveTransactions(ctx, next.Transactions)
}

func (e *Engine) saveCategories(ctx context.Context, next storage.State) error {
	return e.store.SaveCategories(ctx, next.Categories)
}

func (e *Engine) saveReminders(ctx context.Context, next storage.State) error {
	return e.store.SaveReminders(ctx, next.Reminders)
}

func (e *Engine) saveProfile(ctx context.Context, next storage.State) error {
	return e.store.SaveProfile(ctx, next.Profile)
}
