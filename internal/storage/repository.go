package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/Veraticus/contas-em-dia/internal/service"
)

// Storage keys of the persisted aggregates.
const (
	KeyTransactions = "finance_app_transactions_v1"
	KeyProfile      = "finance_app_profile_v1"
	KeyCategories   = "finance_app_categories_v1"
	KeyReminders    = "finance_app_reminders_v1"
)

// State is everything the application persists.
type State struct {
	Profile      model.UserProfile
	Transactions []model.Transaction
	Categories   []string
	Reminders    []model.Reminder
}

// DefaultState is what a first run starts from.
func DefaultState() State {
	return State{
		Profile:      model.DefaultProfile(),
		Transactions: []model.Transaction{},
		Categories:   model.DefaultCategories(),
		Reminders:    []model.Reminder{},
	}
}

// Repository maps the aggregates onto JSON blobs in a KeyValueStore.
// Unreadable data is logged and replaced by defaults; only store I/O
// failures are returned as errors.
type Repository struct {
	store service.KeyValueStore
}

// NewRepository wraps store.
func NewRepository(store service.KeyValueStore) *Repository {
	return &Repository{store: store}
}

// Load reads every aggregate.
func (r *Repository) Load(ctx context.Context) (State, error) {
	var (
		s   State
		err error
	)
	if s.Transactions, err = r.LoadTransactions(ctx); err != nil {
		return State{}, err
	}
	if s.Categories, err = r.LoadCategories(ctx); err != nil {
		return State{}, err
	}
	if s.Reminders, err = r.LoadReminders(ctx); err != nil {
		return State{}, err
	}
	if s.Profile, err = r.LoadProfile(ctx); err != nil {
		return State{}, err
	}
	return s, nil
}

// storedTransaction lets a missing isPaid be told apart from false.
type storedTransaction struct {
	IsPaid *bool `json:"isPaid"`
	model.Transaction
}

// LoadTransactions decodes the transaction list. Records that fail to
// decode or validate are skipped. A missing isPaid means paid.
func (r *Repository) LoadTransactions(ctx context.Context) ([]model.Transaction, error) {
	records, err := r.loadRecords(ctx, KeyTransactions)
	if err != nil {
		return nil, err
	}

	txns := make([]model.Transaction, 0, len(records))
	for i, raw := range records {
		var st storedTransaction
		if err := json.Unmarshal(raw, &st); err != nil {
			slog.Warn("Skipping unreadable transaction", "index", i, "error", err)
			continue
		}
		txn := st.Transaction
		txn.IsPaid = st.IsPaid == nil || *st.IsPaid
		txn.Normalize()
		if err := txn.Validate(); err != nil {
			slog.Warn("Skipping invalid transaction", "index", i, "id", txn.ID, "error", err)
			continue
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// SaveTransactions replaces the stored transaction list.
func (r *Repository) SaveTransactions(ctx context.Context, txns []model.Transaction) error {
	if txns == nil {
		txns = []model.Transaction{}
	}
	return r.save(ctx, KeyTransactions, txns)
}

// LoadReminders decodes the reminder list, skipping invalid records.
func (r *Repository) LoadReminders(ctx context.Context) ([]model.Reminder, error) {
	records, err := r.loadRecords(ctx, KeyReminders)
	if err != nil {
		return nil, err
	}

	reminders := make([]model.Reminder, 0, len(records))
	for i, raw := range records {
		var rem model.Reminder
		if err := json.Unmarshal(raw, &rem); err != nil {
			slog.Warn("Skipping unreadable reminder", "index", i, "error", err)
			continue
		}
		if rem.Time == "" {
			rem.Time = model.DefaultReminderTime
		}
		if err := rem.Validate(); err != nil {
			slog.Warn("Skipping invalid reminder", "index", i, "id", rem.ID, "error", err)
			continue
		}
		reminders = append(reminders, rem)
	}
	return reminders, nil
}

// SaveReminders replaces the stored reminder list.
func (r *Repository) SaveReminders(ctx context.Context, reminders []model.Reminder) error {
	if reminders == nil {
		reminders = []model.Reminder{}
	}
	return r.save(ctx, KeyReminders, reminders)
}

// LoadCategories returns the category set, or the defaults when nothing
// usable is stored. Blank and duplicate labels are dropped.
func (r *Repository) LoadCategories(ctx context.Context) ([]string, error) {
	blob, found, err := r.get(ctx, KeyCategories)
	if err != nil {
		return nil, err
	}
	if !found {
		return model.DefaultCategories(), nil
	}

	var stored []string
	if err := json.Unmarshal(blob, &stored); err != nil {
		slog.Warn("Stored categories are unreadable, using defaults", "error", err)
		return model.DefaultCategories(), nil
	}

	categories := make([]string, 0, len(stored))
	for _, c := range stored {
		if next, added, err := model.AddCategory(categories, c); err == nil && added {
			categories = next
		}
	}
	return categories, nil
}

// SaveCategories replaces the stored category set.
func (r *Repository) SaveCategories(ctx context.Context, categories []string) error {
	if categories == nil {
		categories = []string{}
	}
	return r.save(ctx, KeyCategories, categories)
}

// LoadProfile returns the stored profile or the default one.
func (r *Repository) LoadProfile(ctx context.Context) (model.UserProfile, error) {
	blob, found, err := r.get(ctx, KeyProfile)
	if err != nil {
		return model.UserProfile{}, err
	}
	if !found {
		return model.DefaultProfile(), nil
	}

	var p model.UserProfile
	if err := json.Unmarshal(blob, &p); err != nil {
		slog.Warn("Stored profile is unreadable, using default", "error", err)
		return model.DefaultProfile(), nil
	}
	if err := p.Validate(); err != nil {
		slog.Warn("Stored profile is invalid, using default", "error", err)
		return model.DefaultProfile(), nil
	}
	return p, nil
}

// SaveProfile replaces the stored profile.
func (r *Repository) SaveProfile(ctx context.Context, p model.UserProfile) error {
	return r.save(ctx, KeyProfile, p)
}

// Close closes the underlying store.
func (r *Repository) Close() error {
	return r.store.Close()
}

func (r *Repository) get(ctx context.Context, key string) ([]byte, bool, error) {
	blob, found, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("loading %s: %w", key, err)
	}
	if found && strings.TrimSpace(string(blob)) == "" {
		return nil, false, nil
	}
	return blob, found, nil
}

// loadRecords splits a stored JSON array into raw records. A missing or
// corrupt blob yields no records.
func (r *Repository) loadRecords(ctx context.Context, key string) ([]json.RawMessage, error) {
	blob, found, err := r.get(ctx, key)
	if err != nil || !found {
		return nil, err
	}

	var records []json.RawMessage
	if err := json.Unmarshal(blob, &records); err != nil {
		slog.Warn("Stored collection is unreadable, starting empty", "key", key, "error", err)
		return nil, nil
	}
	return records, nil
}

func (r *Repository) save(ctx context.Context, key string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, blob); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}
