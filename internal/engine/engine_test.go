package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Veraticus/contas-em-dia/internal/alerts"
	"github.com/Veraticus/contas-em-dia/internal/analysis"
	"github.com/Veraticus/contas-em-dia/internal/calendar"
	"github.com/Veraticus/contas-em-dia/internal/classification"
	"github.com/Veraticus/contas-em-dia/internal/common"
	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/Veraticus/contas-em-dia/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) (*Engine, *storage.Repository) {
	t.Helper()
	repo := storage.NewRepository(storage.NewMemoryStore())
	e := New(repo)
	require.NoError(t, e.Load(context.Background()))
	return e, repo
}

func expenseInput(desc, amount, category, date string) model.TransactionInput {
	return model.TransactionInput{
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
		Type:        model.TypeExpense,
		Category:    category,
		Date:        calendar.MustParse(date),
	}
}

func TestEngine_AddTransactionPrependsAndPersists(t *testing.T) {
	ctx := context.Background()
	e, repo := newTestEngine(t)

	first, err := e.AddTransaction(ctx, expenseInput("Luz", "120", model.CategoryUtilities, "2024-05-01"))
	require.NoError(t, err)
	second, err := e.AddTransaction(ctx, expenseInput("Cinema", "40", model.CategoryEntertainment, "2024-05-02"))
	require.NoError(t, err)

	txns := e.Transactions()
	require.Len(t, txns, 2)
	assert.Equal(t, second.ID, txns[0].ID)
	assert.Equal(t, first.ID, txns[1].ID)

	stored, err := repo.LoadTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
	assert.Equal(t, second.ID, stored[0].ID)
}

func TestEngine_AddTransactionRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	_, err := e.AddTransaction(ctx, expenseInput(" ", "10", "Outros", "2024-05-01"))
	require.ErrorIs(t, err, model.ErrEmptyDescription)

	_, err = e.AddTransaction(ctx, expenseInput("Zero", "0", "Outros", "2024-05-01"))
	require.ErrorIs(t, err, model.ErrInvalidAmount)

	assert.Empty(t, e.Transactions())
}

func TestEngine_UnknownIDs(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	require.ErrorIs(t, e.DeleteTransaction(ctx, "nope"), common.ErrNotFound)
	_, err := e.ToggleTransactionPaid(ctx, "nope")
	require.ErrorIs(t, err, common.ErrNotFound)
	_, err = e.UpdateTransaction(ctx, "nope", expenseInput("x", "1", "Outros", "2024-01-01"))
	require.ErrorIs(t, err, common.ErrNotFound)
	require.ErrorIs(t, e.RemoveReminder(ctx, "nope"), common.ErrNotFound)
	_, err = e.ToggleReminder(ctx, "nope")
	require.ErrorIs(t, err, common.ErrNotFound)
	_, err = e.Transaction("nope")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestEngine_ToggleAndUpdate(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	bill, err := e.AddTransaction(ctx, expenseInput("Internet", "99.90", model.CategoryUtilities, "2024-05-01"))
	require.NoError(t, err)
	assert.False(t, bill.IsPaid)

	toggled, err := e.ToggleTransactionPaid(ctx, bill.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsPaid)

	in := expenseInput("Internet fibra", "109.90", model.CategoryUtilities, "2024-05-03")
	due := calendar.MustParse("2024-05-15")
	in.DueDate = &due
	updated, err := e.UpdateTransaction(ctx, bill.ID, in)
	require.NoError(t, err)
	assert.Equal(t, bill.ID, updated.ID)
	assert.Equal(t, "Internet fibra", updated.Description)
	assert.Equal(t, "2024-05-15", updated.DueDate.String())

	salary, err := e.AddTransaction(ctx, model.TransactionInput{
		Description: "Salário", Amount: decimal.NewFromInt(5000), Type: model.TypeIncome,
		Category: model.CategorySalary, Date: calendar.MustParse("2024-05-05"),
	})
	require.NoError(t, err)
	_, err = e.ToggleTransactionPaid(ctx, salary.ID)
	require.ErrorIs(t, err, ErrIncomeIsPaid)
}

func TestEngine_DeleteTransaction(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	a, err := e.AddTransaction(ctx, expenseInput("A", "1", "Outros", "2024-05-01"))
	require.NoError(t, err)
	b, err := e.AddTransaction(ctx, expenseInput("B", "2", "Outros", "2024-05-01"))
	require.NoError(t, err)

	require.NoError(t, e.DeleteTransaction(ctx, a.ID))
	txns := e.Transactions()
	require.Len(t, txns, 1)
	assert.Equal(t, b.ID, txns[0].ID)
}

func TestEngine_RenameCategoryCascades(t *testing.T) {
	ctx := context.Background()
	e, repo := newTestEngine(t)

	_, err := e.AddTransaction(ctx, expenseInput("Cinema", "40", model.CategoryEntertainment, "2024-05-01"))
	require.NoError(t, err)
	_, err = e.AddTransaction(ctx, expenseInput("Ônibus", "5", model.CategoryTransport, "2024-05-01"))
	require.NoError(t, err)

	n, err := e.RenameCategory(ctx, model.CategoryEntertainment, "Entretenimento")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Contains(t, e.Categories(), "Entretenimento")
	assert.NotContains(t, e.Categories(), model.CategoryEntertainment)
	for _, txn := range e.Transactions() {
		assert.NotEqual(t, model.CategoryEntertainment, txn.Category)
	}

	state, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Contains(t, state.Categories, "Entretenimento")
	assert.Equal(t, "Entretenimento", state.Transactions[1].Category)

	_, err = e.RenameCategory(ctx, "Nada", "Algo")
	require.ErrorIs(t, err, model.ErrCategoryNotFound)
	_, err = e.RenameCategory(ctx, "Entretenimento", model.CategoryTransport)
	require.ErrorIs(t, err, model.ErrCategoryExists)
}

func TestEngine_RemoveCategoryOrphans(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	_, err := e.AddTransaction(ctx, expenseInput("Cinema", "40", model.CategoryEntertainment, "2024-05-01"))
	require.NoError(t, err)

	removed, err := e.RemoveCategory(ctx, model.CategoryEntertainment)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, model.CategoryEntertainment, e.Transactions()[0].Category)
	assert.Equal(t, []string{model.CategoryEntertainment}, e.OrphanedCategories())

	removed, err = e.RemoveCategory(ctx, model.CategoryEntertainment)
	require.NoError(t, err)
	assert.False(t, removed)

	added, err := e.AddCategory(ctx, "Pets")
	require.NoError(t, err)
	assert.True(t, added)
	added, err = e.AddCategory(ctx, "Pets")
	require.NoError(t, err)
	assert.False(t, added)
	_, err = e.AddCategory(ctx, "  ")
	require.ErrorIs(t, err, model.ErrEmptyCategory)
}

func TestEngine_RemindersAndProfile(t *testing.T) {
	ctx := context.Background()
	e, repo := newTestEngine(t)

	r, err := e.AddReminder(ctx, model.ReminderInput{
		Title: "Academia", Frequency: model.FrequencyWeekly, DayOfWeek: 1,
	})
	require.NoError(t, err)
	assert.True(t, r.IsActive)

	today := calendar.MustParse("2024-05-13") // Monday
	assert.Len(t, alerts.Derive(nil, e.Reminders(), today).Firing, 1)

	toggled, err := e.ToggleReminder(ctx, r.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)
	assert.Empty(t, alerts.Derive(nil, e.Reminders(), today).Firing)

	require.NoError(t, e.RemoveReminder(ctx, r.ID))
	assert.Empty(t, e.Reminders())

	_, err = e.SaveProfile(ctx, model.UserProfile{Name: "  Ana ", Avatar: "🦊"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", e.Profile().Name)

	_, err = e.SaveProfile(ctx, model.UserProfile{Name: "Ana", Avatar: "x"})
	require.ErrorIs(t, err, model.ErrInvalidAvatar)

	stored, err := repo.LoadProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.UserProfile{Name: "Ana", Avatar: "🦊"}, stored)
}

func TestEngine_ImportTransactionsSkipsDuplicates(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	batch := []model.Transaction{
		{ID: "ofx-1", Description: "Padaria", Amount: decimal.NewFromInt(12), Type: model.TypeExpense, Category: "Outros", Date: calendar.MustParse("2024-05-01"), IsPaid: true},
		{ID: "ofx-2", Description: "Pix", Amount: decimal.NewFromInt(300), Type: model.TypeIncome, Category: "Outros", Date: calendar.MustParse("2024-05-02")},
	}

	res, err := e.ImportTransactions(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Added: 2}, res)
	assert.True(t, e.Transactions()[1].IsPaid, "income normalized to paid")

	res, err = e.ImportTransactions(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Skipped: 2}, res)
	assert.Len(t, e.Transactions(), 2)
}

func TestEngine_ResolveIDs(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	_, err := e.ImportTransactions(ctx, []model.Transaction{
		{ID: "abc-111", Description: "A", Amount: decimal.NewFromInt(1), Type: model.TypeExpense, Category: "Outros", Date: calendar.MustParse("2024-05-01")},
		{ID: "abc-222", Description: "B", Amount: decimal.NewFromInt(1), Type: model.TypeExpense, Category: "Outros", Date: calendar.MustParse("2024-05-01")},
	})
	require.NoError(t, err)

	id, err := e.ResolveTransactionID("abc-1")
	require.NoError(t, err)
	assert.Equal(t, "abc-111", id)

	_, err = e.ResolveTransactionID("abc")
	require.ErrorIs(t, err, ErrAmbiguousID)
	_, err = e.ResolveTransactionID("zzz")
	require.ErrorIs(t, err, common.ErrNotFound)
	_, err = e.ResolveReminderID("")
	require.ErrorIs(t, err, common.ErrNotFound)
}

type flakyStore struct {
	*storage.Repository
	fail bool
}

var errSave = errors.New("save failed")

func (f *flakyStore) SaveTransactions(ctx context.Context, txns []model.Transaction) error {
	if f.fail {
		return errSave
	}
	return f.Repository.SaveTransactions(ctx, txns)
}

func TestEngine_FailedSaveLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{Repository: storage.NewRepository(storage.NewMemoryStore())}
	e := New(store)
	require.NoError(t, e.Load(ctx))

	_, err := e.AddTransaction(ctx, expenseInput("A", "1", "Outros", "2024-05-01"))
	require.NoError(t, err)

	store.fail = true
	_, err = e.AddTransaction(ctx, expenseInput("B", "2", "Outros", "2024-05-01"))
	require.ErrorIs(t, err, errSave)
	assert.Len(t, e.Transactions(), 1)

	_, err = e.RenameCategory(ctx, model.CategoryOther, "Diversos")
	require.ErrorIs(t, err, errSave)
	assert.Contains(t, e.Categories(), model.CategoryOther)
}

func TestEngine_NotLoaded(t *testing.T) {
	e := New(storage.NewRepository(storage.NewMemoryStore()))
	_, err := e.AddCategory(context.Background(), "Pets")
	require.ErrorIs(t, err, ErrNotLoaded)
}

func TestEngine_SnapshotIsDeepCopy(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	in := expenseInput("Aluguel", "1200", model.CategoryHousing, "2024-05-01")
	due := calendar.MustParse("2024-05-10")
	in.DueDate = &due
	_, err := e.AddTransaction(ctx, in)
	require.NoError(t, err)

	snap := e.Snapshot()
	snap.Transactions[0].DueDate.Day = 28
	snap.Categories[0] = "changed"

	assert.Equal(t, 10, e.Transactions()[0].DueDate.Day)
	assert.NotEqual(t, "changed", e.Categories()[0])
}

func TestEngine_ConcurrentMutations(t *testing.T) {
	ctx := context.Background()
	e, repo := newTestEngine(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.AddTransaction(ctx, expenseInput("X", "1", "Outros", "2024-05-01"))
			assert.NoError(t, err)
			_ = e.Snapshot()
		}()
	}
	wg.Wait()

	assert.Len(t, e.Transactions(), 20)
	stored, err := repo.LoadTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 20)
}

func TestEngine_EndToEndScenario(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)
	today := calendar.MustParse("2024-05-10")

	bill, err := e.AddTransaction(ctx, expenseInput("Conta de luz", "100", model.CategoryUtilities, "2024-05-01"))
	require.NoError(t, err)
	_, err = e.AddTransaction(ctx, model.TransactionInput{
		Description: "Salário", Amount: decimal.NewFromInt(500), Type: model.TypeIncome,
		Category: model.CategorySalary, Date: calendar.MustParse("2024-05-05"),
	})
	require.NoError(t, err)

	snap := e.Snapshot()
	assert.Equal(t, classification.Overdue, classification.ClassifyDeadline(snap.Transactions[1], today))

	got := alerts.Derive(snap.Transactions, snap.Reminders, today)
	require.Len(t, got.Overdue, 1)
	assert.Equal(t, bill.ID, got.Overdue[0].ID)

	sum := analysis.Summarize(snap.Transactions)
	assert.True(t, decimal.NewFromInt(500).Equal(sum.TotalIncome))
	assert.True(t, decimal.NewFromInt(100).Equal(sum.TotalExpense))
	assert.True(t, decimal.NewFromInt(400).Equal(sum.Balance))

	_, err = e.ToggleTransactionPaid(ctx, bill.ID)
	require.NoError(t, err)
	assert.True(t, alerts.Derive(e.Transactions(), nil, today).Empty())
}
