package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	e := NewEngine(t)

	added := Seed(t, e,
		Expense("Aluguel", "1500", "2024-05-01").Category(model.CategoryHousing).Due("2024-05-05"),
		Income("Salário", "5000", "2024-05-05"),
		Expense("Padaria", "12.50", "2024-05-06").Paid(),
	)
	require.Len(t, added, 3)

	assert.Equal(t, model.CategoryHousing, added[0].Category)
	require.NotNil(t, added[0].DueDate)
	assert.Equal(t, "2024-05-05", added[0].DueDate.String())
	assert.Equal(t, model.CategorySalary, added[1].Category)
	assert.True(t, added[1].IsPaid)
	assert.True(t, added[2].IsPaid)

	txns := e.Transactions()
	require.Len(t, txns, 3)
	assert.Equal(t, "Padaria", txns[0].Description, "newest first")
}

func TestNewSQLiteEngineReloads(t *testing.T) {
	e, store := NewSQLiteEngine(t)
	Seed(t, e, Expense("Mercado", "80", "2024-05-01"))

	keys, err := store.Keys(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, keys)

	require.NoError(t, e.Load(context.Background()))
	assert.Len(t, e.Transactions(), 1)
}
