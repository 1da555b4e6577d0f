package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCategory(t *testing.T) {
	set := DefaultCategories()

	next, added, err := AddCategory(set, "  Pets ")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, "Pets", next[len(next)-1])
	assert.Len(t, set, len(DefaultCategories()), "input set must not change")

	same, added, err := AddCategory(next, "Pets")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, next, same)

	_, _, err = AddCategory(set, " ")
	assert.ErrorIs(t, err, ErrEmptyCategory)
}

func TestRenameCategoryCascadesToTransactions(t *testing.T) {
	set := DefaultCategories()
	txns := []Transaction{
		{ID: "1", Category: "Lazer"},
		{ID: "2", Category: "Moradia"},
		{ID: "3", Category: "Lazer"},
	}

	nextSet, nextTxns, updated, err := RenameCategory(set, txns, "Lazer", "Entretenimento")
	require.NoError(t, err)

	assert.Equal(t, 2, updated)
	assert.Contains(t, nextSet, "Entretenimento")
	assert.NotContains(t, nextSet, "Lazer")
	assert.Equal(t, "Entretenimento", nextTxns[0].Category)
	assert.Equal(t, "Moradia", nextTxns[1].Category)
	assert.Equal(t, "Entretenimento", nextTxns[2].Category)

	// Inputs are untouched.
	assert.Equal(t, "Lazer", txns[0].Category)
	assert.Contains(t, set, "Lazer")
}

func TestRenameCategoryErrors(t *testing.T) {
	set := DefaultCategories()

	_, _, _, err := RenameCategory(set, nil, "Nope", "Other")
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	_, _, _, err = RenameCategory(set, nil, "Lazer", "Moradia")
	assert.ErrorIs(t, err, ErrCategoryExists)

	_, _, _, err = RenameCategory(set, nil, "Lazer", "")
	assert.ErrorIs(t, err, ErrEmptyCategory)
}

func TestRemoveCategoryOrphansTransactions(t *testing.T) {
	set := DefaultCategories()
	txns := []Transaction{{ID: "1", Category: "Lazer"}, {ID: "2", Category: "Moradia"}}

	next, removed := RemoveCategory(set, "Lazer")
	assert.True(t, removed)
	assert.NotContains(t, next, "Lazer")
	assert.Equal(t, "Lazer", txns[0].Category)

	assert.Equal(t, []string{"Lazer"}, OrphanedCategories(txns, next))
	assert.Empty(t, OrphanedCategories(txns, set))

	_, removed = RemoveCategory(next, "Lazer")
	assert.False(t, removed)
}

func TestIsDefaultCategory(t *testing.T) {
	assert.True(t, IsDefaultCategory(CategorySalary))
	assert.False(t, IsDefaultCategory("Pets"))
}
