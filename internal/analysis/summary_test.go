package analysis

import (
	"testing"

	"github.com/Veraticus/contas-em-dia/internal/calendar"
	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txn(kind model.TransactionType, amount, category, date string) model.Transaction {
	return model.Transaction{
		ID:          category + date + amount,
		Description: category,
		Amount:      decimal.RequireFromString(amount),
		Type:        kind,
		Category:    category,
		Date:        calendar.MustParse(date),
		IsPaid:      true,
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		txns    []model.Transaction
		income  string
		expense string
		balance string
	}{
		{name: "empty", income: "0", expense: "0", balance: "0"},
		{
			name: "mixed",
			txns: []model.Transaction{
				txn(model.TypeExpense, "100", "Moradia", "2024-05-01"),
				txn(model.TypeIncome, "500", "Salário", "2024-05-01"),
			},
			income: "500", expense: "100", balance: "400",
		},
		{
			name: "negative balance with cents",
			txns: []model.Transaction{
				txn(model.TypeExpense, "0.10", "Lazer", "2024-05-01"),
				txn(model.TypeExpense, "0.20", "Lazer", "2024-05-02"),
				txn(model.TypeIncome, "0.15", "Outros", "2024-05-03"),
			},
			income: "0.15", expense: "0.30", balance: "-0.15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.txns)
			assertDecimal(t, tt.income, s.TotalIncome)
			assertDecimal(t, tt.expense, s.TotalExpense)
			assertDecimal(t, tt.balance, s.Balance)
			assert.True(t, s.Balance.Equal(s.TotalIncome.Sub(s.TotalExpense)))
		})
	}
}

func TestByCategory(t *testing.T) {
	txns := []model.Transaction{
		txn(model.TypeExpense, "30", "Lazer", "2024-05-01"),
		txn(model.TypeExpense, "50", "Moradia", "2024-05-02"),
		txn(model.TypeIncome, "1000", "Salário", "2024-05-03"),
		txn(model.TypeExpense, "20", "Lazer", "2024-05-04"),
		txn(model.TypeExpense, "50", "Transporte", "2024-05-05"),
		txn(model.TypeExpense, "10", "lazer", "2024-05-06"),
	}

	got := ByCategory(txns)
	require.Len(t, got, 4)

	// Lazer (50) was seen before Moradia (50) and Transporte (50).
	assert.Equal(t, "Lazer", got[0].Category)
	assertDecimal(t, "50", got[0].Total)
	assert.Equal(t, "Moradia", got[1].Category)
	assert.Equal(t, "Transporte", got[2].Category)
	assert.Equal(t, "lazer", got[3].Category, "grouping is case-sensitive")
	assertDecimal(t, "10", got[3].Total)

	assert.InDelta(t, 50.0/160.0, got[0].Share, 1e-9)
	assert.Empty(t, ByCategory([]model.Transaction{txn(model.TypeIncome, "1", "Salário", "2024-01-01")}))
}

func TestByMonth(t *testing.T) {
	txns := []model.Transaction{
		txn(model.TypeExpense, "100", "Moradia", "2024-05-01"),
		txn(model.TypeIncome, "500", "Salário", "2023-12-20"),
		txn(model.TypeIncome, "300", "Salário", "2024-05-15"),
		txn(model.TypeExpense, "40", "Lazer", "2024-01-31"),
	}

	got := ByMonth(txns)
	require.Len(t, got, 3)

	assert.Equal(t, []string{"2023-12", "2024-01", "2024-05"}, []string{got[0].Key, got[1].Key, got[2].Key})
	assert.Equal(t, "dez/23", got[0].Label)
	assertDecimal(t, "500", got[0].Income)
	assertDecimal(t, "0", got[0].Expense)
	assertDecimal(t, "40", got[1].Expense)
	assertDecimal(t, "300", got[2].Income)
	assertDecimal(t, "100", got[2].Expense)
	assertDecimal(t, "200", got[2].Net())
}

func TestAggregationsAreIdempotent(t *testing.T) {
	txns := []model.Transaction{
		txn(model.TypeExpense, "10", "B", "2024-02-01"),
		txn(model.TypeExpense, "20", "A", "2024-01-01"),
		txn(model.TypeIncome, "5", "C", "2024-03-01"),
	}
	before := model.CloneTransactions(txns)

	assert.Equal(t, Summarize(txns), Summarize(txns))
	assert.Equal(t, ByCategory(txns), ByCategory(txns))
	assert.Equal(t, ByMonth(txns), ByMonth(txns))
	assert.Equal(t, before, txns, "inputs must not be reordered or modified")
}
