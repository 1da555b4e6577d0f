// Package analysis reduces transaction lists into the totals shown on the
// dashboard and in the charts.
package analysis

import (
	"fmt"
	"sort"

	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/shopspring/decimal"
)

// FinancialSummary holds the headline totals of a transaction list.
type FinancialSummary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal
}

// CategoryTotal is the expense total of one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
	// Share is Total as a fraction of all expenses, in [0, 1].
	Share float64
}

// MonthTotal is the income and expense of one calendar month.
type MonthTotal struct {
	// Key is YYYY-MM and is what buckets sort by.
	Key     string
	Label   string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Net returns income minus expense for the month.
func (m MonthTotal) Net() decimal.Decimal {
	return m.Income.Sub(m.Expense)
}

// Summarize totals income and expense. An empty list yields zeros.
func Summarize(txns []model.Transaction) FinancialSummary {
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range txns {
		switch t.Type {
		case model.TypeIncome:
			income = income.Add(t.Amount)
		case model.TypeExpense:
			expense = expense.Add(t.Amount)
		}
	}
	return FinancialSummary{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      income.Sub(expense),
	}
}

// ByCategory groups expenses by exact category string and sorts the groups
// by total, largest first. Equal totals keep first-seen order.
func ByCategory(txns []model.Transaction) []CategoryTotal {
	index := make(map[string]int)
	var totals []CategoryTotal
	all := decimal.Zero

	for _, t := range txns {
		if t.Type != model.TypeExpense {
			continue
		}
		all = all.Add(t.Amount)
		i, ok := index[t.Category]
		if !ok {
			i = len(totals)
			index[t.Category] = i
			totals = append(totals, CategoryTotal{Category: t.Category, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(t.Amount)
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})

	if all.IsPositive() {
		for i := range totals {
			totals[i].Share = totals[i].Total.Div(all).InexactFloat64()
		}
	}
	return totals
}

// ByMonth groups every transaction by the month of its date and sorts the
// buckets chronologically.
func ByMonth(txns []model.Transaction) []MonthTotal {
	index := make(map[string]int)
	var months []MonthTotal

	for _, t := range txns {
		key := t.Date.MonthKey()
		i, ok := index[key]
		if !ok {
			i = len(months)
			index[key] = i
			months = append(months, MonthTotal{
				Key:     key,
				Label:   monthLabel(t.Date.Year, int(t.Date.Month)),
				Income:  decimal.Zero,
				Expense: decimal.Zero,
			})
		}
		switch t.Type {
		case model.TypeIncome:
			months[i].Income = months[i].Income.Add(t.Amount)
		case model.TypeExpense:
			months[i].Expense = months[i].Expense.Add(t.Amount)
		}
	}

	sort.Slice(months, func(i, j int) bool {
		return months[i].Key < months[j].Key
	})
	return months
}

var monthAbbrev = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// monthLabel renders a short month/year label such as "mai/24".
func monthLabel(year, month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%02d/%02d", month, year%100)
	}
	return fmt.Sprintf("%s/%02d", monthAbbrev[month-1], year%100)
}
