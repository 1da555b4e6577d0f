package sheets

import (
	"fmt"
	"sort"

	"github.com/Veraticus/contas-em-dia/internal/analysis"
	"github.com/Veraticus/contas-em-dia/internal/calendar"
	"github.com/Veraticus/contas-em-dia/internal/classification"
	"github.com/Veraticus/contas-em-dia/internal/model"
)

// Tab titles of the exported spreadsheet.
const (
	TabSummary      = "Resumo"
	TabTransactions = "Lançamentos"
	TabCategories   = "Categorias"
	TabMonths       = "Mensal"
)

// Tab is one sheet of the export: a title and its rows.
type Tab struct {
	Title string
	Rows  [][]any
	// CurrencyColumns are zero-based columns formatted as money.
	CurrencyColumns []int
}

// Report is the full export, one Tab per sheet, in display order.
type Report struct {
	Tabs []Tab
}

// Titles returns the tab titles in order.
func (r Report) Titles() []string {
	titles := make([]string, len(r.Tabs))
	for i, tab := range r.Tabs {
		titles[i] = tab.Title
	}
	return titles
}

// BuildReport lays out txns as spreadsheet rows. Amounts are written as
// numbers so the sheet's locale formats them.
func BuildReport(profile model.UserProfile, txns []model.Transaction, today calendar.Date) Report {
	summary := analysis.Summarize(txns)

	var pending, overdue int
	for _, t := range txns {
		if t.IsPendingExpense() {
			pending++
		}
		if classification.ClassifyDeadline(t, today) == classification.Overdue {
			overdue++
		}
	}

	summaryTab := Tab{
		Title: TabSummary,
		Rows: [][]any{
			{"Contas em Dia", profile.Name},
			{"Gerado em", today.String()},
			{},
			{"Receitas", summary.TotalIncome.InexactFloat64()},
			{"Despesas", summary.TotalExpense.InexactFloat64()},
			{"Saldo", summary.Balance.InexactFloat64()},
			{},
			{"Lançamentos", len(txns)},
			{"Contas pendentes", pending},
			{"Contas atrasadas", overdue},
		},
		CurrencyColumns: []int{1},
	}

	sorted := model.CloneTransactions(txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	txRows := make([][]any, 0, len(sorted)+1)
	txRows = append(txRows, []any{"Data", "Vencimento", "Descrição", "Categoria", "Tipo", "Valor", "Situação"})
	for _, t := range sorted {
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.String()
		}
		txRows = append(txRows, []any{
			t.Date.String(),
			due,
			t.Description,
			t.Category,
			typeLabel(t.Type),
			signedAmount(t),
			classification.Describe(t, today).Label(t.Type),
		})
	}

	categories := analysis.ByCategory(txns)
	catRows := make([][]any, 0, len(categories)+1)
	catRows = append(catRows, []any{"Categoria", "Total", "Participação"})
	for _, c := range categories {
		catRows = append(catRows, []any{c.Category, c.Total.InexactFloat64(), fmt.Sprintf("%.1f%%", c.Share*100)})
	}

	months := analysis.ByMonth(txns)
	monthRows := make([][]any, 0, len(months)+1)
	monthRows = append(monthRows, []any{"Mês", "Receitas", "Despesas", "Saldo"})
	for _, m := range months {
		monthRows = append(monthRows, []any{
			m.Label,
			m.Income.InexactFloat64(),
			m.Expense.InexactFloat64(),
			m.Net().InexactFloat64(),
		})
	}

	return Report{Tabs: []Tab{
		summaryTab,
		{Title: TabTransactions, Rows: txRows, CurrencyColumns: []int{5}},
		{Title: TabCategories, Rows: catRows, CurrencyColumns: []int{1}},
		{Title: TabMonths, Rows: monthRows, CurrencyColumns: []int{1, 2, 3}},
	}}
}

func typeLabel(kind model.TransactionType) string {
	if kind == model.TypeIncome {
		return "Receita"
	}
	return "Despesa"
}

// signedAmount makes expenses negative so the column sums to the balance.
func signedAmount(t model.Transaction) float64 {
	if t.Type == model.TypeExpense {
		return t.Amount.Neg().InexactFloat64()
	}
	return t.Amount.InexactFloat64()
}
