package cli

import (
	"testing"

	"github.com/Veraticus/contas-em-dia/internal/alerts"
	"github.com/Veraticus/contas-em-dia/internal/analysis"
	"github.com/Veraticus/contas-em-dia/internal/calendar"
	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var today = calendar.MustParse("2024-05-10")

func sampleTxns() []model.Transaction {
	due := calendar.MustParse("2024-05-11")
	return []model.Transaction{
		{
			ID: "aaaaaaaa-1111", Description: "Internet", Amount: decimal.NewFromInt(120),
			Type: model.TypeExpense, Category: "Contas (Luz/Água)",
			Date: calendar.MustParse("2024-05-01"), DueDate: &due,
		},
		{
			ID: "bbbbbbbb-2222", Description: "Salário", Amount: decimal.NewFromInt(5000),
			Type: model.TypeIncome, Category: "Salário",
			Date: calendar.MustParse("2024-05-05"), IsPaid: true,
		},
	}
}

func intPtr(n int) *int { return &n }

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", ShortID("abc"))
	assert.Equal(t, "12345678", ShortID("1234567890"))
}

func TestScheduleLabel(t *testing.T) {
	assert.Equal(t, "Todo dia às 08:00", ScheduleLabel(model.Reminder{Frequency: model.FrequencyDaily, Time: "08:00"}))
	assert.Equal(t, "Toda segunda-feira às 09:00", ScheduleLabel(model.Reminder{Frequency: model.FrequencyWeekly, Time: "09:00", DayOfWeek: intPtr(1)}))
	assert.Equal(t, "Todo dia 10 às 09:00", ScheduleLabel(model.Reminder{Frequency: model.FrequencyMonthly, Time: "09:00", DayOfMonth: intPtr(10)}))
	assert.Equal(t, "domingo", WeekdayName(0))
	assert.Equal(t, "dia 9", WeekdayName(9))
}

func TestTransactionsTable(t *testing.T) {
	out := TransactionsTable(sampleTxns(), today)

	assert.Contains(t, out, "aaaaaaaa")
	assert.NotContains(t, out, "aaaaaaaa-1111")
	assert.Contains(t, out, "Internet")
	assert.Contains(t, out, "-R$ 120,00")
	assert.Contains(t, out, "11/05/2024")
	assert.Contains(t, out, "Vence em breve")
	assert.Contains(t, out, "+R$ 5.000,00")
	assert.Contains(t, out, "Recebido")
}

func TestTransactionDetail(t *testing.T) {
	out := TransactionDetail(sampleTxns()[0], today)
	assert.Contains(t, out, "aaaaaaaa-1111")
	assert.Contains(t, out, "Vencimento: 11/05/2024")
}

func TestSummaryView(t *testing.T) {
	out := SummaryView(model.DefaultProfile(), analysis.Summarize(sampleTxns()))
	assert.Contains(t, out, "Visitante")
	assert.Contains(t, out, "R$ 5.000,00")
	assert.Contains(t, out, "R$ 120,00")
	assert.Contains(t, out, "R$ 4.880,00")
}

func TestCategoriesAndMonths(t *testing.T) {
	txns := sampleTxns()

	cats := CategoriesTable(analysis.ByCategory(txns))
	assert.Contains(t, cats, "Contas (Luz/Água)")
	assert.Contains(t, cats, "100.0%")

	months := MonthsTable(analysis.ByMonth(txns))
	assert.Contains(t, months, "mai/24")
	assert.Contains(t, months, "R$ 4.880,00")
}

func TestAlertsView(t *testing.T) {
	assert.Contains(t, AlertsView(alerts.Alerts{}, today), "Tudo em dia")

	overdue := sampleTxns()[0]
	overdue.DueDate = nil
	amount := decimal.NewFromInt(50)
	a := alerts.Alerts{
		Overdue: []model.Transaction{overdue},
		DueSoon: sampleTxns()[:1],
		Firing:  []model.Reminder{{Title: "Pagar escola", Time: "09:00", Amount: &amount}},
	}
	out := AlertsView(a, today)
	assert.Contains(t, out, "Atrasada há 9 dia(s): Internet")
	assert.Contains(t, out, "Vence amanhã: Internet")
	assert.Contains(t, out, "Lembrete: Pagar escola às 09:00 (R$ 50,00)")
}

func TestRemindersTableAndCategories(t *testing.T) {
	out := RemindersTable([]model.Reminder{
		{ID: "r1", Title: "Academia", Frequency: model.FrequencyDaily, Time: "07:00", IsActive: true},
		{ID: "r2", Title: "Parado", Frequency: model.FrequencyDaily, Time: "07:00"},
	})
	assert.Contains(t, out, "Academia")
	assert.Contains(t, out, "sim")
	assert.Contains(t, out, "não")

	list := CategoriesList([]string{"Moradia", "Pets"}, []string{"Antiga"})
	assert.Contains(t, list, "Moradia (padrão)")
	assert.NotContains(t, list, "Pets (padrão)")
	assert.Contains(t, list, "Antiga (sem cadastro, ainda em uso)")
}
