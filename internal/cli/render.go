package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/contas-em-dia/internal/alerts"
	"github.com/Veraticus/contas-em-dia/internal/analysis"
	"github.com/Veraticus/contas-em-dia/internal/calendar"
	"github.com/Veraticus/contas-em-dia/internal/classification"
	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// ShortIDLength is how much of an id the tables show. Commands accept any
// unique prefix.
const ShortIDLength = 8

// ShortID truncates an id for display.
func ShortID(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}

var weekdayNames = [...]string{"domingo", "segunda-feira", "terça-feira", "quarta-feira", "quinta-feira", "sexta-feira", "sábado"}

// WeekdayName is the Portuguese name of day (0 = domingo).
func WeekdayName(day int) string {
	if day < 0 || day >= len(weekdayNames) {
		return fmt.Sprintf("dia %d", day)
	}
	return weekdayNames[day]
}

// ScheduleLabel describes when a reminder fires.
func ScheduleLabel(r model.Reminder) string {
	switch r.Frequency {
	case model.FrequencyDaily:
		return "Todo dia às " + r.Time
	case model.FrequencyWeekly:
		if r.DayOfWeek != nil {
			return fmt.Sprintf("Toda %s às %s", WeekdayName(*r.DayOfWeek), r.Time)
		}
	case model.FrequencyMonthly:
		if r.DayOfMonth != nil {
			return fmt.Sprintf("Todo dia %d às %s", *r.DayOfMonth, r.Time)
		}
	}
	return string(r.Frequency)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})
}

func statusStyle(s classification.Status) lipgloss.Style {
	switch s.Deadline {
	case classification.Overdue:
		return ErrorStyle
	case classification.DueSoon:
		return WarningStyle
	}
	if s.Pending {
		return InfoStyle
	}
	return SubtleStyle
}

func amountStyle(kind model.TransactionType) lipgloss.Style {
	if kind == model.TypeIncome {
		return IncomeStyle
	}
	return ExpenseStyle
}

// TransactionsTable lists transactions with their status on today.
func TransactionsTable(txns []model.Transaction, today calendar.Date) string {
	t := newTable("ID", "Data", "Vencimento", "Descrição", "Categoria", "Valor", "Situação")
	for _, txn := range txns {
		due := ""
		if txn.DueDate != nil {
			due = FormatDate(*txn.DueDate)
		}
		status := classification.Describe(txn, today)
		t.Row(
			ShortID(txn.ID),
			FormatDate(txn.Date),
			due,
			txn.Description,
			txn.Category,
			amountStyle(txn.Type).Render(FormatSigned(txn)),
			statusStyle(status).Render(status.Label(txn.Type)),
		)
	}
	return t.String()
}

// TransactionDetail renders one transaction as labeled lines.
func TransactionDetail(txn model.Transaction, today calendar.Date) string {
	status := classification.Describe(txn, today)
	lines := []string{
		"ID:         " + txn.ID,
		"Descrição:  " + txn.Description,
		"Valor:      " + amountStyle(txn.Type).Render(FormatSigned(txn)),
		"Categoria:  " + txn.Category,
		"Data:       " + FormatDate(txn.Date),
	}
	if txn.DueDate != nil {
		lines = append(lines, "Vencimento: "+FormatDate(*txn.DueDate))
	}
	lines = append(lines, "Situação:   "+statusStyle(status).Render(status.Label(txn.Type)))
	return strings.Join(lines, "\n")
}

// SummaryView renders the dashboard totals.
func SummaryView(profile model.UserProfile, s analysis.FinancialSummary) string {
	balanceStyle := IncomeStyle
	if s.Balance.IsNegative() {
		balanceStyle = ExpenseStyle
	}
	content := strings.Join([]string{
		"Receitas: " + IncomeStyle.Render(FormatBRL(s.TotalIncome)),
		"Despesas: " + ExpenseStyle.Render(FormatBRL(s.TotalExpense)),
		"Saldo:    " + balanceStyle.Bold(true).Render(FormatBRL(s.Balance)),
	}, "\n")
	return RenderBox(fmt.Sprintf("%s Olá, %s", profile.Avatar, profile.Name), content)
}

// CategoriesTable renders expense totals with a share bar.
func CategoriesTable(totals []analysis.CategoryTotal) string {
	t := newTable("Categoria", "Total", "%", "")
	for _, c := range totals {
		t.Row(c.Category, FormatBRL(c.Total), fmt.Sprintf("%.1f%%", c.Share*100), shareBar(c.Share, 20))
	}
	return t.String()
}

func shareBar(share float64, width int) string {
	filled := int(share*float64(width) + 0.5)
	filled = max(0, min(width, filled))
	return ExpenseStyle.Render(strings.Repeat("█", filled)) + SubtleStyle.Render(strings.Repeat("░", width-filled))
}

// MonthsTable renders income and expense per month.
func MonthsTable(months []analysis.MonthTotal) string {
	t := newTable("Mês", "Receitas", "Despesas", "Saldo")
	for _, m := range months {
		net := m.Net()
		netStyle := IncomeStyle
		if net.IsNegative() {
			netStyle = ExpenseStyle
		}
		t.Row(m.Label, IncomeStyle.Render(FormatBRL(m.Income)), ExpenseStyle.Render(FormatBRL(m.Expense)), netStyle.Render(FormatBRL(net)))
	}
	return t.String()
}

// AlertsView renders the notification banners. It returns a friendly line
// when there is nothing to show.
func AlertsView(a alerts.Alerts, today calendar.Date) string {
	if a.Empty() {
		return FormatSuccess("Tudo em dia! Nenhuma conta ou lembrete para hoje.")
	}

	var b strings.Builder
	for _, t := range a.Overdue {
		days := -today.DaysUntil(t.EffectiveDueDate())
		b.WriteString(FormatError(fmt.Sprintf("Atrasada há %d dia(s): %s (%s), venceu em %s",
			days, t.Description, FormatBRL(t.Amount), FormatDate(t.EffectiveDueDate()))))
		b.WriteByte('\n')
	}
	for _, t := range a.DueSoon {
		b.WriteString(FormatWarning(fmt.Sprintf("%s: %s (%s)",
			dueLabel(today.DaysUntil(t.EffectiveDueDate())), t.Description, FormatBRL(t.Amount))))
		b.WriteByte('\n')
	}
	for _, r := range a.Firing {
		line := fmt.Sprintf("%s Lembrete: %s às %s", BellIcon, r.Title, r.Time)
		if r.Amount != nil {
			line += " (" + FormatBRL(*r.Amount) + ")"
		}
		b.WriteString(InfoStyle.Render(line))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func dueLabel(days int) string {
	switch days {
	case 0:
		return "Vence hoje"
	case 1:
		return "Vence amanhã"
	default:
		return fmt.Sprintf("Vence em %d dias", days)
	}
}

// RemindersTable lists reminders with their schedule.
func RemindersTable(reminders []model.Reminder) string {
	t := newTable("ID", "Título", "Quando", "Valor", "Ativo")
	for _, r := range reminders {
		amount := ""
		if r.Amount != nil {
			amount = FormatBRL(*r.Amount)
		}
		active := SubtleStyle.Render("não")
		if r.IsActive {
			active = SuccessStyle.Render("sim")
		}
		t.Row(ShortID(r.ID), r.Title, ScheduleLabel(r), amount, active)
	}
	return t.String()
}

// CategoriesList renders the category set, flagging orphans and defaults.
func CategoriesList(categories, orphans []string) string {
	var b strings.Builder
	for _, c := range categories {
		b.WriteString("  • " + c)
		if model.IsDefaultCategory(c) {
			b.WriteString(SubtleStyle.Render(" (padrão)"))
		}
		b.WriteByte('\n')
	}
	for _, c := range orphans {
		b.WriteString(WarningStyle.Render("  • "+c+" (sem cadastro, ainda em uso)") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
