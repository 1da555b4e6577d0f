package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/contas-em-dia/internal/alerts"
	"github.com/Veraticus/contas-em-dia/internal/analysis"
	"github.com/Veraticus/contas-em-dia/internal/classification"
	"github.com/Veraticus/contas-em-dia/internal/cli"
	"github.com/Veraticus/contas-em-dia/internal/ledger"
	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/charmbracelet/lipgloss"
)

const chromeLines = 9

var (
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(cli.PrimaryColor)
)

func (m Model) visibleRows() int {
	reserved := chromeLines
	if m.help.ShowAll {
		reserved += 4
	}
	return max(3, m.height-reserved)
}

// View implements tea.Model.
func (m Model) View() string {
	sections := []string{
		m.headerView(),
		m.filterView(),
		"",
		m.listView(),
		"",
		m.footerView(),
		m.statusView(),
		m.help.View(m.keys),
	}
	return strings.Join(sections, "\n")
}

func (m Model) headerView() string {
	profile := m.ledger.Profile()
	summary := analysis.Summarize(m.txns)
	pending := alerts.Derive(m.txns, m.ledger.Reminders(), m.today)

	title := headerStyle.Render(fmt.Sprintf("%s Contas em Dia · %s %s", cli.AppIcon, profile.Avatar, profile.Name))
	totals := fmt.Sprintf("Receitas %s   Despesas %s   Saldo %s",
		cli.IncomeStyle.Render(cli.FormatBRL(summary.TotalIncome)),
		cli.ExpenseStyle.Render(cli.FormatBRL(summary.TotalExpense)),
		balanceStyle(summary).Render(cli.FormatBRL(summary.Balance)))

	alertLine := cli.SuccessStyle.Render("Tudo em dia")
	if !pending.Empty() {
		alertLine = cli.WarningStyle.Render(fmt.Sprintf("%s %d alerta(s): %d atrasada(s), %d vencendo, %d lembrete(s)",
			cli.BellIcon, pending.Count(), len(pending.Overdue), len(pending.DueSoon), len(pending.Firing)))
	}
	return strings.Join([]string{title, totals, alertLine}, "\n")
}

func balanceStyle(s analysis.FinancialSummary) lipgloss.Style {
	if s.Balance.IsNegative() {
		return cli.ExpenseStyle.Bold(true)
	}
	return cli.IncomeStyle.Bold(true)
}

func typeLabel(f ledger.TypeFilter) string {
	switch f {
	case ledger.TypeIncome:
		return "receitas"
	case ledger.TypeExpense:
		return "despesas"
	default:
		return "todos"
	}
}

func (m Model) filterView() string {
	f := m.view.Filters()
	start, end := f.StartDate, f.EndDate
	switch m.mode {
	case modeStartDate:
		start = m.input.View()
	case modeEndDate:
		end = m.input.View()
	}
	if start == "" {
		start = "…"
	}
	if end == "" {
		end = "…"
	}
	line := fmt.Sprintf("Período: %s até %s   Tipo: %s", start, end, typeLabel(f.Type))
	if m.view.IsFiltered() {
		line += cli.SubtleStyle.Render("   (c para limpar)")
	}
	return line
}

func (m Model) listView() string {
	if len(m.page.Items) == 0 {
		if m.view.IsFiltered() {
			return cli.SubtleStyle.Render("Nenhum lançamento para estes filtros.")
		}
		return cli.SubtleStyle.Render("Nenhum lançamento ainda.")
	}

	end := min(m.offset+m.visibleRows(), len(m.page.Items))
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.rowView(m.page.Items[i], i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

func (m Model) rowView(t model.Transaction, selected bool) string {
	status := classification.Describe(t, m.today)

	amountStyle := cli.ExpenseStyle
	if t.Type == model.TypeIncome {
		amountStyle = cli.IncomeStyle
	}
	statusStyle := cli.SubtleStyle
	switch {
	case status.Deadline == classification.Overdue:
		statusStyle = cli.ErrorStyle
	case status.Deadline == classification.DueSoon:
		statusStyle = cli.WarningStyle
	case status.Pending:
		statusStyle = cli.InfoStyle
	}

	description := t.Description
	if width := m.width - 60; width > 10 && len([]rune(description)) > width {
		description = string([]rune(description)[:width-1]) + "…"
	}

	prefix := "  "
	if selected {
		prefix = cursorStyle.Render("▸ ")
	}
	return fmt.Sprintf("%s%s  %-30s  %-18s  %14s  %s",
		prefix,
		cli.FormatDate(t.Date),
		description,
		t.Category,
		amountStyle.Render(cli.FormatSigned(t)),
		statusStyle.Render(status.Label(t.Type)))
}

func (m Model) footerView() string {
	line := fmt.Sprintf("Mostrando %d de %d", len(m.page.Items), m.page.FilteredCount)
	if m.page.HasMore {
		line += cli.SubtleStyle.Render("   (m para carregar mais)")
	}
	return line
}

func (m Model) statusView() string {
	if m.mode == modeConfirmDelete {
		return cli.WarningStyle.Render(fmt.Sprintf("Excluir %q (%s)? [s/N]",
			m.pending.Description, cli.FormatBRL(m.pending.Amount)))
	}
	if m.status == "" {
		return ""
	}
	if m.failed {
		return cli.ErrorStyle.Render(m.status)
	}
	return cli.SuccessStyle.Render(m.status)
}
