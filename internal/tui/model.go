// Package tui is the interactive ledger browser: a paged, filterable list of
// transactions where bills can be marked paid or deleted.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/contas-em-dia/internal/calendar"
	"github.com/Veraticus/contas-em-dia/internal/ledger"
	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Ledger is the slice of the engine the browser needs.
type Ledger interface {
	Transactions() []model.Transaction
	Reminders() []model.Reminder
	Profile() model.UserProfile
	ToggleTransactionPaid(ctx context.Context, id string) (model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

type mode int

const (
	modeBrowse mode = iota
	modeStartDate
	modeEndDate
	modeConfirmDelete
)

// Model is the bubbletea model of the browser.
type Model struct {
	ctx     context.Context
	ledger  Ledger
	view    *ledger.View
	txns    []model.Transaction
	page    ledger.Page
	pending model.Transaction
	status  string
	keys    KeyMap
	help    help.Model
	input   textinput.Model
	today   calendar.Date
	mode    mode
	cursor  int
	offset  int
	width   int
	height  int
	failed  bool
}

// New creates a browser over l. The transaction list is read immediately.
func New(ctx context.Context, l Ledger, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	input := textinput.New()
	input.Placeholder = "AAAA-MM-DD"
	input.CharLimit = 10
	input.Width = 12

	m := Model{
		ctx:    ctx,
		ledger: l,
		view:   ledger.NewView(cfg.PageSize),
		keys:   cfg.KeyMap,
		help:   help.New(),
		input:  input,
		today:  cfg.Today,
		width:  80,
		height: 24,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("Contas em Dia")
}

// refresh re-reads the ledger and re-applies the view.
func (m *Model) refresh() {
	m.txns = m.ledger.Transactions()
	m.page = m.view.Window(m.txns)
	m.keys.LoadMore.SetEnabled(m.page.HasMore)
	m.clampCursor()
}

func (m *Model) clampCursor() {
	last := len(m.page.Items) - 1
	m.cursor = max(0, min(m.cursor, last))

	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = max(0, min(m.offset, max(0, len(m.page.Items)-rows)))
}

func (m Model) selected() (model.Transaction, bool) {
	if m.cursor < 0 || m.cursor >= len(m.page.Items) {
		return model.Transaction{}, false
	}
	return m.page.Items[m.cursor], true
}

func (m *Model) setStatus(msg string, failed bool) {
	m.status = msg
	m.failed = failed
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampCursor()
		return m, nil

	case toggledMsg:
		if msg.err != nil {
			m.setStatus("Não foi possível atualizar: "+msg.err.Error(), true)
			return m, nil
		}
		m.refresh()
		if msg.txn.IsPaid {
			m.setStatus(fmt.Sprintf("%q marcada como paga", msg.txn.Description), false)
		} else {
			m.setStatus(fmt.Sprintf("%q marcada como pendente", msg.txn.Description), false)
		}
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.setStatus("Não foi possível excluir: "+msg.err.Error(), true)
			return m, nil
		}
		m.refresh()
		m.setStatus(fmt.Sprintf("%q excluída", msg.description), false)
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeStartDate, modeEndDate:
			return m.updateDateInput(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		m.cursor--
	case key.Matches(msg, m.keys.Down):
		m.cursor++
	case key.Matches(msg, m.keys.PageUp):
		m.cursor -= m.visibleRows()
	case key.Matches(msg, m.keys.PageDown):
		m.cursor += m.visibleRows()
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
	case key.Matches(msg, m.keys.End):
		m.cursor = len(m.page.Items) - 1

	case key.Matches(msg, m.keys.LoadMore):
		if m.page.HasMore {
			m.view.LoadMore()
			m.refresh()
		}

	case key.Matches(msg, m.keys.CycleType):
		m.view.SetTypeFilter(nextTypeFilter(m.view.Filters().Type))
		m.refresh()

	case key.Matches(msg, m.keys.ClearFilters):
		m.view.ClearFilters()
		m.cursor = 0
		m.refresh()
		m.setStatus("Filtros limpos", false)

	case key.Matches(msg, m.keys.StartDate):
		return m.beginDateInput(modeStartDate, m.view.Filters().StartDate)
	case key.Matches(msg, m.keys.EndDate):
		return m.beginDateInput(modeEndDate, m.view.Filters().EndDate)

	case key.Matches(msg, m.keys.TogglePaid):
		txn, ok := m.selected()
		if !ok {
			return m, nil
		}
		if txn.Type == model.TypeIncome {
			m.setStatus("Receitas já contam como recebidas", true)
			return m, nil
		}
		return m, toggleCmd(m.ctx, m.ledger, txn.ID)

	case key.Matches(msg, m.keys.Delete):
		txn, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.pending = txn
		m.mode = modeConfirmDelete
		m.setStatus("", false)
		return m, nil
	}

	m.clampCursor()
	return m, nil
}

func (m Model) beginDateInput(next mode, current string) (tea.Model, tea.Cmd) {
	m.mode = next
	m.setStatus("", false)
	m.input.SetValue(current)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m Model) updateDateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.input.Blur()
		m.mode = modeBrowse
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		value := strings.TrimSpace(m.input.Value())
		if value != "" {
			if _, err := calendar.Parse(value); err != nil {
				m.setStatus("Data inválida, use AAAA-MM-DD", true)
				return m, nil
			}
		}
		if m.mode == modeStartDate {
			m.view.SetStartDate(value)
		} else {
			m.view.SetEndDate(value)
		}
		m.input.Blur()
		m.mode = modeBrowse
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeBrowse
	switch strings.ToLower(msg.String()) {
	case "s", "y", "enter":
		return m, deleteCmd(m.ctx, m.ledger, m.pending.ID, m.pending.Description)
	}
	m.setStatus("Exclusão cancelada", false)
	return m, nil
}

// nextTypeFilter cycles todos → despesas → receitas.
func nextTypeFilter(f ledger.TypeFilter) ledger.TypeFilter {
	switch f {
	case ledger.TypeExpense:
		return ledger.TypeIncome
	case ledger.TypeIncome:
		return ledger.TypeAll
	default:
		return ledger.TypeExpense
	}
}
