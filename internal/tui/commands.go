package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

func toggleCmd(ctx context.Context, l Ledger, id string) tea.Cmd {
	return func() tea.Msg {
		txn, err := l.ToggleTransactionPaid(ctx, id)
		return toggledMsg{txn: txn, err: err}
	}
}

func deleteCmd(ctx context.Context, l Ledger, id, description string) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{description: description, err: l.DeleteTransaction(ctx, id)}
	}
}
