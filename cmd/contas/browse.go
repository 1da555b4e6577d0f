package main

import (
	"github.com/Veraticus/contas-em-dia/internal/tui"
	"github.com/spf13/cobra"
)

func browseCmd(a *app) *cobra.Command {
	var inline bool
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the ledger interactively",
		Long:  `Open a full-screen list of transactions with date and type filters. Bills can be marked paid or deleted from the list.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), e,
				tui.WithToday(a.today),
				tui.WithPageSize(a.settings.PageSize),
				tui.WithAltScreen(!inline))
		},
	}
	cmd.Flags().BoolVar(&inline, "inline", false, "Draw in the terminal scrollback instead of the alternate screen")
	return cmd
}
