package main

import (
	"github.com/Veraticus/contas-em-dia/internal/alerts"
	"github.com/Veraticus/contas-em-dia/internal/analysis"
	"github.com/Veraticus/contas-em-dia/internal/cli"
	"github.com/spf13/cobra"
)

func summaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show totals, balance and today's alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			txns := e.Transactions()
			out := cmd.OutOrStdout()
			printLine(out, cli.SummaryView(e.Profile(), analysis.Summarize(txns)))
			printLine(out, cli.AlertsView(alerts.Derive(txns, e.Reminders(), a.today), a.today))
			return nil
		},
	}
}

func statsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Break spending down by category or month",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "categories",
		Short: "Expenses per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			totals := analysis.ByCategory(e.Transactions())
			if len(totals) == 0 {
				printLine(cmd.OutOrStdout(), cli.FormatInfo("Nenhuma despesa registrada."))
				return nil
			}
			printLine(cmd.OutOrStdout(), cli.CategoriesTable(totals))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "months",
		Short: "Income and expenses per month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			months := analysis.ByMonth(e.Transactions())
			if len(months) == 0 {
				printLine(cmd.OutOrStdout(), cli.FormatInfo("Nenhuma transação registrada."))
				return nil
			}
			printLine(cmd.OutOrStdout(), cli.MonthsTable(months))
			return nil
		},
	})
	return cmd
}

func alertsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "alerts",
		Short: "Show overdue bills, bills due soon and today's reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			printLine(cmd.OutOrStdout(), cli.AlertsView(alerts.Derive(e.Transactions(), e.Reminders(), a.today), a.today))
			return nil
		},
	}
}
