package main

import (
	"fmt"

	"github.com/Veraticus/contas-em-dia/internal/calendar"
	"github.com/Veraticus/contas-em-dia/internal/cli"
	"github.com/Veraticus/contas-em-dia/internal/ledger"
	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/spf13/cobra"
)

func transactionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transactions"},
		Short:   "Manage income and expenses",
	}

	cmd.AddCommand(
		addTransactionCmd(a),
		listTransactionsCmd(a),
		showTransactionCmd(a),
		editTransactionCmd(a),
		toggleTransactionCmd(a),
		deleteTransactionCmd(a),
	)
	return cmd
}

// transactionFlags are the editable fields shared by add and edit.
type transactionFlags struct {
	kind     string
	category string
	date     string
	due      string
	paid     bool
}

func (f *transactionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.kind, "type", "t", "expense", "expense or income")
	cmd.Flags().StringVarP(&f.category, "category", "c", model.CategoryOther, "category")
	cmd.Flags().StringVar(&f.date, "date", "", "date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&f.due, "due", "", "due date of a bill (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&f.paid, "paid", false, "mark the expense as already paid")
}

// apply overlays the flags the user actually set onto in.
func (f *transactionFlags) apply(cmd *cobra.Command, in *model.TransactionInput) error {
	changed := cmd.Flags().Changed

	if changed("type") {
		kind, err := model.ParseTransactionType(f.kind)
		if err != nil {
			return err
		}
		in.Type = kind
	}
	if changed("category") {
		in.Category = f.category
	}
	if changed("date") {
		date, err := calendar.Parse(f.date)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
		in.Date = date
	}
	if changed("due") {
		if f.due == "" {
			in.DueDate = nil
		} else {
			due, err := calendar.Parse(f.due)
			if err != nil {
				return fmt.Errorf("invalid --due: %w", err)
			}
			in.DueDate = &due
		}
	}
	if changed("paid") {
		in.IsPaid = f.paid
	}
	return nil
}

func addTransactionCmd(a *app) *cobra.Command {
	var flags transactionFlags

	cmd := &cobra.Command{
		Use:   "add <description> <amount>",
		Short: "Record an income or expense",
		Long: `Record a transaction. Amounts accept 1234.56, 1234,56 or "R$ 1.234,56".

Examples:
  contas tx add "Conta de luz" 187,90 --category "Contas (Luz/Água)" --due 2024-05-15
  contas tx add "Salário" 5000 --type income --category Salário`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := cli.ParseBRL(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			in := model.TransactionInput{
				Description: args[0],
				Amount:      amount,
				Type:        model.TypeExpense,
				Category:    model.CategoryOther,
				Date:        a.today,
			}
			if err := flags.apply(cmd, &in); err != nil {
				return err
			}

			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			txn, err := e.AddTransaction(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("failed to add transaction: %w", err)
			}

			out := cmd.OutOrStdout()
			printLine(out, cli.FormatSuccess("Transação adicionada"))
			printLine(out, cli.TransactionDetail(txn, a.today))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func listTransactionsCmd(a *app) *cobra.Command {
	var (
		from  string
		to    string
		kind  string
		pages int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List transactions, most recent first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for flag, value := range map[string]string{"from": from, "to": to} {
				if value == "" {
					continue
				}
				if _, err := calendar.Parse(value); err != nil {
					return fmt.Errorf("invalid --%s: %w", flag, err)
				}
			}
			typeFilter, err := ledger.ParseTypeFilter(kind)
			if err != nil {
				return err
			}

			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			view := ledger.NewView(a.settings.PageSize)
			view.SetStartDate(from)
			view.SetEndDate(to)
			view.SetTypeFilter(typeFilter)
			for i := 1; i < pages; i++ {
				view.LoadMore()
			}

			page := view.Window(e.Transactions())
			out := cmd.OutOrStdout()
			if page.FilteredCount == 0 {
				if view.IsFiltered() {
					printLine(out, cli.FormatInfo("Nenhuma transação encontrada para estes filtros."))
				} else {
					printLine(out, cli.FormatInfo("Nenhuma transação ainda. Use 'contas tx add' para começar."))
				}
				return nil
			}

			printLine(out, cli.TransactionsTable(page.Items, a.today))
			footer := fmt.Sprintf("Mostrando %d de %d", len(page.Items), page.FilteredCount)
			if page.HasMore {
				footer += fmt.Sprintf(" (use --pages %d para ver mais)", pages+1)
			}
			printLine(out, cli.SubtleStyle.Render(footer))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first date to show (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last date to show (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&kind, "type", "t", "all", "all, income or expense")
	cmd.Flags().IntVarP(&pages, "pages", "p", 1, "number of pages to show")
	return cmd
}

func showTransactionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			id, err := e.ResolveTransactionID(args[0])
			if err != nil {
				return err
			}
			txn, err := e.Transaction(id)
			if err != nil {
				return err
			}
			printLine(cmd.OutOrStdout(), cli.TransactionDetail(txn, a.today))
			return nil
		},
	}
}

func editTransactionCmd(a *app) *cobra.Command {
	var (
		flags       transactionFlags
		description string
		amount      string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a transaction",
		Long:  `Change the fields given as flags. Fields without a flag keep their value. Pass --due "" to drop a due date.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			id, err := e.ResolveTransactionID(args[0])
			if err != nil {
				return err
			}
			current, err := e.Transaction(id)
			if err != nil {
				return err
			}

			in := model.TransactionInput{
				Date:        current.Date,
				DueDate:     current.DueDate,
				Amount:      current.Amount,
				Description: current.Description,
				Type:        current.Type,
				Category:    current.Category,
				IsPaid:      current.IsPaid,
			}
			if cmd.Flags().Changed("description") {
				in.Description = description
			}
			if cmd.Flags().Changed("amount") {
				in.Amount, err = cli.ParseBRL(amount)
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", amount, err)
				}
			}
			if err := flags.apply(cmd, &in); err != nil {
				return err
			}

			txn, err := e.UpdateTransaction(cmd.Context(), id, in)
			if err != nil {
				return fmt.Errorf("failed to update transaction: %w", err)
			}
			out := cmd.OutOrStdout()
			printLine(out, cli.FormatSuccess("Transação atualizada"))
			printLine(out, cli.TransactionDetail(txn, a.today))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "new amount")
	return cmd
}

func toggleTransactionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark an expense as paid or pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			id, err := e.ResolveTransactionID(args[0])
			if err != nil {
				return err
			}
			txn, err := e.ToggleTransactionPaid(cmd.Context(), id)
			if err != nil {
				return err
			}

			state := "pendente"
			if txn.IsPaid {
				state = "paga"
			}
			printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%q marcada como %s", txn.Description, state)))
			return nil
		},
	}
}

func deleteTransactionCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a transaction",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			id, err := e.ResolveTransactionID(args[0])
			if err != nil {
				return err
			}
			txn, err := e.Transaction(id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !yes {
				ok, err := a.prompter(cmd).Confirm(cmd.Context(),
					fmt.Sprintf("Excluir %q (%s)?", txn.Description, cli.FormatBRL(txn.Amount)))
				if err != nil {
					return err
				}
				if !ok {
					printLine(out, cli.FormatInfo("Nada foi excluído."))
					return nil
				}
			}

			if err := e.DeleteTransaction(cmd.Context(), id); err != nil {
				return err
			}
			printLine(out, cli.FormatSuccess(fmt.Sprintf("%q excluída", txn.Description)))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")
	return cmd
}
