package main

import (
	"fmt"

	"github.com/Veraticus/contas-em-dia/internal/cli"
	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/spf13/cobra"
)

func remindersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reminders",
		Aliases: []string{"reminder"},
		Short:   "Manage recurring reminders",
	}
	cmd.AddCommand(
		listRemindersCmd(a),
		addReminderCmd(a),
		toggleReminderCmd(a),
		deleteReminderCmd(a),
	)
	return cmd
}

func listRemindersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reminders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			reminders := e.Reminders()
			if len(reminders) == 0 {
				printLine(cmd.OutOrStdout(), cli.FormatInfo("Nenhum lembrete. Use 'contas reminders add' para criar um."))
				return nil
			}
			printLine(cmd.OutOrStdout(), cli.RemindersTable(reminders))
			return nil
		},
	}
}

func addReminderCmd(a *app) *cobra.Command {
	var (
		frequency  string
		at         string
		amount     string
		dayOfWeek  int
		dayOfMonth int
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a reminder",
		Long: `Create a daily, weekly or monthly reminder. Weekdays run from 0 (domingo) to 6 (sábado).

Examples:
  contas reminders add "Pagar aluguel" --frequency monthly --day 5 --amount 1500
  contas reminders add "Revisar gastos" --frequency weekly --weekday 0 --time 20:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			freq, err := model.ParseFrequency(frequency)
			if err != nil {
				return err
			}
			in := model.ReminderInput{
				Title:      args[0],
				Frequency:  freq,
				Time:       at,
				DayOfWeek:  dayOfWeek,
				DayOfMonth: dayOfMonth,
			}
			if amount != "" {
				value, err := cli.ParseBRL(amount)
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", amount, err)
				}
				in.Amount = &value
			}

			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			r, err := e.AddReminder(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("failed to add reminder: %w", err)
			}
			printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Lembrete %q criado: %s", r.Title, cli.ScheduleLabel(r))))
			return nil
		},
	}

	cmd.Flags().StringVarP(&frequency, "frequency", "f", "monthly", "daily, weekly or monthly")
	cmd.Flags().StringVar(&at, "time", model.DefaultReminderTime, "time of day (HH:MM)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount to show with the reminder")
	cmd.Flags().IntVar(&dayOfWeek, "weekday", 1, "day of the week for weekly reminders (0 = domingo)")
	cmd.Flags().IntVar(&dayOfMonth, "day", 1, "day of the month for monthly reminders")
	return cmd
}

func toggleReminderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Turn a reminder on or off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			id, err := e.ResolveReminderID(args[0])
			if err != nil {
				return err
			}
			r, err := e.ToggleReminder(cmd.Context(), id)
			if err != nil {
				return err
			}
			state := "desativado"
			if r.IsActive {
				state = "ativado"
			}
			printLine(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Lembrete %q %s", r.Title, state)))
			return nil
		},
	}
}

func deleteReminderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a reminder",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			id, err := e.ResolveReminderID(args[0])
			if err != nil {
				return err
			}
			if err := e.RemoveReminder(cmd.Context(), id); err != nil {
				return err
			}
			printLine(cmd.OutOrStdout(), cli.FormatSuccess("Lembrete excluído"))
			return nil
		},
	}
}
