package main

import (
	"fmt"
	"os"

	"github.com/Veraticus/contas-em-dia/internal/cli"
	"github.com/Veraticus/contas-em-dia/internal/config"
	"github.com/Veraticus/contas-em-dia/internal/llm"
	"github.com/spf13/cobra"
)

func adviceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "advice",
		Short: "Ask the AI for tips based on your transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			client, err := a.llmClient()
			if err != nil {
				return err
			}

			advisor := llm.NewAdvisor(client, a.llmConfig())
			defer advisor.Close()

			printLine(cmd.ErrOrStderr(), cli.FormatInfo("Analisando suas finanças..."))
			advice := advisor.Advice(cmd.Context(), e.Transactions())
			printLine(cmd.OutOrStdout(), cli.RenderBox("💡 Dicas financeiras", advice))
			return nil
		},
	}
}

func scanCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "scan <image>",
		Short: "Read a bill or receipt photo into a new expense",
		Long:  `Send a photo of a bill or receipt to the AI provider and record the expense it finds after you confirm it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}

			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			client, err := a.llmClient()
			if err != nil {
				return err
			}
			extractor := llm.NewExtractor(client, a.llmConfig())
			if !extractor.Enabled() {
				return fmt.Errorf("bill scanning needs an AI provider: set %s", config.KeyLLMAPIKey)
			}

			printLine(cmd.ErrOrStderr(), cli.FormatInfo("Lendo a imagem..."))
			draft := extractor.ExtractBill(cmd.Context(), image, "", e.Categories())
			if draft == nil {
				return fmt.Errorf("could not read a bill from %s", args[0])
			}

			in := draft.Input()
			if in.Date.IsZero() {
				in.Date = a.today
			}

			out := cmd.OutOrStdout()
			lines := fmt.Sprintf("Descrição:  %s\nValor:      %s\nCategoria:  %s\nData:       %s",
				in.Description, cli.FormatBRL(in.Amount), in.Category, cli.FormatDate(in.Date))
			if in.DueDate != nil {
				lines += "\nVencimento: " + cli.FormatDate(*in.DueDate)
			}
			printLine(out, cli.RenderBox("🧾 Conta encontrada", lines))

			if !yes {
				ok, err := a.prompter(cmd).Confirm(cmd.Context(), "Adicionar esta despesa?")
				if err != nil {
					return err
				}
				if !ok {
					printLine(out, cli.FormatInfo("Nada foi adicionado."))
					return nil
				}
			}

			txn, err := e.AddTransaction(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("failed to add transaction: %w", err)
			}
			printLine(out, cli.FormatSuccess(fmt.Sprintf("Despesa %q adicionada (%s)", txn.Description, cli.ShortID(txn.ID))))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "add without asking")
	return cmd
}
