package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/contas-em-dia/internal/classification"
	"github.com/Veraticus/contas-em-dia/internal/cli"
	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/Veraticus/contas-em-dia/internal/ofx"
	"github.com/spf13/cobra"
)

func importOFXCmd(a *app) *cobra.Command {
	var (
		category  string
		dryRun    bool
		autoGuess bool
	)

	cmd := &cobra.Command{
		Use:   "import-ofx <files...>",
		Short: "Import transactions from OFX bank statements",
		Long: `Import transactions from OFX or QFX statements exported by your bank or card.

Lines already imported are skipped, so the same statement can be imported
again safely.

Examples:
  contas import-ofx ~/Downloads/extrato-maio.ofx
  contas import-ofx ~/Downloads/*.ofx --category Outros`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandGlobs(args)
			if err != nil {
				return err
			}

			parser := ofx.NewParser(a.settings.Location, category)
			bar := cli.NewProgress(cmd.ErrOrStderr(), len(files), "Lendo extratos")

			var parsed []model.Transaction
			for _, path := range files {
				txns, err := parseOFXFile(cmd, parser, path)
				if err != nil {
					return err
				}
				slog.Debug("Parsed OFX file", "file", path, "transactions", len(txns))
				parsed = append(parsed, txns...)
				_ = bar.Add(1)
			}
			_ = bar.Finish()

			if autoGuess {
				if err := guessCategories(cmd, a, parsed); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if dryRun {
				printLine(out, cli.FormatInfo(fmt.Sprintf("%d transação(ões) encontrada(s) em %d arquivo(s). Nada foi salvo.", len(parsed), len(files))))
				if len(parsed) > 0 {
					printLine(out, cli.TransactionsTable(parsed, a.today))
				}
				return nil
			}

			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			result, err := e.ImportTransactions(cmd.Context(), parsed)
			if err != nil {
				return fmt.Errorf("failed to import transactions: %w", err)
			}
			printLine(out, cli.FormatSuccess(fmt.Sprintf("%d transação(ões) importada(s), %d já existente(s)", result.Added, result.Skipped)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", model.CategoryOther, "category given to imported lines")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show what would be imported without saving")
	cmd.Flags().BoolVar(&autoGuess, "auto-category", true, "guess categories from descriptions")
	return cmd
}

// guessCategories applies the default rules, limited to categories the user
// has.
func guessCategories(cmd *cobra.Command, a *app, txns []model.Transaction) error {
	categorizer, err := classification.NewCategorizer(classification.DefaultRules())
	if err != nil {
		return err
	}
	e, err := a.open(cmd.Context())
	if err != nil {
		return err
	}
	changed := categorizer.Categorize(txns, e.Categories())
	slog.Debug("Guessed categories", "changed", changed, "total", len(txns))
	return nil
}

func parseOFXFile(cmd *cobra.Command, parser *ofx.Parser, path string) ([]model.Transaction, error) {
	f, err := os.Open(path) // #nosec G304 - user-supplied statement file
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	txns, err := parser.ParseFile(cmd.Context(), f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return txns, nil
}

// expandGlobs resolves shell patterns the shell left unexpanded.
func expandGlobs(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err != nil {
				slog.Warn("No files found matching pattern", "pattern", pattern)
				continue
			}
			matches = []string{pattern}
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, errors.New("no files found to import")
	}
	return files, nil
}
