package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/contas-em-dia/internal/cli"
	"github.com/Veraticus/contas-em-dia/internal/common"
	"github.com/Veraticus/contas-em-dia/internal/config"
	"github.com/Veraticus/contas-em-dia/internal/sheets"
	"github.com/spf13/cobra"
)

func sheetsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Export the ledger to Google Sheets",
	}
	cmd.AddCommand(sheetsAuthCmd(a), sheetsExportCmd(a))
	return cmd
}

func sheetsAuthCmd(a *app) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to Google Sheets in the browser",
		Long: fmt.Sprintf(`Run the Google consent flow and save the token. Needs %s and %s from a
Google Cloud "Desktop app" OAuth client.`, config.KeySheetsClientID, config.KeySheetsClientSecret),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := a.settings.Sheets
			if s.ClientID == "" || s.ClientSecret == "" {
				return fmt.Errorf("%w: set %s and %s", sheets.ErrNoAuth, config.KeySheetsClientID, config.KeySheetsClientSecret)
			}

			out := cmd.OutOrStdout()
			_, err := sheets.AuthenticateOAuth2Interactive(cmd.Context(), sheets.OAuth2Config{
				ClientID:     s.ClientID,
				ClientSecret: s.ClientSecret,
				TokenFile:    s.TokenFile,
				ListenAddr:   listen,
				Timeout:      5 * time.Minute,
			}, func(url string) {
				printLine(out, cli.FormatInfo("Abra este endereço no navegador para autorizar o acesso:"))
				printLine(out, url)
			})
			if err != nil {
				return err
			}
			printLine(out, cli.FormatSuccess("Acesso autorizado. Token salvo em "+s.TokenFile))
			return nil
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "127.0.0.1:8080", "address of the local callback server")
	return cmd
}

func sheetsExportCmd(a *app) *cobra.Command {
	var spreadsheetID string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write summary, transactions, categories and months to a spreadsheet",
		Long: fmt.Sprintf(`Write the ledger to a spreadsheet, replacing the contents of its tabs.
Without %s a new spreadsheet is created.`, config.KeySheetsSpreadsheetID),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.sheetsConfig()
			if spreadsheetID != "" {
				cfg.SpreadsheetID = spreadsheetID
			}

			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			writer, err := sheets.NewWriter(cmd.Context(), cfg, slog.Default())
			if err != nil {
				if errors.Is(err, sheets.ErrNoAuth) {
					return common.NewUserError(fmt.Sprintf(
						"Google Sheets não configurado: rode 'contas sheets auth' ou defina %s", config.KeySheetsServiceAccount), err)
				}
				return err
			}

			report := sheets.BuildReport(e.Profile(), e.Transactions(), a.today)
			result, err := writer.Export(cmd.Context(), report)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printLine(out, cli.FormatSuccess(fmt.Sprintf("%d linha(s) exportada(s)", result.Rows)))
			if result.URL != "" {
				printLine(out, result.URL)
			}
			if cfg.SpreadsheetID == "" {
				printLine(out, cli.FormatInfo(fmt.Sprintf("Para atualizar esta planilha da próxima vez, defina %s: %s",
					config.KeySheetsSpreadsheetID, result.SpreadsheetID)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&spreadsheetID, "spreadsheet", "", "id of an existing spreadsheet to overwrite")
	return cmd
}

// sheetsConfig maps the settings onto the writer config. The refresh token
// saved by "sheets auth" is used when none is configured.
func (a *app) sheetsConfig() sheets.Config {
	s := a.settings.Sheets
	cfg := sheets.DefaultConfig()
	cfg.ClientID = s.ClientID
	cfg.ClientSecret = s.ClientSecret
	cfg.RefreshToken = s.RefreshToken
	cfg.ServiceAccountPath = s.ServiceAccountPath
	cfg.SpreadsheetID = s.SpreadsheetID
	if s.SpreadsheetName != "" {
		cfg.SpreadsheetName = s.SpreadsheetName
	}
	if loc := a.settings.Location; loc != nil && loc.String() != "Local" {
		cfg.TimeZone = loc.String()
	}

	if cfg.RefreshToken == "" && cfg.ServiceAccountPath == "" && s.TokenFile != "" {
		token, err := sheets.LoadToken(s.TokenFile)
		if err != nil {
			slog.Debug("No saved Google token", "file", s.TokenFile, "error", err)
		} else {
			cfg.RefreshToken = token.RefreshToken
		}
	}
	return cfg
}
