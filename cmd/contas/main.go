package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/contas-em-dia/internal/cli"
	"github.com/Veraticus/contas-em-dia/internal/common"
	"github.com/Veraticus/contas-em-dia/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

func main() {
	handler := cli.NewInterruptHandler(os.Stderr, "Nenhuma alteração pendente foi perdida.")
	ctx, stop := handler.HandleInterrupts(context.Background())

	a := newApp()
	err := newRootCmd(a).ExecuteContext(ctx)
	a.close()
	stop()

	if err != nil {
		if !handler.WasInterrupted() {
			fmt.Fprintln(os.Stderr, cli.FormatError(userMessage(err)))
		}
		os.Exit(1)
	}
}

// newRootCmd builds the command tree around a. The caller closes a after
// the command finishes.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "contas",
		Short: "💰 Contas em Dia: controle financeiro pessoal no terminal",
		Long: `Contas em Dia registra receitas e despesas, acompanha contas a pagar,
dispara lembretes e mostra para onde vai o seu dinheiro.

Os dados ficam num arquivo SQLite local. Recursos de IA (dicas e leitura
de boletos) usam o Gemini ou a Anthropic quando llm.api_key está definido.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initConfig,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: ~/.config/contas/config.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json)")
	flags.String("db", "", "database file (default: ~/.local/share/contas/contas.db)")
	flags.BoolVar(&a.ephemeral, "ephemeral", false, "keep data in memory only")
	flags.StringVar(&a.todayFlag, "today", "", "treat this date (YYYY-MM-DD) as today")

	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))
	_ = a.v.BindPFlag(config.KeyDatabasePath, flags.Lookup("db"))

	root.AddCommand(
		transactionsCmd(a),
		summaryCmd(a),
		statsCmd(a),
		alertsCmd(a),
		categoriesCmd(a),
		remindersCmd(a),
		profileCmd(a),
		adviceCmd(a),
		scanCmd(a),
		importOFXCmd(a),
		browseCmd(a),
		backupCmd(a),
		sheetsCmd(a),
		versionCmd(),
	)
	return root
}

func (a *app) initConfig(_ *cobra.Command, _ []string) error {
	v := a.v
	config.SetDefaults(v)

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		v.AddConfigPath(config.DefaultConfigDir())
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("CONTAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	settings, err := config.Load(v)
	if err != nil {
		return err
	}
	a.settings = settings

	level, err := common.ParseLevel(settings.LogLevel)
	if err != nil {
		return err
	}
	if err := common.SetupLogger(level, settings.LogFormat); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	if err := a.resolveToday(); err != nil {
		return err
	}
	slog.Debug("Configuration loaded",
		"config_file", v.ConfigFileUsed(),
		"database", settings.DatabasePath,
		"ephemeral", a.ephemeral,
		"today", a.today)
	return nil
}

// userMessage prefers the friendly text of a common.UserError.
func userMessage(err error) string {
	var ue *common.UserError
	if errors.As(err, &ue) {
		slog.Debug("Command failed", "error", err)
		return ue.UserMessage
	}
	return err.Error()
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "contas %s\n", version)
		},
	}
}
