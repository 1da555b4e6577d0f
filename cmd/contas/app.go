package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Veraticus/contas-em-dia/internal/calendar"
	"github.com/Veraticus/contas-em-dia/internal/cli"
	"github.com/Veraticus/contas-em-dia/internal/config"
	"github.com/Veraticus/contas-em-dia/internal/engine"
	"github.com/Veraticus/contas-em-dia/internal/llm"
	"github.com/Veraticus/contas-em-dia/internal/service"
	"github.com/Veraticus/contas-em-dia/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries what the commands share: settings, the opened store and the
// engine on top of it.
type app struct {
	today     calendar.Date
	v         *viper.Viper
	sqlite    *storage.SQLiteStore
	repo      *storage.Repository
	engine    *engine.Engine
	cfgFile   string
	todayFlag string
	settings  config.Settings
	ephemeral bool
}

func newApp() *app {
	return &app{v: viper.New()}
}

func (a *app) resolveToday() error {
	if a.todayFlag == "" {
		a.today = calendar.Today(time.Now(), a.settings.Location)
		return nil
	}
	today, err := calendar.Parse(a.todayFlag)
	if err != nil {
		return fmt.Errorf("invalid --today: %w", err)
	}
	a.today = today
	return nil
}

// open loads the engine, opening the database on first use.
func (a *app) open(ctx context.Context) (*engine.Engine, error) {
	if a.engine != nil {
		return a.engine, nil
	}

	var kv service.KeyValueStore
	if a.ephemeral {
		kv = storage.NewMemoryStore()
	} else {
		store, err := storage.OpenSQLiteStore(ctx, a.settings.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		a.sqlite = store
		kv = store
	}

	a.repo = storage.NewRepository(kv)
	e := engine.New(a.repo)
	if err := e.Load(ctx); err != nil {
		a.close()
		return nil, err
	}
	a.engine = e
	return e, nil
}

func (a *app) close() {
	if a.repo == nil {
		return
	}
	if err := a.repo.Close(); err != nil {
		slog.Error("Failed to close store", "error", err)
	}
	a.repo, a.sqlite, a.engine = nil, nil, nil
}

// llmConfig maps the settings onto the provider config.
func (a *app) llmConfig() llm.Config {
	s := a.settings.LLM
	return llm.Config{
		Provider: s.Provider,
		APIKey:   s.APIKey,
		Model:    s.Model,
		Timeout:  s.Timeout,
		CacheTTL: s.CacheTTL,
	}
}

// llmClient returns nil when no API key is configured.
func (a *app) llmClient() (llm.Client, error) {
	if !a.settings.LLM.Enabled() {
		return nil, nil
	}
	client, err := llm.NewClient(a.llmConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	return client, nil
}

func (a *app) prompter(cmd *cobra.Command) *cli.Prompter {
	return cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
}

func printLine(w io.Writer, s string) {
	_, _ = fmt.Fprintln(w, s)
}
