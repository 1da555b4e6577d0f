package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/contas-em-dia/internal/common"
	"github.com/Veraticus/contas-em-dia/internal/ledger"
	"github.com/spf13/viper"
)

// Viper keys.
const (
	KeyLogLevel     = "logging.level"
	KeyLogFormat    = "logging.format"
	KeyDatabasePath = "database.path"
	KeyTimezone     = "timezone"
	KeyPageSize     = "ledger.page_size"
	KeyLLMProvider  = "llm.provider"
	KeyLLMAPIKey    = "llm.api_key"
	KeyLLMModel     = "llm.model"
	KeyLLMTimeout   = "llm.timeout"
	KeyLLMCacheTTL  = "llm.cache_ttl"

	KeySheetsClientID        = "sheets.client_id"
	KeySheetsClientSecret    = "sheets.client_secret"
	KeySheetsRefreshToken    = "sheets.refresh_token"
	KeySheetsServiceAccount  = "sheets.service_account_path"
	KeySheetsSpreadsheetID   = "sheets.spreadsheet_id"
	KeySheetsSpreadsheetName = "sheets.spreadsheet_name"
	KeySheetsTokenFile       = "sheets.token_file"
)

// Settings is the validated configuration of one run.
type Settings struct {
	Location     *time.Location
	DatabasePath string
	LogLevel     string
	LogFormat    string
	LLM          LLMSettings
	Sheets       SheetsSettings
	PageSize     int
}

// SheetsSettings holds the Google Sheets export credentials. They are
// checked only when an export runs.
type SheetsSettings struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	TokenFile          string
}

// LLMSettings configures the AI helpers. An empty APIKey disables them.
type LLMSettings struct {
	Provider string
	APIKey   string
	Model    string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Enabled reports whether credentials are present.
func (s LLMSettings) Enabled() bool {
	return s.APIKey != ""
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyDatabasePath, "~/.local/share/contas/contas.db")
	v.SetDefault(KeyTimezone, "")
	v.SetDefault(KeyPageSize, ledger.DefaultPageSize)
	v.SetDefault(KeyLLMProvider, "gemini")
	v.SetDefault(KeyLLMModel, "")
	v.SetDefault(KeyLLMTimeout, 30*time.Second)
	v.SetDefault(KeyLLMCacheTTL, 10*time.Minute)
	v.SetDefault(KeySheetsSpreadsheetName, "Contas em Dia")
	v.SetDefault(KeySheetsTokenFile, "~/.config/contas/google-token.json")
}

// Load reads every key from v and validates the result.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		DatabasePath: ExpandPath(v.GetString(KeyDatabasePath)),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
		PageSize:     v.GetInt(KeyPageSize),
		LLM: LLMSettings{
			Provider: strings.ToLower(strings.TrimSpace(v.GetString(KeyLLMProvider))),
			APIKey:   strings.TrimSpace(v.GetString(KeyLLMAPIKey)),
			Model:    v.GetString(KeyLLMModel),
			Timeout:  v.GetDuration(KeyLLMTimeout),
			CacheTTL: v.GetDuration(KeyLLMCacheTTL),
		},
		Sheets: SheetsSettings{
			ClientID:           v.GetString(KeySheetsClientID),
			ClientSecret:       v.GetString(KeySheetsClientSecret),
			RefreshToken:       v.GetString(KeySheetsRefreshToken),
			ServiceAccountPath: ExpandPath(v.GetString(KeySheetsServiceAccount)),
			SpreadsheetID:      v.GetString(KeySheetsSpreadsheetID),
			SpreadsheetName:    v.GetString(KeySheetsSpreadsheetName),
			TokenFile:          ExpandPath(v.GetString(KeySheetsTokenFile)),
		},
	}

	loc, err := LoadLocation(v.GetString(KeyTimezone))
	if err != nil {
		return Settings{}, err
	}
	s.Location = loc

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LoadLocation resolves an IANA zone name. Empty means the local zone.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %w", common.ErrInvalidConfig, name, err)
	}
	return loc, nil
}

// Validate checks the settings for values no component can use.
func (s Settings) Validate() error {
	if s.DatabasePath == "" {
		return fmt.Errorf("%w: %s is empty", common.ErrMissingConfig, KeyDatabasePath)
	}
	if s.PageSize <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", common.ErrInvalidConfig, KeyPageSize, s.PageSize)
	}
	if _, err := common.ParseLevel(s.LogLevel); err != nil {
		return err
	}
	switch s.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, s.LogFormat)
	}
	switch s.LLM.Provider {
	case "gemini", "anthropic":
	default:
		return fmt.Errorf("%w: %s %q", common.ErrInvalidConfig, KeyLLMProvider, s.LLM.Provider)
	}
	if s.LLM.Timeout < 0 || s.LLM.CacheTTL < 0 {
		return fmt.Errorf("%w: llm durations cannot be negative", common.ErrInvalidConfig)
	}
	return nil
}
