package tui

import (
	"time"

	"github.com/Veraticus/contas-em-dia/internal/calendar"
	"github.com/Veraticus/contas-em-dia/internal/ledger"
)

// Config holds the browser settings.
type Config struct {
	Today     calendar.Date
	KeyMap    KeyMap
	PageSize  int
	AltScreen bool
}

// Option configures the browser.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Today:     calendar.FromTime(time.Now()),
		KeyMap:    DefaultKeyMap(),
		PageSize:  ledger.DefaultPageSize,
		AltScreen: true,
	}
}

// WithToday sets the date statuses and alerts are computed against.
func WithToday(today calendar.Date) Option {
	return func(c *Config) {
		c.Today = today
	}
}

// WithPageSize sets how many rows each "load more" adds.
func WithPageSize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.PageSize = n
		}
	}
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(keys KeyMap) Option {
	return func(c *Config) {
		c.KeyMap = keys
	}
}

// WithAltScreen toggles the alternate screen buffer.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}
