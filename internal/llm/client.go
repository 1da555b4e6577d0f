package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Veraticus/contas-em-dia/internal/common"
	"github.com/Veraticus/contas-em-dia/internal/service"
)

// Provider names accepted by NewClient.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
)

// ErrMissingAPIKey is returned when a provider is built without credentials.
var ErrMissingAPIKey = errors.New("api key is required")

// Client sends one prompt, optionally with an image, and returns the text
// of the reply.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Request is a single-turn generation request.
type Request struct {
	System   string
	Prompt   string
	MimeType string
	Image    []byte
	// JSON asks the provider for a bare JSON reply where it supports that.
	JSON        bool
	Temperature float64
	MaxTokens   int
}

// Config holds the provider settings.
type Config struct {
	Provider string
	APIKey   string
	Model    string
	// BaseURL overrides the provider endpoint, mostly for tests.
	BaseURL   string
	Timeout   time.Duration
	CacheTTL  time.Duration
	MaxTokens int
	Retry     service.RetryOptions
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return 30 * time.Second
	}
	return c.Timeout
}

func (c Config) maxTokens() int {
	if c.MaxTokens <= 0 {
		return 1024
	}
	return c.MaxTokens
}

// statusError maps an HTTP status onto the retry taxonomy: 429 is a rate
// limit, 5xx is worth retrying, anything else is permanent.
func statusError(provider string, code int, body string) error {
	err := fmt.Errorf("%s API error (status %d): %s", provider, code, body)
	switch {
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
	case code >= http.StatusInternalServerError:
		return &common.RetryableError{Err: err, Retryable: true}
	default:
		return common.Permanent(err)
	}
}
