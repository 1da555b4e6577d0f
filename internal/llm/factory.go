package llm

import (
	"fmt"
	"strings"

	"github.com/Veraticus/contas-em-dia/internal/common"
)

// NewClient builds the client for cfg.Provider.
func NewClient(cfg Config) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderGemini, "":
		return newGeminiClient(cfg)
	case ProviderAnthropic:
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported LLM provider %q", common.ErrProviderUnavailable, cfg.Provider)
	}
}
