package llm

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Veraticus/contas-em-dia/internal/common"
	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/Veraticus/contas-em-dia/internal/service"
)

// Fixed advisor replies.
const (
	AdviceNeedsData = "Adicione algumas transações para que eu possa analisar seus hábitos financeiros."
	AdviceDisabled  = "⚠️ A análise por IA está desativada porque nenhuma chave de API foi configurada (llm.api_key)."
	AdviceFailed    = "Desculpe, ocorreu um erro ao tentar analisar suas finanças. Verifique sua chave de API."
	AdviceNoText    = "Não foi possível gerar uma análise no momento."
)

// Advisor implements service.Advisor. A nil client means the feature is
// disabled.
type Advisor struct {
	client Client
	cache  *responseCache
	retry  service.RetryOptions
}

var _ service.Advisor = (*Advisor)(nil)

// NewAdvisor wraps client. Replies are cached for cfg.CacheTTL.
func NewAdvisor(client Client, cfg Config) *Advisor {
	retry := cfg.Retry
	if retry.MaxAttempts == 0 {
		retry = common.DefaultRetryOptions()
	}
	a := &Advisor{client: client, retry: retry}
	if client != nil {
		a.cache = newResponseCache(cfg.CacheTTL)
	}
	return a
}

// Advice returns Markdown tips for txns. It never fails: every problem
// becomes one of the fixed replies.
func (a *Advisor) Advice(ctx context.Context, txns []model.Transaction) string {
	if len(txns) == 0 {
		return AdviceNeedsData
	}
	if a.client == nil {
		return AdviceDisabled
	}

	payload, err := advicePayload(txns)
	if err != nil {
		slog.Warn("Failed to encode transactions for advice", "error", err)
		return AdviceFailed
	}
	key := cacheKey(payload)
	if cached, ok := a.cache.get(key); ok {
		slog.Debug("Advice cache hit", "transactions", len(txns))
		return cached
	}

	req := Request{
		System:      adviceSystemPrompt,
		Prompt:      buildAdvicePrompt(payload),
		Temperature: 0.7,
	}

	var reply string
	err = common.WithRetry(ctx, func() error {
		var genErr error
		reply, genErr = a.client.Generate(ctx, req)
		return genErr
	}, a.retry)
	if err != nil {
		slog.Warn("Advice request failed", "error", err)
		return AdviceFailed
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return AdviceNoText
	}
	a.cache.set(key, reply)
	return reply
}

// Close releases the cache goroutine.
func (a *Advisor) Close() {
	if a.cache != nil {
		a.cache.Close()
	}
}
