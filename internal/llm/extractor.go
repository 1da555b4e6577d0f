package llm

import (
	"context"
	"log/slog"

	"github.com/Veraticus/contas-em-dia/internal/common"
	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/Veraticus/contas-em-dia/internal/service"
)

// Extractor implements service.BillExtractor. A nil client means the
// feature is disabled.
type Extractor struct {
	client Client
	retry  service.RetryOptions
}

var _ service.BillExtractor = (*Extractor)(nil)

// NewExtractor wraps client.
func NewExtractor(client Client, cfg Config) *Extractor {
	retry := cfg.Retry
	if retry.MaxAttempts == 0 {
		retry = common.DefaultRetryOptions()
	}
	return &Extractor{client: client, retry: retry}
}

// Enabled reports whether a provider is configured.
func (e *Extractor) Enabled() bool {
	return e.client != nil
}

// ExtractBill reads image into a draft expense restricted to categories
// (the defaults when empty). It returns nil on any failure.
func (e *Extractor) ExtractBill(ctx context.Context, image []byte, mimeType string, categories []string) *model.BillDraft {
	if e.client == nil {
		slog.Warn("Bill extraction requested but no AI provider is configured")
		return nil
	}
	if len(image) == 0 {
		return nil
	}
	if len(categories) == 0 {
		categories = model.DefaultCategories()
	}

	req := Request{
		Prompt:   buildBillPrompt(categories),
		Image:    image,
		MimeType: imageMimeType(image, mimeType),
		JSON:     true,
	}

	var reply string
	err := common.WithRetry(ctx, func() error {
		var genErr error
		reply, genErr = e.client.Generate(ctx, req)
		return genErr
	}, e.retry)
	if err != nil {
		slog.Warn("Bill extraction request failed", "error", err)
		return nil
	}

	draft, err := parseBillDraft(reply, categories)
	if err != nil {
		slog.Warn("Bill extraction reply unusable", "error", err)
		return nil
	}
	return draft
}
