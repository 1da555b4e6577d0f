package llm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/contas-em-dia/internal/calendar"
	"github.com/Veraticus/contas-em-dia/internal/common"
	"github.com/Veraticus/contas-em-dia/internal/model"
	"github.com/Veraticus/contas-em-dia/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient replays canned replies and records requests.
type fakeClient struct {
	err      error
	replies  []string
	requests []Request
	mu       sync.Mutex
}

func (f *fakeClient) Generate(_ context.Context, req Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", nil
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}

func (f *fakeClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func fastRetry() service.RetryOptions {
	return service.RetryOptions{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1}
}

func sampleTransactions() []model.Transaction {
	return []model.Transaction{
		{
			ID:          "a",
			Description: "Aluguel",
			Amount:      decimal.NewFromInt(1500),
			Type:        model.TypeExpense,
			Category:    "Moradia",
			Date:        calendar.MustParse("2024-05-05"),
		},
		{
			ID:          "b",
			Description: "Salário",
			Amount:      decimal.NewFromInt(5000),
			Type:        model.TypeIncome,
			Category:    "Salário",
			Date:        calendar.MustParse("2024-05-01"),
			IsPaid:      true,
		},
	}
}

func TestAdvisorFixedReplies(t *testing.T) {
	disabled := NewAdvisor(nil, Config{})
	defer disabled.Close()

	assert.Equal(t, AdviceNeedsData, disabled.Advice(context.Background(), nil))
	assert.Equal(t, AdviceDisabled, disabled.Advice(context.Background(), sampleTransactions()))

	client := &fakeClient{}
	enabled := NewAdvisor(client, Config{Retry: fastRetry()})
	defer enabled.Close()
	assert.Equal(t, AdviceNeedsData, enabled.Advice(context.Background(), []model.Transaction{}))
	assert.Zero(t, client.calls(), "an empty list never reaches the provider")
}

func TestAdvisorReplyAndCache(t *testing.T) {
	client := &fakeClient{replies: []string{"  **Resumo**: tudo certo  "}}
	advisor := NewAdvisor(client, Config{CacheTTL: time.Hour, Retry: fastRetry()})
	defer advisor.Close()

	txns := sampleTransactions()
	got := advisor.Advice(context.Background(), txns)
	assert.Equal(t, "**Resumo**: tudo certo", got)

	require.Equal(t, 1, client.calls())
	req := client.requests[0]
	assert.Equal(t, adviceSystemPrompt, req.System)
	assert.Contains(t, req.Prompt, `"desc":"Aluguel"`)
	assert.Contains(t, req.Prompt, `"amount":"1500.00"`)
	assert.Empty(t, req.Image)

	assert.Equal(t, got, advisor.Advice(context.Background(), txns))
	assert.Equal(t, 1, client.calls(), "identical data is served from cache")

	txns[0].Amount = decimal.NewFromInt(1600)
	advisor.Advice(context.Background(), txns)
	assert.Equal(t, 2, client.calls())
}

func TestAdvisorFailures(t *testing.T) {
	t.Run("provider error", func(t *testing.T) {
		client := &fakeClient{err: common.Permanent(errors.New("invalid key"))}
		advisor := NewAdvisor(client, Config{Retry: fastRetry()})
		defer advisor.Close()

		assert.Equal(t, AdviceFailed, advisor.Advice(context.Background(), sampleTransactions()))
		assert.Equal(t, 1, client.calls(), "permanent errors are not retried")
	})

	t.Run("transient error is retried", func(t *testing.T) {
		client := &fakeClient{err: errors.New("connection reset")}
		advisor := NewAdvisor(client, Config{Retry: fastRetry()})
		defer advisor.Close()

		assert.Equal(t, AdviceFailed, advisor.Advice(context.Background(), sampleTransactions()))
		assert.Equal(t, 2, client.calls())
	})

	t.Run("blank reply", func(t *testing.T) {
		client := &fakeClient{replies: []string{"   "}}
		advisor := NewAdvisor(client, Config{Retry: fastRetry()})
		defer advisor.Close()

		assert.Equal(t, AdviceNoText, advisor.Advice(context.Background(), sampleTransactions()))
	})
}

func TestExtractor(t *testing.T) {
	image := []byte("\xff\xd8\xff\xe0fake")

	t.Run("disabled", func(t *testing.T) {
		e := NewExtractor(nil, Config{})
		assert.False(t, e.Enabled())
		assert.Nil(t, e.ExtractBill(context.Background(), image, "", nil))
	})

	t.Run("draft", func(t *testing.T) {
		client := &fakeClient{replies: []string{`{"description":"Sabesp","amount":"R$ 75,30","date":"2024-05-03","dueDate":"2024-05-20","category":"Contas Fixas"}`}}
		e := NewExtractor(client, Config{Retry: fastRetry()})
		require.True(t, e.Enabled())

		draft := e.ExtractBill(context.Background(), image, "", nil)
		require.NotNil(t, draft)
		assert.Equal(t, "Sabesp", draft.Description)
		assert.True(t, decimal.RequireFromString("75.30").Equal(draft.Amount))
		assert.Equal(t, "2024-05-20", draft.DueDate.String())
		assert.Equal(t, model.TypeExpense, draft.Type)

		require.Equal(t, 1, client.calls())
		req := client.requests[0]
		assert.True(t, req.JSON)
		assert.Equal(t, "image/jpeg", req.MimeType)
		assert.Equal(t, image, req.Image)
		for _, c := range model.DefaultCategories() {
			assert.Contains(t, req.Prompt, c)
		}
	})

	t.Run("restricted categories", func(t *testing.T) {
		client := &fakeClient{replies: []string{`{"amount":10,"date":"2024-05-03","category":"Lazer"}`}}
		e := NewExtractor(client, Config{Retry: fastRetry()})

		draft := e.ExtractBill(context.Background(), image, "image/png", []string{"Mercado", "Outros"})
		require.NotNil(t, draft)
		assert.Equal(t, "Outros", draft.Category)
		assert.Equal(t, "image/png", client.requests[0].MimeType)
	})

	t.Run("unusable reply", func(t *testing.T) {
		client := &fakeClient{replies: []string{"não consegui ler"}}
		e := NewExtractor(client, Config{Retry: fastRetry()})
		assert.Nil(t, e.ExtractBill(context.Background(), image, "", nil))
	})

	t.Run("empty image", func(t *testing.T) {
		client := &fakeClient{}
		e := NewExtractor(client, Config{Retry: fastRetry()})
		assert.Nil(t, e.ExtractBill(context.Background(), nil, "", nil))
		assert.Zero(t, client.calls())
	})
}
