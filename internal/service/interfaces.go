// Package service defines the ports between the finance core and its
// adapters: persistence and the AI helpers.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/contas-em-dia/internal/model"
)

// KeyValueStore is the persistence port. Each aggregate is stored as one
// JSON blob under a fixed key.
type KeyValueStore interface {
	// Get returns the blob stored under key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Advisor produces short financial tips for a transaction list. It never
// fails; problems are reported as text.
type Advisor interface {
	Advice(ctx context.Context, transactions []model.Transaction) string
}

// BillExtractor reads a photographed bill or receipt into a draft expense.
// It returns nil when nothing usable could be extracted.
type BillExtractor interface {
	ExtractBill(ctx context.Context, image []byte, mimeType string, categories []string) *model.BillDraft
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
