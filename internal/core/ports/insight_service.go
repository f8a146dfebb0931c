package ports

import (
	"context"

	"github.com/kinshiplabs/tracker/internal/core/domain"
)

// InsightCache stores generated texts keyed by a record fingerprint.
type InsightCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// InsightService wraps the text generator. Its methods never fail: every
// collaborator error degrades to a fixed fallback string.
type InsightService interface {
	SummarizeJournals(ctx context.Context, user domain.User, records []domain.ProgressRecord) string
	DailyInspiration(ctx context.Context, record domain.ProgressRecord) string
	// InspirationFor returns the cached inspiration for record, generating
	// and caching it on a miss.
	InspirationFor(ctx context.Context, record domain.ProgressRecord) string
}

// InspirationQueue accepts records for background inspiration generation.
// Enqueue must not block.
type InspirationQueue interface {
	Enqueue(record domain.ProgressRecord)
}
