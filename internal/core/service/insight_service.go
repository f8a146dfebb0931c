package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kinshiplabs/tracker/internal/core/domain"
	"github.com/kinshiplabs/tracker/internal/core/ports"
	"github.com/kinshiplabs/tracker/internal/pkg/metrics"
)

const (
	FallbackSummary     = "Summary unavailable."
	FallbackInspiration = "Keep pushing forward, you're doing great!"
	NoJournalEntries    = "No journal entries yet."

	kindSummary     = "journal_summary"
	kindInspiration = "inspiration"

	maxSummaryJournals = 5

	systemPrompt = "You are a warm accountability coach. Answer in plain text without markdown."
)

// InsightService turns records into short generated texts. A nil generator
// makes every call return its fallback; a nil cache disables caching.
type InsightService struct {
	gen     ports.TextGenerator
	cache   ports.InsightCache
	timeout time.Duration
	log     zerolog.Logger
}

var _ ports.InsightService = (*InsightService)(nil)

func NewInsightService(gen ports.TextGenerator, cache ports.InsightCache, timeout time.Duration, log zerolog.Logger) *InsightService {
	return &InsightService{gen: gen, cache: cache, timeout: timeout, log: log}
}

// SummarizeJournals summarises the five most recent non-empty journals.
func (s *InsightService) SummarizeJournals(ctx context.Context, user domain.User, records []domain.ProgressRecord) string {
	journals := recentJournals(records, maxSummaryJournals)
	if len(journals) == 0 {
		metrics.InsightRequestsTotal.WithLabelValues(kindSummary, "skipped").Inc()
		return NoJournalEntries
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Summarize the recent mental state and progress of %s from these journal entries.\n\n", user.Name)
	for i, r := range journals {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Date: %s, Journal: %s", r.Date, strings.TrimSpace(r.DayJournal))
	}
	b.WriteString("\n\nSay whether they seem overwhelmed, motivated, or stagnant. Keep it concise; the reader is their supporter.")
	return s.generate(ctx, kindSummary, b.String(), FallbackSummary)
}

func (s *InsightService) DailyInspiration(ctx context.Context, record domain.ProgressRecord) string {
	prompt := fmt.Sprintf(
		"Write one short motivational sentence for someone who completed %d tasks and spent %d minutes on their goals today. Their journal: %q",
		len(record.TasksCompleted), record.TimeSpentMinutes, strings.TrimSpace(record.DayJournal),
	)
	return s.generate(ctx, kindInspiration, prompt, FallbackInspiration)
}

// InspirationFor serves the cached inspiration for record and generates it on
// a miss. Fallbacks are not cached so a later call can retry.
func (s *InsightService) InspirationFor(ctx context.Context, record domain.ProgressRecord) string {
	key := InspirationKey(record)
	if s.cache != nil {
		text, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("insight cache read failed")
		}
		if ok {
			metrics.InsightRequestsTotal.WithLabelValues(kindInspiration, "cached").Inc()
			return text
		}
	}

	text := s.DailyInspiration(ctx, record)
	if s.cache != nil && text != FallbackInspiration {
		if err := s.cache.Set(ctx, key, text); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("insight cache write failed")
		}
	}
	return text
}

func (s *InsightService) generate(ctx context.Context, kind, prompt, fallback string) string {
	if s.gen == nil {
		metrics.InsightRequestsTotal.WithLabelValues(kind, "fallback").Inc()
		return fallback
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.gen.GenerateText(ctx, systemPrompt, prompt)
	metrics.InsightDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	text = strings.TrimSpace(text)
	if err != nil || text == "" {
		s.log.Warn().Err(err).Str("kind", kind).Msg("text generation failed, using fallback")
		metrics.InsightRequestsTotal.WithLabelValues(kind, "fallback").Inc()
		return fallback
	}
	metrics.InsightRequestsTotal.WithLabelValues(kind, "generated").Inc()
	return text
}

// InspirationKey identifies a record's inspiration. The fingerprint covers the
// prompt inputs so an edited record gets a fresh text.
func InspirationKey(r domain.ProgressRecord) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%d|%s", len(r.TasksCompleted), r.TimeSpentMinutes, strings.TrimSpace(r.DayJournal))
	return fmt.Sprintf("inspiration:%s:%x", r.ID, h.Sum64())
}

// recentJournals returns up to n records with a journal, newest date first.
func recentJournals(records []domain.ProgressRecord, n int) []domain.ProgressRecord {
	out := make([]domain.ProgressRecord, 0, len(records))
	for _, r := range records {
		if strings.TrimSpace(r.DayJournal) != "" {
			out = append(out, r)
		}
	}
	sortRecordsNewestFirst(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}
