package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kinshiplabs/tracker/internal/core/domain"
)

type stubGenerator struct {
	reply   string
	err     error
	calls   int
	prompts []string
}

func (g *stubGenerator) GenerateText(_ context.Context, _, userPrompt string) (string, error) {
	g.calls++
	g.prompts = append(g.prompts, userPrompt)
	return g.reply, g.err
}

type stubCache struct {
	items map[string]string
}

func newStubCache() *stubCache { return &stubCache{items: make(map[string]string)} }

func (c *stubCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.items[key]
	return v, ok, nil
}

func (c *stubCache) Set(_ context.Context, key, value string) error {
	c.items[key] = value
	return nil
}

func TestInsightService_NilGeneratorFallsBack(t *testing.T) {
	svc := NewInsightService(nil, nil, time.Second, zerolog.Nop())
	rec := domain.ProgressRecord{ID: "r1", Date: "2024-03-10", DayJournal: "ran 5k"}

	if got := svc.DailyInspiration(context.Background(), rec); got != FallbackInspiration {
		t.Fatalf("expected inspiration fallback, got %q", got)
	}
	if got := svc.SummarizeJournals(context.Background(), domain.User{Name: "Ana"}, []domain.ProgressRecord{rec}); got != FallbackSummary {
		t.Fatalf("expected summary fallback, got %q", got)
	}
}

func TestInsightService_GeneratorErrorFallsBack(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	svc := NewInsightService(gen, nil, time.Second, zerolog.Nop())

	if got := svc.DailyInspiration(context.Background(), domain.ProgressRecord{}); got != FallbackInspiration {
		t.Fatalf("expected fallback, got %q", got)
	}

	gen.err = nil
	gen.reply = "   "
	if got := svc.DailyInspiration(context.Background(), domain.ProgressRecord{}); got != FallbackInspiration {
		t.Fatalf("expected fallback for blank reply, got %q", got)
	}
}

func TestInsightService_SummarizeJournals_NoEntries(t *testing.T) {
	gen := &stubGenerator{reply: "should not be used"}
	svc := NewInsightService(gen, nil, time.Second, zerolog.Nop())

	records := []domain.ProgressRecord{{Date: "2024-03-10", DayJournal: "  "}, {Date: "2024-03-09"}}
	if got := svc.SummarizeJournals(context.Background(), domain.User{Name: "Ana"}, records); got != NoJournalEntries {
		t.Fatalf("expected %q, got %q", NoJournalEntries, got)
	}
	if gen.calls != 0 {
		t.Fatalf("generator must not be called without journals")
	}
}

func TestInsightService_SummarizeJournals_FiveMostRecent(t *testing.T) {
	gen := &stubGenerator{reply: " Ana is steady. "}
	svc := NewInsightService(gen, nil, time.Second, zerolog.Nop())

	var records []domain.ProgressRecord
	for _, d := range []string{"2024-03-01", "2024-03-07", "2024-03-03", "2024-03-05", "2024-03-02", "2024-03-06", "2024-03-04"} {
		records = append(records, domain.ProgressRecord{Date: d, DayJournal: "entry " + d})
	}

	got := svc.SummarizeJournals(context.Background(), domain.User{Name: "Ana"}, records)
	if got != "Ana is steady." {
		t.Fatalf("unexpected summary %q", got)
	}
	prompt := gen.prompts[0]
	for _, d := range []string{"2024-03-07", "2024-03-06", "2024-03-05", "2024-03-04", "2024-03-03"} {
		if !strings.Contains(prompt, "Date: "+d) {
			t.Fatalf("prompt missing %s:\n%s", d, prompt)
		}
	}
	for _, d := range []string{"2024-03-02", "2024-03-01"} {
		if strings.Contains(prompt, d) {
			t.Fatalf("prompt should not include %s", d)
		}
	}
	if strings.Index(prompt, "2024-03-07") > strings.Index(prompt, "2024-03-03") {
		t.Fatalf("journals should be newest first")
	}
	if !strings.Contains(prompt, "overwhelmed, motivated, or stagnant") {
		t.Fatalf("prompt should ask for the friend's state:\n%s", prompt)
	}
}

func TestInsightService_InspirationForCaches(t *testing.T) {
	gen := &stubGenerator{reply: "Great work today!"}
	cache := newStubCache()
	svc := NewInsightService(gen, cache, time.Second, zerolog.Nop())
	rec := domain.ProgressRecord{ID: "r1", TasksCompleted: []string{"t1"}, TimeSpentMinutes: 20}

	first := svc.InspirationFor(context.Background(), rec)
	second := svc.InspirationFor(context.Background(), rec)
	if first != "Great work today!" || second != first {
		t.Fatalf("unexpected texts %q / %q", first, second)
	}
	if gen.calls != 1 {
		t.Fatalf("expected one generator call, got %d", gen.calls)
	}

	rec.TimeSpentMinutes = 45
	svc.InspirationFor(context.Background(), rec)
	if gen.calls != 2 {
		t.Fatalf("edited record should miss the cache, got %d calls", gen.calls)
	}
}

func TestInsightService_FallbackNotCached(t *testing.T) {
	gen := &stubGenerator{err: errors.New("down")}
	cache := newStubCache()
	svc := NewInsightService(gen, cache, time.Second, zerolog.Nop())

	svc.InspirationFor(context.Background(), domain.ProgressRecord{ID: "r1"})
	if len(cache.items) != 0 {
		t.Fatalf("fallback must not be cached: %+v", cache.items)
	}
}

func TestInspirationKey(t *testing.T) {
	a := domain.ProgressRecord{ID: "r1", DayJournal: "ran"}
	b := domain.ProgressRecord{ID: "r1", DayJournal: "ran far"}
	if InspirationKey(a) == InspirationKey(b) {
		t.Fatalf("keys should differ when the journal changes")
	}
	if !strings.HasPrefix(InspirationKey(a), "inspiration:r1:") {
		t.Fatalf("unexpected key %s", InspirationKey(a))
	}
}
