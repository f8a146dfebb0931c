package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kinshiplabs/tracker/internal/core/domain"
	"github.com/kinshiplabs/tracker/internal/core/ports"
	"github.com/kinshiplabs/tracker/internal/pkg/metrics"
)

// Options configures a Repository.
type Options struct {
	// Driver labels metrics and logs (file, redis, mongo).
	Driver string
	// Seed is returned by Load while nothing is stored. Defaults to domain.SeedState(nil, nil).
	Seed *domain.AppState
	// ResetOnCorrupt replaces an undecodable document with the seed state
	// instead of failing.
	ResetOnCorrupt bool
}

// Repository implements ports.StateRepository on top of a DocumentStore.
type Repository struct {
	store          ports.DocumentStore
	driver         string
	seed           domain.AppState
	resetOnCorrupt bool
	log            zerolog.Logger
}

var _ ports.StateRepository = (*Repository)(nil)

func NewRepository(store ports.DocumentStore, opts Options, log zerolog.Logger) *Repository {
	seed := domain.SeedState(nil, nil)
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	driver := opts.Driver
	if driver == "" {
		driver = "unknown"
	}
	return &Repository{
		store:          store,
		driver:         driver,
		seed:           normalize(seed),
		resetOnCorrupt: opts.ResetOnCorrupt,
		log:            log,
	}
}

// Load reads the stored document, falling back to the seed state when none exists.
func (r *Repository) Load(ctx context.Context) (domain.AppState, error) {
	defer r.observe("load", time.Now())

	raw, err := r.store.Read(ctx)
	if errors.Is(err, domain.ErrDocumentMissing) {
		r.log.Debug().Str("driver", r.driver).Msg("no stored document, using seed state")
		return r.seed.Clone(), nil
	}
	if err != nil {
		return domain.AppState{}, fmt.Errorf("load state: %w", err)
	}

	state, applied, err := Decode(raw)
	if err != nil {
		if !r.resetOnCorrupt {
			return domain.AppState{}, fmt.Errorf("load state: %w", err)
		}
		r.log.Warn().Err(err).Str("driver", r.driver).Msg("stored document is corrupt, resetting to seed state")
		seed := r.seed.Clone()
		if saveErr := r.write(ctx, seed); saveErr != nil {
			return domain.AppState{}, fmt.Errorf("load state: reset: %w", saveErr)
		}
		return seed, nil
	}

	for _, step := range applied {
		metrics.DocumentMigrationsTotal.WithLabelValues(step).Inc()
	}
	if len(applied) > 0 {
		r.log.Info().Strs("steps", applied).Str("driver", r.driver).Msg("stored document backfilled")
	}
	return state, nil
}

// Save overwrites the stored document.
func (r *Repository) Save(ctx context.Context, state domain.AppState) error {
	defer r.observe("save", time.Now())

	if err := r.write(ctx, state); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// ClearSession persists the stored document with currentUser set to null.
func (r *Repository) ClearSession(ctx context.Context) error {
	defer r.observe("clear_session", time.Now())

	state, err := r.Load(ctx)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	state.CurrentUser = nil
	if err := r.write(ctx, state); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (r *Repository) write(ctx context.Context, state domain.AppState) error {
	doc, err := Encode(state)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return r.store.Write(ctx, doc)
}

func (r *Repository) observe(op string, start time.Time) {
	metrics.StoreOperationDuration.WithLabelValues(op, r.driver).Observe(time.Since(start).Seconds())
}
