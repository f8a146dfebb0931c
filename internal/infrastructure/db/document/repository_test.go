package document

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kinshiplabs/tracker/internal/core/domain"
)

type stubDocumentStore struct {
	doc      []byte
	readErr  error
	writeErr error
	writes   int
}

func (s *stubDocumentStore) Read(_ context.Context) ([]byte, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	if s.doc == nil {
		return nil, domain.ErrDocumentMissing
	}
	return append([]byte(nil), s.doc...), nil
}

func (s *stubDocumentStore) Write(_ context.Context, doc []byte) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.writes++
	s.doc = append([]byte(nil), doc...)
	return nil
}

func (s *stubDocumentStore) Ping(context.Context) error { return nil }

func newTestRepository(store *stubDocumentStore, resetOnCorrupt bool) *Repository {
	return NewRepository(store, Options{Driver: "stub", ResetOnCorrupt: resetOnCorrupt}, zerolog.Nop())
}

func TestRepository_LoadSeedWhenAbsent(t *testing.T) {
	store := &stubDocumentStore{}
	repo := newTestRepository(store, false)

	state, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	supporter, ok := state.Supporter()
	if !ok || supporter.Username != "admin" || supporter.Password != "adminpass" {
		t.Fatalf("seed supporter missing: %+v", state.Users)
	}
	if len(state.Tasks) == 0 {
		t.Fatalf("seed tasks missing")
	}
	if len(state.Records) != 0 || len(state.Messages) != 0 || len(state.Groups) != 0 || len(state.Statuses) != 0 {
		t.Fatalf("seed collections not empty: %+v", state)
	}
	if state.CurrentUser != nil {
		t.Fatalf("seed has a session")
	}
	if store.writes != 0 {
		t.Fatalf("load must not write")
	}
}

func TestRepository_SaveThenLoad(t *testing.T) {
	store := &stubDocumentStore{}
	repo := newTestRepository(store, false)
	ctx := context.Background()

	state, _ := repo.Load(ctx)
	state.Records = append(state.Records, domain.ProgressRecord{ID: "r1", UserID: "u1", Date: "2024-01-01", TasksCompleted: []string{"t1"}})
	if err := repo.Save(ctx, state); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Records) != 1 || loaded.Records[0].ID != "r1" {
		t.Fatalf("record not persisted: %+v", loaded.Records)
	}
}

func TestRepository_ClearSession(t *testing.T) {
	store := &stubDocumentStore{}
	repo := newTestRepository(store, false)
	ctx := context.Background()

	state, _ := repo.Load(ctx)
	admin := state.Users[0]
	state.CurrentUser = &admin
	if err := repo.Save(ctx, state); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := repo.ClearSession(ctx); err != nil {
		t.Fatalf("clear session: %v", err)
	}
	loaded, _ := repo.Load(ctx)
	if loaded.CurrentUser != nil {
		t.Fatalf("session survived ClearSession")
	}
	if len(loaded.Users) != len(state.Users) {
		t.Fatalf("users changed by ClearSession")
	}
}

func TestRepository_CorruptFailsFast(t *testing.T) {
	store := &stubDocumentStore{doc: []byte("{not json")}
	repo := newTestRepository(store, false)

	if _, err := repo.Load(context.Background()); !errors.Is(err, domain.ErrCorruptDocument) {
		t.Fatalf("expected ErrCorruptDocument, got %v", err)
	}
	if store.writes != 0 {
		t.Fatalf("corrupt document was overwritten")
	}
}

func TestRepository_CorruptResetsToSeed(t *testing.T) {
	store := &stubDocumentStore{doc: []byte("{not json")}
	repo := newTestRepository(store, true)

	state, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := state.Supporter(); !ok {
		t.Fatalf("expected seed state")
	}
	if store.writes != 1 {
		t.Fatalf("expected seed to be written back, writes=%d", store.writes)
	}
	if _, _, err := Decode(store.doc); err != nil {
		t.Fatalf("written seed does not decode: %v", err)
	}
}

func TestRepository_PropagatesStoreErrors(t *testing.T) {
	boom := errors.New("disk gone")
	repo := newTestRepository(&stubDocumentStore{readErr: boom}, true)
	if _, err := repo.Load(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}

	repo = newTestRepository(&stubDocumentStore{writeErr: boom}, false)
	if err := repo.Save(context.Background(), domain.SeedState(nil, nil)); !errors.Is(err, boom) {
		t.Fatalf("expected write error, got %v", err)
	}
}

func TestRepository_CustomSeed(t *testing.T) {
	seed := domain.SeedState(nil, []domain.Task{{ID: "x", Title: "Only task"}})
	repo := NewRepository(&stubDocumentStore{}, Options{Seed: &seed}, zerolog.Nop())

	state, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(state.Tasks) != 1 || state.Tasks[0].ID != "x" {
		t.Fatalf("custom seed not used: %+v", state.Tasks)
	}
}
