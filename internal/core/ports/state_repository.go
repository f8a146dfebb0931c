package ports

import (
	"context"

	"github.com/kinshiplabs/tracker/internal/core/domain"
)

// StateRepository persists the whole AppState as one document.
type StateRepository interface {
	// Load returns the stored state, or the seed state when nothing is stored.
	Load(ctx context.Context) (domain.AppState, error)
	// Save overwrites the stored document with state.
	Save(ctx context.Context, state domain.AppState) error
	// ClearSession loads the stored document, drops currentUser and saves it back.
	ClearSession(ctx context.Context) error
}

// DocumentStore reads and writes the serialized document under a fixed key.
type DocumentStore interface {
	// Read returns domain.ErrDocumentMissing when nothing has been written yet.
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, doc []byte) error
	Ping(ctx context.Context) error
}
