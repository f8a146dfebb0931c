// Package state holds the pure transition functions of the tracker. Every
// function takes the current AppState and returns the next one without
// touching the input or doing any I/O; persistence is the caller's job.
package state

import (
	"time"

	"github.com/google/uuid"
)

// Env supplies the non-deterministic inputs of a transition.
type Env struct {
	Now   func() time.Time
	NewID func() string
}

// DefaultEnv uses the wall clock and random UUIDs.
func DefaultEnv() Env {
	return Env{
		Now:   func() time.Time { return time.Now().UTC() },
		NewID: uuid.NewString,
	}
}

func (e Env) now() time.Time {
	if e.Now == nil {
		return time.Now().UTC()
	}
	return e.Now()
}

func (e Env) newID() string {
	if e.NewID == nil {
		return uuid.NewString()
	}
	return e.NewID()
}
