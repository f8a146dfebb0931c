package state

import (
	"fmt"
	"time"

	"github.com/kinshiplabs/tracker/internal/core/domain"
)

var refTime = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

// testEnv returns an Env with a fixed clock and sequential ids.
func testEnv() Env {
	n := 0
	return Env{
		Now: func() time.Time { return refTime },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	}
}

func seed() domain.AppState {
	return domain.SeedState(nil, nil)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func loggedIn(t interface{ Fatalf(string, ...any) }, s domain.AppState, username, password string, role domain.Role) domain.AppState {
	next, _, err := Login(s, username, password, role)
	if err != nil {
		t.Fatalf("login %s: %v", username, err)
	}
	return next
}
