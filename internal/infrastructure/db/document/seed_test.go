package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kinshiplabs/tracker/internal/core/domain"
)

const seedYAML = `
users:
  - id: coach-1
    name: Coach
    username: coach
    password: s3cret
    role: ADMIN
    joined_at: 2024-02-01T00:00:00Z
  - id: demo-1
    name: Demo Friend
    username: demo
    password: demo
    role: FRIEND
tasks:
  - id: walk
    title: Evening walk
    category: health
`

func TestParseSeed(t *testing.T) {
	state, err := ParseSeed([]byte(seedYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	supporter, ok := state.Supporter()
	if !ok || supporter.ID != "coach-1" || supporter.Password != "s3cret" {
		t.Fatalf("unexpected supporter: %+v", supporter)
	}
	if len(state.Friends()) != 1 {
		t.Fatalf("expected one friend, got %d", len(state.Friends()))
	}
	if len(state.Tasks) != 1 || state.Tasks[0].Title != "Evening walk" {
		t.Fatalf("unexpected tasks: %+v", state.Tasks)
	}
	if state.Records == nil || state.Messages == nil {
		t.Fatalf("collections not initialised")
	}
}

func TestParseSeed_TasksOnlyKeepsDefaultUsers(t *testing.T) {
	state, err := ParseSeed([]byte("tasks:\n  - id: a\n    title: A\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if supporter, ok := state.Supporter(); !ok || supporter.ID != domain.SupporterID {
		t.Fatalf("default supporter missing: %+v", state.Users)
	}
}

func TestParseSeed_Invalid(t *testing.T) {
	cases := map[string]string{
		"no admin":       "users:\n  - {id: a, username: a, role: FRIEND}\n",
		"two admins":     "users:\n  - {id: a, username: a, role: ADMIN}\n  - {id: b, username: b, role: ADMIN}\n",
		"bad role":       "users:\n  - {id: a, username: a, role: OWNER}\n",
		"duplicate name": "users:\n  - {id: a, username: a, role: ADMIN}\n  - {id: b, username: a, role: FRIEND}\n",
		"not yaml":       "users: [",
	}
	for name, doc := range cases {
		if _, err := ParseSeed([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadSeed_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(seedYAML), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadSeed(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := LoadSeed(filepath.Join(t.TempDir(), "missing.yaml")); err == nil || !strings.Contains(err.Error(), "read seed file") {
		t.Fatalf("expected read error, got %v", err)
	}
}
