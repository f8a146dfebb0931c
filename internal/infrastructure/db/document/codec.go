// Package document serializes AppState as the single persisted JSON document
// and brings documents written by older versions up to the current shape.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kinshiplabs/tracker/internal/core/domain"
)

// Migration fills in a field an older document may lack. Apply reports
// whether it changed the document and must be idempotent.
type Migration struct {
	Name  string
	Apply func(doc map[string]json.RawMessage) bool
}

var migrations = []Migration{
	backfillCollection("messages"),
	backfillCollection("groups"),
	backfillCollection("statuses"),
}

// Migrations returns the ordered backfill steps run on every load.
func Migrations() []Migration {
	out := make([]Migration, len(migrations))
	copy(out, migrations)
	return out
}

// backfillCollection sets field to [] when it is absent or null.
func backfillCollection(field string) Migration {
	return Migration{
		Name: "backfill-" + field,
		Apply: func(doc map[string]json.RawMessage) bool {
			if raw, ok := doc[field]; ok && !isNull(raw) {
				return false
			}
			doc[field] = json.RawMessage("[]")
			return true
		},
	}
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Decode parses a stored document, applying every migration first. It returns
// the names of the steps that changed the document. Malformed input yields an
// error wrapping domain.ErrCorruptDocument.
func Decode(raw []byte) (domain.AppState, []string, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.AppState{}, nil, fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}
	if doc == nil {
		return domain.AppState{}, nil, fmt.Errorf("%w: document is null", domain.ErrCorruptDocument)
	}

	var applied []string
	for _, m := range migrations {
		if m.Apply(doc) {
			applied = append(applied, m.Name)
		}
	}

	migrated, err := json.Marshal(doc)
	if err != nil {
		return domain.AppState{}, nil, fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}
	var state domain.AppState
	if err := json.Unmarshal(migrated, &state); err != nil {
		return domain.AppState{}, nil, fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}
	return normalize(state), applied, nil
}

// Encode serializes state. Nil collections are written as [] so a document
// never carries null where a sequence is expected.
func Encode(state domain.AppState) ([]byte, error) {
	return json.Marshal(normalize(state))
}

func normalize(s domain.AppState) domain.AppState {
	s.Users = orEmpty(s.Users)
	s.Tasks = orEmpty(s.Tasks)
	s.Records = orEmpty(s.Records)
	s.Messages = orEmpty(s.Messages)
	s.Groups = orEmpty(s.Groups)
	s.Statuses = orEmpty(s.Statuses)

	if len(s.Records) > 0 {
		records := make([]domain.ProgressRecord, len(s.Records))
		for i, r := range s.Records {
			r.TasksCompleted = orEmpty(r.TasksCompleted)
			records[i] = r
		}
		s.Records = records
	}
	if len(s.Groups) > 0 {
		groups := make([]domain.Group, len(s.Groups))
		for i, g := range s.Groups {
			g.MemberIDs = orEmpty(g.MemberIDs)
			g.Posts = orEmpty(g.Posts)
			groups[i] = g
		}
		s.Groups = groups
	}
	return s
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
