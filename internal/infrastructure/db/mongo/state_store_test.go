package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestStateDocument_BSONRoundTrip(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	payload := []byte(`{"users":[],"currentUser":null}`)

	raw, err := bson.Marshal(newStateDocument("tracker_state", payload, now))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal map: %v", err)
	}
	if fields["_id"] != "tracker_state" {
		t.Fatalf("document id must be the store key, got %v", fields["_id"])
	}

	var doc stateDocument
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(payloadOf(doc)) != string(payload) {
		t.Fatalf("payload changed: %s", payloadOf(doc))
	}
	if !doc.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected updated_at: %v", doc.UpdatedAt)
	}
}
