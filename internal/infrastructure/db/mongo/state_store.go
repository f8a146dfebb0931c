package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kinshiplabs/tracker/internal/core/domain"
)

const collectionState = "app_state"

// stateDocument wraps the serialized AppState. Payload keeps the JSON text
// as-is so every driver stores byte-identical documents.
type stateDocument struct {
	Key       string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// DocumentStore keeps the state document in one Mongo document with _id = key.
type DocumentStore struct {
	col *mongo.Collection
	key string
	now func() time.Time
}

func NewDocumentStore(db *mongo.Database, key string) *DocumentStore {
	return &DocumentStore{
		col: db.Collection(collectionState),
		key: key,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *DocumentStore) Read(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc stateDocument
	err := s.col.FindOne(ctx, s.filter()).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrDocumentMissing
	}
	if err != nil {
		return nil, fmt.Errorf("mongo store: find: %w", err)
	}
	return payloadOf(doc), nil
}

// Write upserts the whole document.
func (s *DocumentStore) Write(ctx context.Context, payload []byte) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.col.ReplaceOne(ctx, s.filter(), newStateDocument(s.key, payload, s.now()), options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo store: replace: %w", err)
	}
	return nil
}

func (s *DocumentStore) Ping(ctx context.Context) error {
	if err := s.col.Database().Client().Ping(ctx, nil); err != nil {
		return err
	}
	return s.col.Database().RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

func (s *DocumentStore) filter() bson.M {
	return bson.M{"_id": s.key}
}

func newStateDocument(key string, payload []byte, now time.Time) stateDocument {
	return stateDocument{Key: key, Payload: string(payload), UpdatedAt: now}
}

func payloadOf(doc stateDocument) []byte {
	return []byte(doc.Payload)
}
