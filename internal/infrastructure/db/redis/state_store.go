package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kinshiplabs/tracker/internal/core/domain"
)

// DocumentStore keeps the state document as a single string value.
// Key format: <key>
type DocumentStore struct {
	client *redis.Client
	key    string
}

// NewDocumentStore wraps client; the document lives under key with no expiry.
func NewDocumentStore(client *redis.Client, key string) *DocumentStore {
	return &DocumentStore{client: client, key: key}
}

func (s *DocumentStore) Read(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrDocumentMissing
	}
	if err != nil {
		return nil, fmt.Errorf("redis store: get: %w", err)
	}
	return data, nil
}

func (s *DocumentStore) Write(ctx context.Context, doc []byte) error {
	if err := s.client.Set(ctx, s.key, doc, 0).Err(); err != nil {
		return fmt.Errorf("redis store: set: %w", err)
	}
	return nil
}

func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
