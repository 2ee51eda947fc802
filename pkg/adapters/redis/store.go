package redis

import (
	"context"
	"fmt"

	"github.com/fabulark/fabula/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

const defaultPrefix = "fabula:stories"

// Store implements ports.StoryStore using Redis. Each story lives under
// <prefix>:<id> with a SET at <prefix> indexing the collection, so Save can
// replace the whole collection atomically enough for the single-writer model.
type Store struct {
	client *backend.Client
	prefix string
}

type Option func(*Store)

// WithPrefix sets the key prefix for the collection.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: defaultPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(id string) string {
	return s.prefix + ":" + id
}

// Save replaces the stored collection with the given one.
func (s *Store) Save(ctx context.Context, stories map[string]*domain.Story) error {
	encoded := make(map[string][]byte, len(stories))
	for id, story := range stories {
		raw, err := story.Encode()
		if err != nil {
			return fmt.Errorf("failed to encode story %q: %w", id, err)
		}
		encoded[id] = raw
	}

	// Drop stories that are gone from the collection.
	previous, err := s.client.SMembers(ctx, s.prefix).Result()
	if err != nil {
		return fmt.Errorf("failed to read story index: %w", err)
	}

	pipe := s.client.Pipeline()
	for _, id := range previous {
		if _, kept := encoded[id]; !kept {
			pipe.Del(ctx, s.key(id))
			pipe.SRem(ctx, s.prefix, id)
		}
	}
	for id, raw := range encoded {
		pipe.Set(ctx, s.key(id), raw, 0)
		pipe.SAdd(ctx, s.prefix, id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the stored collection.
func (s *Store) Load(ctx context.Context) (map[string]*domain.Story, error) {
	ids, err := s.client.SMembers(ctx, s.prefix).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read story index: %w", err)
	}

	stories := make(map[string]*domain.Story, len(ids))
	for _, id := range ids {
		raw, err := s.client.Get(ctx, s.key(id)).Bytes()
		if err != nil {
			if err == backend.Nil {
				// index entry without a document; skip it
				continue
			}
			return nil, fmt.Errorf("failed to get story %q: %w", id, err)
		}
		story, err := domain.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode story %q: %w", id, err)
		}
		stories[id] = story
	}
	return stories, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
