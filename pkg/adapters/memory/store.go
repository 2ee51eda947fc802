package memory

import (
	"context"
	"sync"

	"github.com/fabulark/fabula/pkg/domain"
)

// Store implements ports.StoryStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Save persists the collection in memory. Stories are encoded on the way in,
// so callers and the store never share live pointers.
func (s *Store) Save(ctx context.Context, stories map[string]*domain.Story) error {
	next := make(map[string][]byte, len(stories))
	for id, story := range stories {
		raw, err := story.Encode()
		if err != nil {
			return err
		}
		next[id] = raw
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = next
	return nil
}

// Load retrieves the collection from memory.
func (s *Store) Load(ctx context.Context) (map[string]*domain.Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stories := make(map[string]*domain.Story, len(s.data))
	for id, raw := range s.data {
		story, err := domain.Decode(raw)
		if err != nil {
			return nil, err
		}
		stories[id] = story
	}
	return stories, nil
}
