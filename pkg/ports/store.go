package ports

import (
	"context"

	"github.com/fabulark/fabula/pkg/domain"
)

// StoryStore defines the interface for persisting the story collection.
// The collection is saved and restored as a whole: the editor owns all
// stories in memory and flushes them on close.
type StoryStore interface {
	// Save persists the full story collection, replacing whatever was stored.
	Save(ctx context.Context, stories map[string]*domain.Story) error

	// Load retrieves the story collection. A store with nothing persisted
	// returns an empty, non-nil map and no error.
	Load(ctx context.Context) (map[string]*domain.Story, error)
}
