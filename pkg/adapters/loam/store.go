package loam

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/fabulark/fabula/pkg/domain"
)

// documentID is the single Loam document holding the story collection. The
// collection is written as a whole on every save, matching the editor's
// flush-on-close model, so one document keeps the save path to a single
// transactional commit.
const documentID = "stories.md"

// collectionMetadata is the YAML frontmatter of the collection document.
type collectionMetadata struct {
	Stories int `mapstructure:"stories"`
}

// Store implements ports.StoryStore on a Loam filesystem repository. Each
// save is a Loam transaction, so the on-disk document is never observed
// half-written.
type Store struct {
	svc  *core.Service
	repo *loam.TypedRepository[collectionMetadata]
}

// New opens (or creates) a Loam repository at path and returns a store
// backed by it.
func New(path string) (*Store, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath, loam.WithVersioning(false))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return NewFromRepository(repo), nil
}

// NewFromRepository wraps an already initialized Loam repository.
func NewFromRepository(repo core.Repository) *Store {
	return &Store{
		svc:  core.NewService(repo),
		repo: loam.NewTypedRepository[collectionMetadata](repo),
	}
}

// Save writes the collection as one document in a single commit.
func (s *Store) Save(ctx context.Context, stories map[string]*domain.Story) error {
	collection := make(map[string]json.RawMessage, len(stories))
	for id, story := range stories {
		raw, err := story.Encode()
		if err != nil {
			return fmt.Errorf("failed to encode story %q: %w", id, err)
		}
		collection[id] = raw
	}

	content, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}

	tx, err := s.svc.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin loam transaction: %w", err)
	}
	err = tx.Save(ctx, core.Document{
		ID:      documentID,
		Content: string(content),
		Metadata: core.Metadata{
			"stories": len(collection),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	if err := tx.Commit(ctx, "Save stories"); err != nil {
		return fmt.Errorf("failed to commit collection: %w", err)
	}
	return nil
}

// Load reads the collection document. A repository without one yields an
// empty collection.
func (s *Store) Load(ctx context.Context) (map[string]*domain.Story, error) {
	doc, err := s.repo.Get(ctx, "stories")
	if err != nil {
		// nothing persisted yet
		return map[string]*domain.Story{}, nil
	}

	var collection map[string]json.RawMessage
	if err := json.Unmarshal([]byte(doc.Content), &collection); err != nil {
		return nil, fmt.Errorf("%w: collection document: %v", domain.ErrParseDocument, err)
	}

	stories := make(map[string]*domain.Story, len(collection))
	for id, raw := range collection {
		story, err := domain.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("story %q: %w", id, err)
		}
		stories[id] = story
	}
	return stories, nil
}
