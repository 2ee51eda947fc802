package fabula

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/fabulark/fabula/internal/catalog"
	"github.com/fabulark/fabula/internal/generation"
	"github.com/fabulark/fabula/internal/logging"
	"github.com/fabulark/fabula/pkg/adapters/memory"
	"github.com/fabulark/fabula/pkg/domain"
	"github.com/fabulark/fabula/pkg/ports"
	"github.com/google/uuid"
)

// Editor is the high-level entry point for the Fabula library. It owns the
// story collection: every mutation funnels through Update, so readers always
// observe complete snapshots, and the collection is flushed to the store as a
// whole on Save/Close.
type Editor struct {
	mu      sync.RWMutex
	stories map[string]*domain.Story

	store    ports.StoryStore
	gen      ports.TextGenerator
	catalog  ports.Catalog
	observer generation.Observer
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithStore injects a persistence adapter. Default: in-memory.
func WithStore(store ports.StoryStore) Option {
	return func(e *Editor) {
		e.store = store
	}
}

// WithGenerator injects the text-generation service client.
func WithGenerator(gen ports.TextGenerator) Option {
	return func(e *Editor) {
		e.gen = gen
	}
}

// WithCatalog injects the authoring vocabulary. Default: built-in vocabulary.
func WithCatalog(c ports.Catalog) Option {
	return func(e *Editor) {
		e.catalog = c
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithObserver registers a metrics hook for generation requests.
func WithObserver(o generation.Observer) Option {
	return func(e *Editor) {
		e.observer = o
	}
}

// Open builds an editor and restores the story collection from the store.
// A store with nothing persisted (or an unreadable collection) yields an
// empty editor rather than an error; the author starts fresh.
func Open(ctx context.Context, opts ...Option) (*Editor, error) {
	e := &Editor{}
	for _, opt := range opts {
		opt(e)
	}

	if e.store == nil {
		e.store = memory.NewStore()
	}
	if e.catalog == nil {
		e.catalog = catalog.Default()
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}

	stories, err := e.store.Load(ctx)
	if err != nil {
		e.logger.Warn("could not restore stories, starting empty", "err", err)
		stories = map[string]*domain.Story{}
	}
	e.stories = stories
	e.logger.Debug("editor opened", "stories", len(stories))
	return e, nil
}

// Save flushes the story collection to the store.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.RLock()
	snapshot := make(map[string]*domain.Story, len(e.stories))
	for id, s := range e.stories {
		snapshot[id] = s
	}
	e.mu.RUnlock()

	if err := e.store.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("save stories: %w", err)
	}
	return nil
}

// Close flushes and releases the editor.
func (e *Editor) Close(ctx context.Context) error {
	return e.Save(ctx)
}

// Catalog returns the authoring vocabulary.
func (e *Editor) Catalog() ports.Catalog {
	return e.catalog
}

// StoryIDs returns the collection's IDs in stable order.
func (e *Editor) StoryIDs() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ids := make([]string, 0, len(e.stories))
	for id := range e.stories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Story returns the current snapshot of a story.
func (e *Editor) Story(id string) (*domain.Story, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s, ok := e.stories[id]
	if !ok {
		return nil, fmt.Errorf("story %q: %w", id, domain.ErrStoryNotFound)
	}
	return s, nil
}

// CreateStory adds an empty story to the collection and returns its ID.
func (e *Editor) CreateStory() (string, *domain.Story) {
	id := uuid.New().String()
	story := domain.NewStory()

	e.mu.Lock()
	e.stories[id] = story
	e.mu.Unlock()

	e.logger.Debug("story created", "story_id", id)
	return id, story
}

// DeleteStory removes the story. Deleting an absent ID is a no-op.
func (e *Editor) DeleteStory(id string) {
	e.mu.Lock()
	delete(e.stories, id)
	e.mu.Unlock()
}

// Update applies fn to the story's current snapshot and commits the result.
// fn must treat its argument as immutable and return the next snapshot, which
// becomes visible to all readers at once.
func (e *Editor) Update(id string, fn func(*domain.Story) *domain.Story) (*domain.Story, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	current, ok := e.stories[id]
	if !ok {
		return nil, fmt.Errorf("story %q: %w", id, domain.ErrStoryNotFound)
	}
	next := fn(current)
	if next == nil {
		return nil, fmt.Errorf("story %q: update returned nil", id)
	}
	e.stories[id] = next
	return next, nil
}

// ImportStory decodes a serialized story document into the collection under a
// fresh ID. Malformed documents are rejected with domain.ErrParseDocument.
func (e *Editor) ImportStory(data []byte) (string, *domain.Story, error) {
	story, err := domain.Decode(data)
	if err != nil {
		return "", nil, err
	}

	id := uuid.New().String()
	e.mu.Lock()
	e.stories[id] = story
	e.mu.Unlock()
	return id, story, nil
}

// ExportStory encodes the story's current snapshot as a document.
func (e *Editor) ExportStory(id string) ([]byte, error) {
	story, err := e.Story(id)
	if err != nil {
		return nil, err
	}
	return story.Encode()
}
