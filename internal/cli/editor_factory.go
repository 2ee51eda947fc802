// Package cli holds the shared plumbing of the fabula commands: the editor
// factory that turns flags into a configured Editor, and signal handling.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fabulark/fabula"
	"github.com/fabulark/fabula/internal/catalog"
	"github.com/fabulark/fabula/internal/logging"
	"github.com/fabulark/fabula/pkg/adapters/llmbridge"
	loamstore "github.com/fabulark/fabula/pkg/adapters/loam"
	"github.com/fabulark/fabula/pkg/adapters/memory"
	redisstore "github.com/fabulark/fabula/pkg/adapters/redis"
	"github.com/fabulark/fabula/pkg/ports"
)

// EditorOptions collects the flags every command shares.
type EditorOptions struct {
	Store         string // "loam", "redis" or "memory"
	Dir           string // loam workspace
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	BridgeURL     string // llm bridge base URL, empty disables generation
	CatalogDir    string
	Debug         bool
}

// NewEditor initializes an Editor with standard CLI conventions.
func NewEditor(ctx context.Context, opts EditorOptions, extra ...fabula.Option) (*fabula.Editor, error) {
	logger := NewLogger(opts.Debug)

	store, err := createStore(opts)
	if err != nil {
		return nil, fmt.Errorf("error initializing store: %w", err)
	}

	editorOpts := []fabula.Option{
		fabula.WithLogger(logger),
		fabula.WithStore(store),
	}

	if opts.BridgeURL != "" {
		editorOpts = append(editorOpts, fabula.WithGenerator(llmbridge.New(opts.BridgeURL)))
	}

	if opts.CatalogDir != "" {
		cat, err := catalog.Load(opts.CatalogDir)
		if err != nil {
			return nil, fmt.Errorf("error loading catalog: %w", err)
		}
		editorOpts = append(editorOpts, fabula.WithCatalog(cat))
	}

	editorOpts = append(editorOpts, extra...)

	editor, err := fabula.Open(ctx, editorOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing editor: %w", err)
	}
	return editor, nil
}

func createStore(opts EditorOptions) (ports.StoryStore, error) {
	switch opts.Store {
	case "", "loam":
		return loamstore.New(opts.Dir)
	case "redis":
		return redisstore.New(opts.RedisAddr, opts.RedisPassword, opts.RedisDB), nil
	case "memory":
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown store %q (supported: loam, redis, memory)", opts.Store)
	}
}

// NewLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout output).
func NewLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}
