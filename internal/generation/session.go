package generation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fabulark/fabula/pkg/domain"
	"github.com/fabulark/fabula/pkg/graph"
	"github.com/fabulark/fabula/pkg/ports"
)

// ErrIncompleteSettings is returned when the story has no model, prompt or
// main character configured.
var ErrIncompleteSettings = fmt.Errorf("generation settings incomplete")

// ErrSessionAborted is returned by Story when a step failed.
var ErrSessionAborted = fmt.Errorf("generation session aborted")

// Progress reports the state of the walk after a step.
type Progress struct {
	Current int
	Total   int
	NodeID  string
	Label   string
}

// Observer receives the outcome of every generation request.
// Outcome is "success" or "failure".
type Observer interface {
	GenerationObserved(outcome string, duration time.Duration)
}

// Session walks the generatable nodes of one story, strictly one request at a
// time. Not safe for concurrent use; the caller steps it from a single
// goroutine and stops stepping to cancel.
type Session struct {
	story   *domain.Story
	gen     ports.TextGenerator
	logger  *slog.Logger
	observe Observer

	queue []domain.Node
	index int
	err   error
}

type Option func(*Session)

// WithStartNode limits the walk to the closure reachable from the node.
// Without it the whole graph is generated in node order.
func WithStartNode(id string) Option {
	return func(s *Session) {
		s.queue = generatable(graph.Reachable(s.story.Flow, id))
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithObserver registers a metrics hook.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		s.observe = o
	}
}

// NewSession prepares a walk over the story. The story pointer is treated as
// an immutable snapshot; all commits happen on a private working copy.
func NewSession(story *domain.Story, gen ports.TextGenerator, opts ...Option) (*Session, error) {
	if !story.Settings.Complete() {
		return nil, ErrIncompleteSettings
	}

	s := &Session{
		story:  story,
		gen:    gen,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		queue:  generatable(story.Flow.Nodes),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// generatable filters a node list to the kinds that receive a request.
// Info nodes carry authored text only and are skipped.
func generatable(nodes []domain.Node) []domain.Node {
	out := make([]domain.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Kind == domain.KindScene || n.Kind == domain.KindChoice {
			out = append(out, n)
		}
	}
	return out
}

// Total returns the number of steps the walk will take.
func (s *Session) Total() int {
	return len(s.queue)
}

// Done reports whether the walk finished (successfully or not).
func (s *Session) Done() bool {
	return s.err != nil || s.index >= len(s.queue)
}

// Story returns the fully generated story after the terminal step. Before
// that, or after a failed step, it returns an error and the original story
// is guaranteed untouched.
func (s *Session) Story() (*domain.Story, error) {
	if s.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionAborted, s.err)
	}
	if s.index < len(s.queue) {
		return nil, fmt.Errorf("%w: %d of %d steps pending", ErrSessionAborted, len(s.queue)-s.index, len(s.queue))
	}
	return s.story, nil
}

// Step issues the next generation request, waits for it, and commits the
// text to the working copy. A failed request aborts the session; subsequent
// calls keep returning the same error.
func (s *Session) Step(ctx context.Context) (Progress, error) {
	if s.err != nil {
		return Progress{Current: s.index, Total: len(s.queue)}, s.err
	}
	if s.index >= len(s.queue) {
		return Progress{Current: s.index, Total: len(s.queue)}, nil
	}

	node := s.queue[s.index]
	req := buildRequest(s.story, node)

	s.logger.Debug("generation step", "node", node.Label, "kind", node.Kind,
		"current", s.index+1, "total", len(s.queue))

	start := time.Now()
	texts, err := s.gen.Generate(ctx, req)
	duration := time.Since(start)

	if err != nil {
		s.observed("failure", duration)
		s.err = fmt.Errorf("generate %q: %w", node.Label, err)
		s.logger.Error("generation step failed", "node", node.Label, "err", err)
		return Progress{Current: s.index, Total: len(s.queue), NodeID: node.ID, Label: node.Label}, s.err
	}
	s.observed("success", duration)

	snap := domain.TextSnapshot{Prompt: req.ScenePrompt, Text: snapshotText(texts)}
	switch node.Kind {
	case domain.KindScene:
		if scene, ok := s.story.Scene(node.ID); ok {
			s.story = s.story.WithScene(node.ID, scene.WithSnapshot(snap))
		}
	case domain.KindChoice:
		if choice, ok := s.story.Choice(node.ID); ok {
			s.story = s.story.WithChoice(node.ID, choice.WithSnapshot(snap))
		}
	}

	s.index++
	return Progress{Current: s.index, Total: len(s.queue), NodeID: node.ID, Label: node.Label}, nil
}

func (s *Session) observed(outcome string, duration time.Duration) {
	if s.observe != nil {
		s.observe.GenerationObserved(outcome, duration)
	}
}
