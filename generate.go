package fabula

import (
	"context"
	"fmt"

	"github.com/fabulark/fabula/internal/generation"
	"github.com/fabulark/fabula/pkg/domain"
)

// ErrNoGenerator is returned when a generation is requested without a
// TextGenerator configured.
var ErrNoGenerator = fmt.Errorf("no text generator configured")

// Progress reports the state of a generation run after a step.
type Progress struct {
	Current int
	Total   int
	NodeID  string
	Label   string
}

// Run is one generation walk over a story. It works on a snapshot taken when
// the run was created; the editor's story is only replaced by Commit, after
// every step succeeded.
type Run struct {
	editor  *Editor
	storyID string
	session *generation.Session
}

// RunOption configures a generation run.
type RunOption func(*runConfig)

type runConfig struct {
	startNode string
}

// FromNode limits the run to the nodes reachable from the given one.
func FromNode(id string) RunOption {
	return func(c *runConfig) {
		c.startNode = id
	}
}

// Generate prepares a generation run over the story. The run is strictly
// sequential: call Step until Done, then Commit.
func (e *Editor) Generate(storyID string, opts ...RunOption) (*Run, error) {
	if e.gen == nil {
		return nil, ErrNoGenerator
	}
	story, err := e.Story(storyID)
	if err != nil {
		return nil, err
	}

	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	sessionOpts := []generation.Option{
		generation.WithLogger(e.logger),
	}
	if e.observer != nil {
		sessionOpts = append(sessionOpts, generation.WithObserver(e.observer))
	}
	if cfg.startNode != "" {
		sessionOpts = append(sessionOpts, generation.WithStartNode(cfg.startNode))
	}

	session, err := generation.NewSession(story, e.gen, sessionOpts...)
	if err != nil {
		return nil, err
	}
	return &Run{editor: e, storyID: storyID, session: session}, nil
}

// Total returns the number of steps the run will take.
func (r *Run) Total() int {
	return r.session.Total()
}

// Done reports whether the run finished, successfully or not.
func (r *Run) Done() bool {
	return r.session.Done()
}

// Step issues the next generation request and waits for it. A failed step
// aborts the run; the editor's story is untouched either way until Commit.
func (r *Run) Step(ctx context.Context) (Progress, error) {
	p, err := r.session.Step(ctx)
	return Progress{Current: p.Current, Total: p.Total, NodeID: p.NodeID, Label: p.Label}, err
}

// Commit replaces the editor's story with the fully generated one. It fails
// when the run is unfinished or aborted, and when the story was deleted while
// the run was in flight.
func (r *Run) Commit() (*domain.Story, error) {
	generated, err := r.session.Story()
	if err != nil {
		return nil, err
	}
	return r.editor.Update(r.storyID, func(*domain.Story) *domain.Story {
		return generated
	})
}
