package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/fabulark/fabula/pkg/ports"
)

// StubGenerator implements ports.TextGenerator with scripted responses, for
// tests and offline use. Responses are consumed in order; when the script
// runs out the stub echoes the request prompt.
type StubGenerator struct {
	mu       sync.Mutex
	script   [][]ports.GeneratedText
	err      error
	Requests []ports.GenerationRequest
}

// NewStubGenerator creates a stub that replies with the given responses in order.
func NewStubGenerator(script ...[]ports.GeneratedText) *StubGenerator {
	return &StubGenerator{script: script}
}

// Fail makes every subsequent call return err.
func (g *StubGenerator) Fail(err error) *StubGenerator {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = err
	return g
}

// Generate records the request and returns the next scripted response.
func (g *StubGenerator) Generate(ctx context.Context, req ports.GenerationRequest) ([]ports.GeneratedText, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.Requests = append(g.Requests, req)
	if g.err != nil {
		return nil, g.err
	}
	if len(g.script) == 0 {
		return []ports.GeneratedText{{Content: fmt.Sprintf("generated: %s", req.ScenePrompt)}}, nil
	}
	next := g.script[0]
	g.script = g.script[1:]
	return next, nil
}
