package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fabulark/fabula/pkg/adapters/memory"
	"github.com/fabulark/fabula/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	ports.RunStoryStoreContract(t, memory.NewStore())
}

func TestStubGenerator_ScriptOrder(t *testing.T) {
	gen := memory.NewStubGenerator(
		[]ports.GeneratedText{{Content: "first"}},
		[]ports.GeneratedText{{Label: "a", Content: "second"}},
	)

	got, err := gen.Generate(context.Background(), ports.GenerationRequest{ScenePrompt: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "first", got[0].Content)

	got, err = gen.Generate(context.Background(), ports.GenerationRequest{ScenePrompt: "p2"})
	require.NoError(t, err)
	assert.Equal(t, "second", got[0].Content)

	// exhausted script echoes the prompt
	got, err = gen.Generate(context.Background(), ports.GenerationRequest{ScenePrompt: "p3"})
	require.NoError(t, err)
	assert.Equal(t, "generated: p3", got[0].Content)

	require.Len(t, gen.Requests, 3)
	assert.Equal(t, "p2", gen.Requests[1].ScenePrompt)
}

func TestStubGenerator_Fail(t *testing.T) {
	boom := errors.New("boom")
	gen := memory.NewStubGenerator().Fail(boom)

	_, err := gen.Generate(context.Background(), ports.GenerationRequest{})
	assert.ErrorIs(t, err, boom)
}
