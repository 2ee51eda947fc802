package domain

import (
	"testing"

	"github.com/fabulark/fabula/pkg/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildStory(t *testing.T) *Story {
	t.Helper()

	s := NewStory().WithTitle("The Expedition").WithSummary("A long walk.").WithNotes("n").
		WithSettings(Settings{Model: "m", Prompt: "default", MainCharacter: "Ada"})

	for _, e := range []Element{
		NewElement(ElementCharacter, "Ada"),
		NewElement(ElementObject, "Map"),
		NewElement(ElementLocation, "Harbor"),
	} {
		var err error
		s, err = s.AddElement(e)
		require.NoError(t, err)
	}

	scene := Scene{
		Details: SceneDetails{Title: "Dawn", Time: "morning", Tones: []string{"calm"}},
		Prompt:  "the ship departs",
		History: history.New(TextSnapshot{Prompt: "the ship departs", Text: "Mist on the water."}),
	}
	start := NewSceneNode("start", scene)
	fork := NewChoiceNode("fork", Choice{Title: "Board?", Branches: []Branch{{Text: "yes"}, {Text: "no", Wrong: true}}})
	aside := NewInfoNode("aside", Info{Title: "Harbor", Text: "Busiest port of the coast."})

	h := 0
	return s.AddNode(start).AddNode(fork).AddNode(aside).
		Connect(start.ID, fork.ID, nil).
		Connect(fork.ID, aside.ID, &h)
}

func TestDocument_RoundTrip(t *testing.T) {
	s := buildStory(t)

	data, err := s.Encode()
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, s.Title, got.Title)
	assert.Equal(t, s.Summary, got.Summary)
	assert.Equal(t, s.Notes, got.Notes)
	assert.Equal(t, s.Settings, got.Settings)
	assert.Equal(t, len(s.Characters), len(got.Characters))
	assert.Equal(t, len(s.Objects), len(got.Objects))
	assert.Equal(t, len(s.Locations), len(got.Locations))
	require.Equal(t, len(s.Flow.Nodes), len(got.Flow.Nodes))
	require.Equal(t, len(s.Flow.Edges), len(got.Flow.Edges))

	// payloads and handles survive
	for i, n := range s.Flow.Nodes {
		assert.Equal(t, n.Kind, got.Flow.Nodes[i].Kind)
		assert.Equal(t, n.Label, got.Flow.Nodes[i].Label)
	}
	scene, ok := got.Scene(s.Flow.Nodes[0].ID)
	require.True(t, ok)
	assert.Equal(t, "Mist on the water.", scene.CurrentText())

	assert.Equal(t, -1, got.Flow.Edges[0].HandleIndex())
	assert.Equal(t, 0, got.Flow.Edges[1].HandleIndex())
}

func TestDocument_BoundsHistories(t *testing.T) {
	scene := Scene{}
	for i := 0; i < 25; i++ {
		scene = scene.WithSnapshot(TextSnapshot{Text: "v"})
	}
	node := NewSceneNode("s", scene)
	s := NewStory().AddNode(node)

	doc := s.Document()

	require.NotNil(t, doc.Flow.Nodes[0].Scene)
	assert.Equal(t, maxPersistedSnapshots, doc.Flow.Nodes[0].Scene.History.Len())
	// live story keeps the full history
	live, _ := s.Scene(node.ID)
	assert.Equal(t, 25, live.History.Len())
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode([]byte("{not json"))
	assert.ErrorIs(t, err, ErrParseDocument)

	_, err = Decode([]byte(`{"flow":{"nodes":[{"id":"x","kind":"portal"}]}}`))
	assert.ErrorIs(t, err, ErrParseDocument)
}
