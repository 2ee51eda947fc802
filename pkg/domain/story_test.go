package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStory_CopyOnWrite_Metadata(t *testing.T) {
	s := NewStory()

	s2 := s.WithTitle("The Expedition").WithSummary("A long walk.").WithNotes("draft")

	assert.Equal(t, "Untitled story", s.Title, "prior snapshot must not change")
	assert.Empty(t, s.Summary)
	assert.Equal(t, "The Expedition", s2.Title)
	assert.Equal(t, "A long walk.", s2.Summary)
	assert.Equal(t, "draft", s2.Notes)
}

func TestStory_WithScene_AbsentIDIsNoop(t *testing.T) {
	s := NewStory()
	assert.Same(t, s, s.WithScene("missing", Scene{Prompt: "x"}))
}

func TestStory_WithScene_KindMismatchIsNoop(t *testing.T) {
	info := NewInfoNode("aside", Info{Title: "hint"})
	s := NewStory().AddNode(info)
	assert.Same(t, s, s.WithScene(info.ID, Scene{}))
}

func TestStory_WithScene_ReplacesPayloadWithoutAliasing(t *testing.T) {
	node := NewSceneNode("intro", Scene{Prompt: "old"})
	s := NewStory().AddNode(node)

	s2 := s.WithScene(node.ID, Scene{Prompt: "new"})

	before, ok := s.Scene(node.ID)
	require.True(t, ok)
	after, ok := s2.Scene(node.ID)
	require.True(t, ok)
	assert.Equal(t, "old", before.Prompt)
	assert.Equal(t, "new", after.Prompt)
}

func TestStory_DeleteNode_CascadesEdges(t *testing.T) {
	a := NewSceneNode("a", Scene{})
	b := NewSceneNode("b", Scene{})
	c := NewSceneNode("c", Scene{})
	s := NewStory().AddNode(a).AddNode(b).AddNode(c).
		Connect(a.ID, b.ID, nil).
		Connect(b.ID, c.ID, nil).
		Connect(a.ID, c.ID, nil)
	require.Len(t, s.Flow.Edges, 3)

	s2 := s.DeleteNode(b.ID)

	assert.Len(t, s2.Flow.Nodes, 2)
	assert.Len(t, s2.Flow.Edges, 1, "edges touching the node must go with it")
	assert.Equal(t, a.ID, s2.Flow.Edges[0].Source)
	assert.Equal(t, c.ID, s2.Flow.Edges[0].Target)

	// prior snapshot intact
	assert.Len(t, s.Flow.Nodes, 3)
	assert.Len(t, s.Flow.Edges, 3)
}

func TestStory_Connect_AbsentEndpointIsNoop(t *testing.T) {
	a := NewSceneNode("a", Scene{})
	s := NewStory().AddNode(a)
	assert.Same(t, s, s.Connect(a.ID, "missing", nil))
}

func TestStory_AddElement_Validation(t *testing.T) {
	s := NewStory()

	hero := NewElement(ElementCharacter, "Ada")
	s2, err := s.AddElement(hero)
	require.NoError(t, err)
	assert.Len(t, s2.Characters, 1)
	assert.Empty(t, s.Characters, "receiver untouched")

	// duplicate name within the same kind is rejected
	_, err = s2.AddElement(NewElement(ElementCharacter, "Ada"))
	assert.ErrorIs(t, err, ErrDuplicateElement)
	assert.False(t, s2.CanAddElement(NewElement(ElementCharacter, "Ada")))

	// same name in a different kind is fine
	assert.True(t, s2.CanAddElement(NewElement(ElementLocation, "Ada")))

	// names are compared case-sensitively
	assert.True(t, s2.CanAddElement(NewElement(ElementCharacter, "ada")))

	_, err = s2.AddElement(NewElement(ElementObject, ""))
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestStory_SetElement(t *testing.T) {
	lamp := NewElement(ElementObject, "Lamp")
	s, err := NewStory().AddElement(lamp)
	require.NoError(t, err)

	edited := lamp
	edited.Description = "brass, dented"
	s2 := s.SetElement(lamp.ID, edited)

	got, ok := s2.Element(lamp.ID)
	require.True(t, ok)
	assert.Equal(t, "brass, dented", got.Description)

	prev, _ := s.Element(lamp.ID)
	assert.Empty(t, prev.Description)

	assert.Same(t, s2, s2.SetElement("missing", edited))
}

func TestStory_DeleteElement(t *testing.T) {
	where := NewElement(ElementLocation, "Harbor")
	s, err := NewStory().AddElement(where)
	require.NoError(t, err)

	s2 := s.DeleteElement(where.ID)
	assert.Empty(t, s2.Locations)
	assert.Len(t, s.Locations, 1)

	// absent id is a no-op
	assert.Same(t, s2, s2.DeleteElement(where.ID))
}

func TestStory_ElementsOrder(t *testing.T) {
	s := NewStory()
	for _, e := range []Element{
		NewElement(ElementObject, "Map"),
		NewElement(ElementCharacter, "Ada"),
		NewElement(ElementLocation, "Harbor"),
		NewElement(ElementCharacter, "Bren"),
	} {
		var err error
		s, err = s.AddElement(e)
		require.NoError(t, err)
	}

	names := make([]string, 0, 4)
	for _, e := range s.Elements() {
		names = append(names, e.Name)
	}
	// characters first, then objects, then locations; insertion order within kinds
	assert.Equal(t, []string{"Ada", "Bren", "Map", "Harbor"}, names)
}

func TestStory_WithFlow_ReplacesGraphAtomically(t *testing.T) {
	s := NewStory().AddNode(NewSceneNode("a", Scene{}))

	next := Flow{Viewport: Viewport{Zoom: 2}}
	s2 := s.WithFlow(next)

	assert.Empty(t, s2.Flow.Nodes)
	assert.Equal(t, 2.0, s2.Flow.Viewport.Zoom)
	assert.Len(t, s.Flow.Nodes, 1)
}
