package graph_test

import (
	"testing"

	"github.com/fabulark/fabula/pkg/domain"
	"github.com/fabulark/fabula/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(i int) *int { return &i }

func TestRemapHandles_MoveToFront(t *testing.T) {
	choice := domain.NewChoiceNode("fork", domain.Choice{
		Branches: []domain.Branch{{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"}},
	})
	edges := []domain.Edge{
		domain.NewEdge(choice.ID, "s0", handle(0)),
		domain.NewEdge(choice.ID, "s1", handle(1)),
		domain.NewEdge(choice.ID, "s2", handle(2)),
		domain.NewEdge(choice.ID, "s3", handle(3)),
	}

	moved, perm := choice.Choice.MoveBranch(3, 0)
	require.Equal(t, []string{"d", "a", "b", "c"}, moved.BranchTexts())
	require.Equal(t, []int{3, 0, 1, 2}, perm)

	got := graph.RemapHandles(edges, choice.ID, perm)

	// every edge still targets the node its branch pointed at
	byTarget := map[string]int{}
	for _, e := range got {
		byTarget[e.Target] = *e.Handle
	}
	assert.Equal(t, map[string]int{"s3": 0, "s0": 1, "s1": 2, "s2": 3}, byTarget)

	// input untouched
	assert.Equal(t, 0, *edges[0].Handle)
}

func TestRemapHandles_IgnoresOtherSourcesAndNilHandles(t *testing.T) {
	other := domain.NewEdge("elsewhere", "s9", handle(1))
	plain := domain.NewEdge("fork", "s8", nil)
	edges := []domain.Edge{other, plain, domain.NewEdge("fork", "s0", handle(0)), domain.NewEdge("fork", "s1", handle(1))}

	got := graph.RemapHandles(edges, "fork", []int{1, 0})

	assert.Equal(t, 1, *got[0].Handle, "foreign edge untouched")
	assert.Nil(t, got[1].Handle)
	assert.Equal(t, 1, *got[2].Handle)
	assert.Equal(t, 0, *got[3].Handle)
}

func TestRemapHandles_IdentityPermutationIsStable(t *testing.T) {
	edges := []domain.Edge{domain.NewEdge("fork", "s0", handle(0)), domain.NewEdge("fork", "s1", handle(1))}
	got := graph.RemapHandles(edges, "fork", []int{0, 1})
	assert.Equal(t, 0, *got[0].Handle)
	assert.Equal(t, 1, *got[1].Handle)
}

func TestDeleteBranchEdges_RemovesAndRenumbers(t *testing.T) {
	// S1 -> C1 with branches "A" at handle 0 -> S2 and "B" at handle 1 -> S3.
	s1 := domain.NewSceneNode("s1", domain.Scene{})
	c1 := domain.NewChoiceNode("c1", domain.Choice{Branches: []domain.Branch{{Text: "A"}, {Text: "B"}}})
	s2 := domain.NewSceneNode("s2", domain.Scene{})
	s3 := domain.NewSceneNode("s3", domain.Scene{})
	edges := []domain.Edge{
		domain.NewEdge(s1.ID, c1.ID, nil),
		domain.NewEdge(c1.ID, s2.ID, handle(0)),
		domain.NewEdge(c1.ID, s3.ID, handle(1)),
	}

	got := graph.DeleteBranchEdges(edges, c1.ID, 0)

	require.Len(t, got, 2)
	assert.Equal(t, c1.ID, got[0].Target)
	assert.Equal(t, s3.ID, got[1].Target, "edge at handle 1 survives")
	assert.Equal(t, 0, *got[1].Handle, "surviving handle shifts down with the branch list")
}

func TestDeleteBranchEdges_MiddleBranch(t *testing.T) {
	edges := []domain.Edge{
		domain.NewEdge("fork", "s0", handle(0)),
		domain.NewEdge("fork", "s1", handle(1)),
		domain.NewEdge("fork", "s2", handle(2)),
	}

	got := graph.DeleteBranchEdges(edges, "fork", 1)

	require.Len(t, got, 2)
	assert.Equal(t, "s0", got[0].Target)
	assert.Equal(t, 0, *got[0].Handle)
	assert.Equal(t, "s2", got[1].Target)
	assert.Equal(t, 1, *got[1].Handle)
}

func TestDeleteBranchEdges_DisconnectedBranchIsHarmless(t *testing.T) {
	edges := []domain.Edge{domain.NewEdge("fork", "s1", handle(1))}
	got := graph.DeleteBranchEdges(edges, "fork", 5)
	require.Len(t, got, 1)
	assert.Equal(t, 1, *got[0].Handle)
}
