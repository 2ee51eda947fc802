package validator

import (
	"testing"

	"github.com/fabulark/fabula/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(i int) *int { return &i }

func TestValidateStory_Valid(t *testing.T) {
	intro := domain.NewSceneNode("intro", domain.Scene{})
	fork := domain.NewChoiceNode("fork", domain.Choice{Branches: []domain.Branch{{Text: "A"}, {Text: "B"}}})
	left := domain.NewSceneNode("left", domain.Scene{})

	story := domain.NewStory().
		AddNode(intro).AddNode(fork).AddNode(left).
		Connect(intro.ID, fork.ID, nil).
		Connect(fork.ID, left.ID, handle(0))

	assert.NoError(t, ValidateStory(story))
}

func TestValidateStory_BrokenEdges(t *testing.T) {
	intro := domain.NewSceneNode("intro", domain.Scene{})

	story := domain.NewStory().
		AddNode(intro).
		Connect(intro.ID, "ghost", nil).
		Connect("phantom", intro.ID, nil)

	err := ValidateStory(story)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Edge to missing node: 'ghost'")
	assert.Contains(t, err.Error(), "Edge from missing node: 'phantom'")
}

func TestValidateStory_HandleOutOfRange(t *testing.T) {
	fork := domain.NewChoiceNode("fork", domain.Choice{Branches: []domain.Branch{{Text: "A"}}})
	end := domain.NewSceneNode("end", domain.Scene{})

	story := domain.NewStory().
		AddNode(fork).AddNode(end).
		Connect(fork.ID, end.ID, handle(1))

	err := ValidateStory(story)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestValidateStory_HandleOnSceneSource(t *testing.T) {
	intro := domain.NewSceneNode("intro", domain.Scene{})
	end := domain.NewSceneNode("end", domain.Scene{})

	story := domain.NewStory().
		AddNode(intro).AddNode(end).
		Connect(intro.ID, end.ID, handle(0))

	err := ValidateStory(story)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-choice node")
}

func TestValidateStory_ChoiceWithoutBranches(t *testing.T) {
	fork := domain.NewChoiceNode("fork", domain.Choice{})

	err := ValidateStory(domain.NewStory().AddNode(fork))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without branches")
}
