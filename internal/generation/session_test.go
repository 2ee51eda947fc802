package generation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fabulark/fabula/internal/generation"
	"github.com/fabulark/fabula/pkg/adapters/memory"
	"github.com/fabulark/fabula/pkg/domain"
	"github.com/fabulark/fabula/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var settings = domain.Settings{Model: "mistral", Prompt: "default", MainCharacter: "Ada"}

func single(text string) []ports.GeneratedText {
	return []ports.GeneratedText{{Content: text}}
}

// intro (scene) -> fork (choice) -> left (scene)
func chainStory(t *testing.T) (*domain.Story, [3]domain.Node) {
	t.Helper()

	intro := domain.NewSceneNode("intro", domain.Scene{Prompt: "the ship departs"})
	fork := domain.NewChoiceNode("fork", domain.Choice{
		Title:    "Board?",
		Branches: []domain.Branch{{Text: "yes"}, {Text: "no", Wrong: true}},
	})
	left := domain.NewSceneNode("left", domain.Scene{Prompt: "on deck"})

	h := 0
	s := domain.NewStory().WithSettings(settings).
		AddNode(intro).AddNode(fork).AddNode(left).
		Connect(intro.ID, fork.ID, nil).
		Connect(fork.ID, left.ID, &h)
	return s, [3]domain.Node{intro, fork, left}
}

func TestSession_GeneratesWholeGraphInOrder(t *testing.T) {
	story, nodes := chainStory(t)
	gen := memory.NewStubGenerator(single("first"), single("second"), single("third"))

	sess, err := generation.NewSession(story, gen)
	require.NoError(t, err)
	assert.Equal(t, 3, sess.Total())

	ctx := context.Background()
	var progress []generation.Progress
	for !sess.Done() {
		p, err := sess.Step(ctx)
		require.NoError(t, err)
		progress = append(progress, p)
	}

	require.Len(t, progress, 3)
	assert.Equal(t, generation.Progress{Current: 1, Total: 3, NodeID: nodes[0].ID, Label: "intro"}, progress[0])
	assert.Equal(t, "fork", progress[1].Label)
	assert.Equal(t, 3, progress[2].Current)

	got, err := sess.Story()
	require.NoError(t, err)

	scene, _ := got.Scene(nodes[0].ID)
	assert.Equal(t, "first", scene.CurrentText())
	choice, _ := got.Choice(nodes[1].ID)
	assert.Equal(t, "second", choice.CurrentText())
	scene, _ = got.Scene(nodes[2].ID)
	assert.Equal(t, "third", scene.CurrentText())

	// the snapshot handed to NewSession is untouched
	before, _ := story.Scene(nodes[0].ID)
	assert.Empty(t, before.CurrentText())
}

func TestSession_RequestPayloads(t *testing.T) {
	story, _ := chainStory(t)
	var err error
	story, err = story.AddElement(domain.NewElement(domain.ElementCharacter, "Ada"))
	require.NoError(t, err)

	gen := memory.NewStubGenerator(single("a"), single("b"), single("c"))
	sess, err := generation.NewSession(story, gen)
	require.NoError(t, err)

	ctx := context.Background()
	for !sess.Done() {
		_, err := sess.Step(ctx)
		require.NoError(t, err)
	}

	require.Len(t, gen.Requests, 3)

	first := gen.Requests[0]
	assert.Equal(t, "mistral", first.Model)
	assert.Equal(t, "default", first.Prompt)
	assert.Equal(t, []string{"Ada"}, first.Characters)
	assert.Equal(t, "the ship departs", first.ScenePrompt)
	assert.Empty(t, first.PreviousScene, "no incomer, no context")

	second := gen.Requests[1]
	assert.Equal(t, "Board?", second.ChoiceTitle)
	assert.Equal(t, []string{"yes", "no"}, second.Branches)
	assert.Equal(t, "a", second.PreviousScene, "choice sees the scene generated one step earlier")

	// left's only incomer is the choice: ambiguous, no context
	assert.Empty(t, gen.Requests[2].PreviousScene)
	assert.Equal(t, "on deck", gen.Requests[2].ScenePrompt)
}

func TestSession_InfoNodesAreTraversedNotGenerated(t *testing.T) {
	before := domain.NewSceneNode("before", domain.Scene{Prompt: "p1"})
	aside := domain.NewInfoNode("aside", domain.Info{Text: "lore"})
	after := domain.NewSceneNode("after", domain.Scene{Prompt: "p2"})
	story := domain.NewStory().WithSettings(settings).
		AddNode(before).AddNode(aside).AddNode(after).
		Connect(before.ID, aside.ID, nil).
		Connect(aside.ID, after.ID, nil)

	gen := memory.NewStubGenerator(single("opening"), single("closing"))
	sess, err := generation.NewSession(story, gen, generation.WithStartNode(before.ID))
	require.NoError(t, err)
	require.Equal(t, 2, sess.Total(), "info node takes no step")

	ctx := context.Background()
	for !sess.Done() {
		_, err := sess.Step(ctx)
		require.NoError(t, err)
	}

	require.Len(t, gen.Requests, 2)
	assert.Equal(t, "opening", gen.Requests[1].PreviousScene,
		"context follows the incomer chain through the info node")
}

func TestSession_StartNodeLimitsToReachableClosure(t *testing.T) {
	story, nodes := chainStory(t)
	orphan := domain.NewSceneNode("orphan", domain.Scene{Prompt: "x"})
	story = story.AddNode(orphan)

	sess, err := generation.NewSession(story, memory.NewStubGenerator(), generation.WithStartNode(nodes[1].ID))
	require.NoError(t, err)
	assert.Equal(t, 2, sess.Total(), "fork and left only")
}

func TestSession_CyclicGraphTerminates(t *testing.T) {
	a := domain.NewSceneNode("a", domain.Scene{Prompt: "pa"})
	b := domain.NewSceneNode("b", domain.Scene{Prompt: "pb"})
	story := domain.NewStory().WithSettings(settings).
		AddNode(a).AddNode(b).
		Connect(a.ID, b.ID, nil).
		Connect(b.ID, a.ID, nil)

	sess, err := generation.NewSession(story, memory.NewStubGenerator(), generation.WithStartNode(a.ID))
	require.NoError(t, err)
	assert.Equal(t, 2, sess.Total(), "each node generated exactly once")

	ctx := context.Background()
	for !sess.Done() {
		_, err := sess.Step(ctx)
		require.NoError(t, err)
	}
	_, err = sess.Story()
	assert.NoError(t, err)
}

func TestSession_FailureAbortsWithoutCommit(t *testing.T) {
	story, _ := chainStory(t)
	boom := errors.New("bridge down")
	gen := memory.NewStubGenerator(single("ok")).Fail(boom)

	sess, err := generation.NewSession(story, gen)
	require.NoError(t, err)

	_, err = sess.Step(context.Background())
	require.ErrorIs(t, err, boom)
	assert.True(t, sess.Done())

	// stepping again keeps failing, and no story is ever produced
	_, err = sess.Step(context.Background())
	require.ErrorIs(t, err, boom)
	_, err = sess.Story()
	assert.ErrorIs(t, err, generation.ErrSessionAborted)
}

func TestSession_StoryBeforeTerminalStep(t *testing.T) {
	story, _ := chainStory(t)
	sess, err := generation.NewSession(story, memory.NewStubGenerator())
	require.NoError(t, err)

	_, err = sess.Story()
	assert.ErrorIs(t, err, generation.ErrSessionAborted)
}

func TestSession_IncompleteSettings(t *testing.T) {
	story := domain.NewStory() // no settings at all
	_, err := generation.NewSession(story, memory.NewStubGenerator())
	assert.ErrorIs(t, err, generation.ErrIncompleteSettings)
}

type recordingObserver struct {
	outcomes  []string
	durations []time.Duration
}

func (r *recordingObserver) GenerationObserved(outcome string, d time.Duration) {
	r.outcomes = append(r.outcomes, outcome)
	r.durations = append(r.durations, d)
}

func TestSession_ObserverSeesOutcomes(t *testing.T) {
	story, _ := chainStory(t)
	boom := errors.New("bridge down")
	obs := &recordingObserver{}

	gen := memory.NewStubGenerator(single("ok"))
	sess, err := generation.NewSession(story, gen, generation.WithObserver(obs))
	require.NoError(t, err)

	_, err = sess.Step(context.Background())
	require.NoError(t, err)
	gen.Fail(boom)
	_, err = sess.Step(context.Background())
	require.Error(t, err)

	assert.Equal(t, []string{"success", "failure"}, obs.outcomes)
}
