package ports

import (
	"context"
	"testing"

	"github.com/fabulark/fabula/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStoryStoreContract runs a suite of tests to verify that a StoryStore
// implementation adheres to the defined interface contract.
func RunStoryStoreContract(t *testing.T, store StoryStore) {
	ctx := context.Background()

	t.Run("Load Empty", func(t *testing.T) {
		stories, err := store.Load(ctx)
		require.NoError(t, err, "Load on an empty store should not return error")
		require.NotNil(t, stories)
		assert.Empty(t, stories)
	})

	t.Run("Save and Load", func(t *testing.T) {
		story := domain.NewStory().WithTitle("The Expedition").WithNotes("draft")
		story, err := story.AddElement(domain.NewElement(domain.ElementCharacter, "Ada"))
		require.NoError(t, err)
		scene := domain.NewSceneNode("intro", domain.Scene{Prompt: "the ship departs"})
		story = story.AddNode(scene)

		err = store.Save(ctx, map[string]*domain.Story{"s1": story})
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx)
		require.NoError(t, err, "Load should not return error")
		require.Contains(t, loaded, "s1")

		got := loaded["s1"]
		assert.Equal(t, "The Expedition", got.Title)
		assert.Equal(t, "draft", got.Notes)
		require.Len(t, got.Characters, 1)
		assert.Equal(t, "Ada", got.Characters[0].Name)
		gotScene, ok := got.Scene(scene.ID)
		require.True(t, ok)
		assert.Equal(t, "the ship departs", gotScene.Prompt)
	})

	t.Run("Save Replaces Collection", func(t *testing.T) {
		err := store.Save(ctx, map[string]*domain.Story{
			"a": domain.NewStory().WithTitle("A"),
			"b": domain.NewStory().WithTitle("B"),
		})
		require.NoError(t, err)

		err = store.Save(ctx, map[string]*domain.Story{
			"b": domain.NewStory().WithTitle("B2"),
		})
		require.NoError(t, err)

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.NotContains(t, loaded, "a", "a previous save must not leak through")
		require.Contains(t, loaded, "b")
		assert.Equal(t, "B2", loaded["b"].Title)
	})

	t.Run("Loaded Stories Are Independent", func(t *testing.T) {
		story := domain.NewStory().WithTitle("Original")
		err := store.Save(ctx, map[string]*domain.Story{"s": story})
		require.NoError(t, err)

		first, err := store.Load(ctx)
		require.NoError(t, err)
		_ = first["s"].WithTitle("Changed")

		second, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Original", second["s"].Title)
	})

	t.Run("Save Empty Collection", func(t *testing.T) {
		err := store.Save(ctx, map[string]*domain.Story{})
		require.NoError(t, err)

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})
}
