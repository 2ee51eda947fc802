package generation

import (
	"strings"

	"github.com/fabulark/fabula/pkg/domain"
	"github.com/fabulark/fabula/pkg/graph"
	"github.com/fabulark/fabula/pkg/ports"
)

// buildRequest assembles the bridge payload for one node from the working
// copy, so predecessor context reflects texts generated earlier in the walk.
func buildRequest(story *domain.Story, node domain.Node) ports.GenerationRequest {
	req := ports.GenerationRequest{
		Model:         story.Settings.Model,
		Prompt:        story.Settings.Prompt,
		StoryTitle:    story.Title,
		MainCharacter: story.Settings.MainCharacter,
		Characters:    elementNames(story.Characters),
		Objects:       elementNames(story.Objects),
		Locations:     elementNames(story.Locations),
	}

	switch node.Kind {
	case domain.KindScene:
		scene := *node.Scene
		req.ScenePrompt = scene.Prompt
		req.Time = scene.Details.Time
		req.Weather = scene.Details.Weather
		req.Tones = scene.Details.Tones
		req.Location = firstLocationName(story, scene.Details)
	case domain.KindChoice:
		choice := *node.Choice
		req.ChoiceTitle = choice.Title
		req.Branches = choice.BranchTexts()
	}

	if prev, ok := graph.PreviousScene(story.Flow, node.ID); ok {
		req.PreviousScene = prev.Scene.CurrentText()
	}
	return req
}

func elementNames(elements []domain.Element) []string {
	names := make([]string, len(elements))
	for i, e := range elements {
		names[i] = e.Name
	}
	return names
}

// firstLocationName resolves the scene's first background location to its name.
func firstLocationName(story *domain.Story, details domain.SceneDetails) string {
	for _, id := range details.BackgroundIDs(domain.ElementLocation) {
		if e, ok := story.Element(id); ok {
			return e.Name
		}
	}
	return ""
}

// snapshotText flattens the bridge response into one history entry. Batch
// parts keep their labels as headings.
func snapshotText(texts []ports.GeneratedText) string {
	if len(texts) == 1 && texts[0].Label == "" {
		return texts[0].Content
	}
	parts := make([]string, 0, len(texts))
	for _, t := range texts {
		if t.Label != "" {
			parts = append(parts, t.Label+": "+t.Content)
		} else {
			parts = append(parts, t.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}
