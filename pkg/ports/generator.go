package ports

import "context"

// GenerationRequest carries everything the generation service needs to write
// the text of one node. Model and Prompt select the service configuration;
// the remaining fields are the story context serialized into the request body.
type GenerationRequest struct {
	Model  string `json:"-"`
	Prompt string `json:"-"`

	StoryTitle    string   `json:"title"`
	MainCharacter string   `json:"main_character,omitempty"`
	Characters    []string `json:"characters"`
	Objects       []string `json:"objects"`
	Locations     []string `json:"locations"`

	// Scene fields.
	ScenePrompt   string   `json:"prompt,omitempty"`
	Time          string   `json:"time,omitempty"`
	Weather       string   `json:"weather,omitempty"`
	Tones         []string `json:"tones,omitempty"`
	Location      string   `json:"location,omitempty"`
	PreviousScene string   `json:"previous_scene,omitempty"`

	// Choice fields.
	ChoiceTitle string   `json:"choice_title,omitempty"`
	Branches    []string `json:"choices,omitempty"`
}

// GeneratedText is one unit of narration returned by the service. Label is
// empty for single-text responses and names the part in batch responses.
type GeneratedText struct {
	Label   string `json:"label"`
	Content string `json:"content"`
}

// TextGenerator defines the interface for the external text-generation
// service. A failed call returns an error and no texts; partial results are
// never surfaced.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) ([]GeneratedText, error)
}
