package domain

import "github.com/fabulark/fabula/pkg/history"

// SceneDetails groups the authored attributes of a scene.
type SceneDetails struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Time    string   `json:"time"`
	Weather string   `json:"weather"`
	Tones   []string `json:"tones"`
	Value   string   `json:"value"`

	// Backgrounds holds element IDs referenced by the scene, one set per
	// element kind (characters, objects, locations — same order as ElementKinds).
	Backgrounds [3][]string `json:"backgrounds"`
}

// BackgroundIDs returns the background element IDs of the given kind.
func (d SceneDetails) BackgroundIDs(kind ElementKind) []string {
	i := kind.index()
	if i < 0 {
		return nil
	}
	return d.Backgrounds[i]
}

// TextSnapshot is one generated-text variant recorded in a node's history,
// together with the prompt that produced it.
type TextSnapshot struct {
	Prompt string `json:"prompt"`
	Text   string `json:"text"`
}

// Scene is the payload of a linear narrative node.
type Scene struct {
	Details SceneDetails                `json:"details"`
	Prompt  string                      `json:"prompt"`
	History history.Stack[TextSnapshot] `json:"history"`
}

// CurrentText returns the generated text under the history cursor,
// or "" when nothing was generated yet.
func (s Scene) CurrentText() string {
	snap, err := s.History.Current()
	if err != nil {
		return ""
	}
	return snap.Text
}

// WithSnapshot records a newly generated text, discarding any redo branch.
func (s Scene) WithSnapshot(snap TextSnapshot) Scene {
	s.History = s.History.Push(snap)
	return s
}

// WithPrompt replaces the authored prompt.
func (s Scene) WithPrompt(prompt string) Scene {
	s.Prompt = prompt
	return s
}

// WithDetails replaces the authored details.
func (s Scene) WithDetails(details SceneDetails) Scene {
	s.Details = details
	return s
}
