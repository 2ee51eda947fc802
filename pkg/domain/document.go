package domain

import (
	"encoding/json"
	"fmt"
)

// maxPersistedSnapshots bounds each node's history when a story is persisted.
const maxPersistedSnapshots = 10

// ElementEntry is one (id, element) pair of the persisted catalog lists.
type ElementEntry struct {
	ID      string  `json:"id"`
	Element Element `json:"element"`
}

// Document is the persisted/exchanged form of a Story. It round-trips
// losslessly through Encode / Decode, except that node histories are bounded
// to the most recent snapshots.
type Document struct {
	Title      string         `json:"title"`
	Summary    string         `json:"summary"`
	Notes      string         `json:"notes"`
	Settings   Settings       `json:"settings"`
	Characters []ElementEntry `json:"characters"`
	Objects    []ElementEntry `json:"objects"`
	Locations  []ElementEntry `json:"locations"`
	Flow       Flow           `json:"flow"`
}

func entriesFor(elements []Element) []ElementEntry {
	entries := make([]ElementEntry, len(elements))
	for i, e := range elements {
		entries[i] = ElementEntry{ID: e.ID, Element: e}
	}
	return entries
}

func elementsFor(entries []ElementEntry, kind ElementKind) []Element {
	elements := make([]Element, len(entries))
	for i, entry := range entries {
		e := entry.Element
		if e.ID == "" {
			e.ID = entry.ID
		}
		e.Kind = kind
		elements[i] = e
	}
	return elements
}

// Document converts the story to its persisted form, trimming histories.
func (s *Story) Document() Document {
	nodes := make([]Node, len(s.Flow.Nodes))
	for i, n := range s.Flow.Nodes {
		switch {
		case n.Scene != nil:
			scene := *n.Scene
			scene.History = scene.History.Truncate(maxPersistedSnapshots)
			n.Scene = &scene
		case n.Choice != nil:
			choice := *n.Choice
			choice.History = choice.History.Truncate(maxPersistedSnapshots)
			n.Choice = &choice
		}
		nodes[i] = n
	}

	return Document{
		Title:      s.Title,
		Summary:    s.Summary,
		Notes:      s.Notes,
		Settings:   s.Settings,
		Characters: entriesFor(s.Characters),
		Objects:    entriesFor(s.Objects),
		Locations:  entriesFor(s.Locations),
		Flow:       Flow{Nodes: nodes, Edges: s.Flow.Edges, Viewport: s.Flow.Viewport},
	}
}

// Story converts the document back into a live aggregate.
func (d Document) Story() *Story {
	return &Story{
		Title:      d.Title,
		Summary:    d.Summary,
		Notes:      d.Notes,
		Settings:   d.Settings,
		Characters: elementsFor(d.Characters, ElementCharacter),
		Objects:    elementsFor(d.Objects, ElementObject),
		Locations:  elementsFor(d.Locations, ElementLocation),
		Flow:       d.Flow,
	}
}

// Encode serializes the story to its JSON document form.
func (s *Story) Encode() ([]byte, error) {
	data, err := json.Marshal(s.Document())
	if err != nil {
		return nil, fmt.Errorf("encode story document: %w", err)
	}
	return data, nil
}

// Decode parses a JSON story document. Malformed input is reported as an
// error wrapping ErrParseDocument; callers fall back to an empty story.
func Decode(data []byte) (*Story, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseDocument, err)
	}
	for _, n := range d.Flow.Nodes {
		switch n.Kind {
		case KindScene, KindChoice, KindInfo:
		default:
			return nil, fmt.Errorf("%w: node %q has unknown kind %q", ErrParseDocument, n.ID, n.Kind)
		}
	}
	return d.Story(), nil
}
