package domain

import "github.com/google/uuid"

// ElementKind discriminates the three catalog collections.
type ElementKind string

const (
	ElementCharacter ElementKind = "character"
	ElementObject    ElementKind = "object"
	ElementLocation  ElementKind = "location"
)

// ElementKinds lists the kinds in catalog order.
var ElementKinds = []ElementKind{ElementCharacter, ElementObject, ElementLocation}

// index returns the position of the kind in ElementKinds, or -1.
func (k ElementKind) index() int {
	for i, kind := range ElementKinds {
		if kind == k {
			return i
		}
	}
	return -1
}

// Element is a narrative element of the story catalog: a character, an object
// or a location. Identity is the generated ID; Name must be unique within the
// kind (enforced by Story.AddElement).
type Element struct {
	ID          string      `json:"id" yaml:"id"`
	Kind        ElementKind `json:"kind" yaml:"kind"`
	Name        string      `json:"name" yaml:"name"`
	Type        string      `json:"type,omitempty" yaml:"type,omitempty"` // taxonomy type
	Datings     []string    `json:"datings,omitempty" yaml:"datings,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`

	// Object-specific fields.
	Materials []string `json:"materials,omitempty" yaml:"materials,omitempty"`
	Origin    string   `json:"origin,omitempty" yaml:"origin,omitempty"`
}

// NewElement creates an element with a fresh unique ID.
func NewElement(kind ElementKind, name string) Element {
	return Element{
		ID:   uuid.New().String(),
		Kind: kind,
		Name: name,
	}
}
