package ports

import "github.com/fabulark/fabula/pkg/domain"

// Catalog is the read-only directory of authoring vocabulary: prefab elements
// ready to be copied into a story, the taxonomy of element types, and the
// enumerations offered for scene details. Implementations load once and are
// safe for concurrent reads.
type Catalog interface {
	// Prefabs returns the ready-made elements of a kind, in catalog order.
	Prefabs(kind domain.ElementKind) []domain.Element

	// ElementTypes returns the taxonomy values for a kind.
	ElementTypes(kind domain.ElementKind) []string

	// Times, Weathers and Tones enumerate the scene-detail vocabularies.
	Times() []string
	Weathers() []string
	Tones() []string
}
