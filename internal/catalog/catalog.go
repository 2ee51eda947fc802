// Package catalog loads the authoring vocabulary: prefab elements, element
// taxonomies and scene-detail enumerations. Everything is read once at
// construction; the repository is immutable afterwards and safe to share.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fabulark/fabula/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const (
	elementsFile   = "elements.json"
	detailsFile    = "details.yaml"
	taxonomiesFile = "taxonomies.yaml"
)

// Repository implements ports.Catalog from a directory of data files.
// Missing files fall back to built-in defaults.
type Repository struct {
	prefabs    map[domain.ElementKind][]domain.Element
	taxonomies map[domain.ElementKind][]string
	times      []string
	weathers   []string
	tones      []string
}

// details is the shape of details.yaml.
type details struct {
	Times    []string `mapstructure:"times"`
	Weathers []string `mapstructure:"weathers"`
	Tones    []string `mapstructure:"tones"`
}

// taxonomies is the shape of taxonomies.yaml.
type taxonomies struct {
	Characters []string `mapstructure:"characters"`
	Objects    []string `mapstructure:"objects"`
	Locations  []string `mapstructure:"locations"`
}

// elementsDB is the shape of elements.json.
type elementsDB struct {
	Characters []domain.Element `json:"characters"`
	Objects    []domain.Element `json:"objects"`
	Locations  []domain.Element `json:"locations"`
}

// Default returns a repository with the built-in vocabulary and no prefabs.
func Default() *Repository {
	return &Repository{
		prefabs: map[domain.ElementKind][]domain.Element{},
		taxonomies: map[domain.ElementKind][]string{
			domain.ElementCharacter: {"protagonist", "ally", "antagonist", "extra"},
			domain.ElementObject:    {"tool", "weapon", "document", "keepsake"},
			domain.ElementLocation:  {"interior", "exterior", "landmark"},
		},
		times:    []string{"dawn", "morning", "noon", "afternoon", "dusk", "night"},
		weathers: []string{"clear", "cloudy", "rain", "storm", "snow", "fog"},
		tones:    []string{"calm", "tense", "joyful", "melancholic", "ominous", "hopeful"},
	}
}

// Load reads the catalog files under dir on top of the defaults.
func Load(dir string) (*Repository, error) {
	repo := Default()

	if raw, err := os.ReadFile(filepath.Join(dir, elementsFile)); err == nil {
		var db elementsDB
		if err := json.Unmarshal(raw, &db); err != nil {
			return nil, fmt.Errorf("%s: %w", elementsFile, err)
		}
		repo.prefabs = map[domain.ElementKind][]domain.Element{
			domain.ElementCharacter: stamped(domain.ElementCharacter, db.Characters),
			domain.ElementObject:    stamped(domain.ElementObject, db.Objects),
			domain.ElementLocation:  stamped(domain.ElementLocation, db.Locations),
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", elementsFile, err)
	}

	var det details
	if err := decodeYAML(filepath.Join(dir, detailsFile), &det); err != nil {
		return nil, err
	}
	if det.Times != nil {
		repo.times = det.Times
	}
	if det.Weathers != nil {
		repo.weathers = det.Weathers
	}
	if det.Tones != nil {
		repo.tones = det.Tones
	}

	var tax taxonomies
	if err := decodeYAML(filepath.Join(dir, taxonomiesFile), &tax); err != nil {
		return nil, err
	}
	if tax.Characters != nil {
		repo.taxonomies[domain.ElementCharacter] = tax.Characters
	}
	if tax.Objects != nil {
		repo.taxonomies[domain.ElementObject] = tax.Objects
	}
	if tax.Locations != nil {
		repo.taxonomies[domain.ElementLocation] = tax.Locations
	}

	return repo, nil
}

// decodeYAML reads a YAML file into a generic map first and then decodes it
// through mapstructure, so unknown keys are tolerated and the field mapping
// stays explicit. A missing file is not an error.
func decodeYAML(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	var generic map[string]any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if err := mapstructure.Decode(generic, out); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}

// stamped normalizes prefab entries: the kind is implied by the collection
// and entries without an ID get one.
func stamped(kind domain.ElementKind, elements []domain.Element) []domain.Element {
	out := make([]domain.Element, len(elements))
	for i, e := range elements {
		e.Kind = kind
		if e.ID == "" {
			e.ID = fmt.Sprintf("%s-%d", kind, i)
		}
		out[i] = e
	}
	return out
}

// Prefabs returns the ready-made elements of a kind, in catalog order.
func (r *Repository) Prefabs(kind domain.ElementKind) []domain.Element {
	return append([]domain.Element(nil), r.prefabs[kind]...)
}

// ElementTypes returns the taxonomy values for a kind.
func (r *Repository) ElementTypes(kind domain.ElementKind) []string {
	return append([]string(nil), r.taxonomies[kind]...)
}

// Times enumerates the scene time-of-day vocabulary.
func (r *Repository) Times() []string {
	return append([]string(nil), r.times...)
}

// Weathers enumerates the scene weather vocabulary.
func (r *Repository) Weathers() []string {
	return append([]string(nil), r.weathers...)
}

// Tones enumerates the scene tone vocabulary.
func (r *Repository) Tones() []string {
	return append([]string(nil), r.tones...)
}
