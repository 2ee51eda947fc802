package dsl

import (
	"fmt"

	"github.com/fabulark/fabula/pkg/domain"
)

// Builder manages the graph construction.
type Builder struct {
	title    string
	summary  string
	settings domain.Settings

	nodes map[string]*NodeBuilder
	order []string
}

// New creates a new story builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[string]*NodeBuilder),
	}
}

// Title sets the story title.
func (b *Builder) Title(title string) *Builder {
	b.title = title
	return b
}

// Summary sets the story summary.
func (b *Builder) Summary(summary string) *Builder {
	b.summary = summary
	return b
}

// Settings configures the generation settings of the story.
func (b *Builder) Settings(model, prompt, mainCharacter string) *Builder {
	b.settings = domain.Settings{Model: model, Prompt: prompt, MainCharacter: mainCharacter}
	return b
}

// Scene declares a scene node with the given label.
// If a node with the label already exists, it returns the existing builder.
func (b *Builder) Scene(label string) *NodeBuilder {
	return b.add(label, domain.KindScene)
}

// Choice declares a choice node with the given label.
func (b *Builder) Choice(label string) *NodeBuilder {
	return b.add(label, domain.KindChoice)
}

// Info declares an informational node with the given label.
func (b *Builder) Info(label string) *NodeBuilder {
	return b.add(label, domain.KindInfo)
}

func (b *Builder) add(label string, kind domain.NodeKind) *NodeBuilder {
	if nb, ok := b.nodes[label]; ok {
		return nb
	}
	nb := &NodeBuilder{label: label, kind: kind}
	b.nodes[label] = nb
	b.order = append(b.order, label)
	return nb
}

// Build compiles the declarations into a story, resolving every link by
// label. It fails on links to labels that were never declared.
func (b *Builder) Build() (*domain.Story, error) {
	story := domain.NewStory().
		WithSummary(b.summary).
		WithSettings(b.settings)
	if b.title != "" {
		story = story.WithTitle(b.title)
	}

	ids := make(map[string]string, len(b.order))
	for _, label := range b.order {
		node := b.nodes[label].build()
		ids[label] = node.ID
		story = story.AddNode(node)
	}

	for _, label := range b.order {
		for _, l := range b.nodes[label].links {
			target, ok := ids[l.target]
			if !ok {
				return nil, fmt.Errorf("node %q links to undeclared node %q", label, l.target)
			}
			story = story.Connect(ids[label], target, l.handle)
		}
	}

	return story, nil
}
