package dsl

import "github.com/fabulark/fabula/pkg/domain"

type link struct {
	target string
	handle *int
}

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	label string
	kind  domain.NodeKind

	scene  domain.Scene
	choice domain.Choice
	info   domain.Info

	links []link
}

// Prompt sets the generation prompt of a scene node.
func (n *NodeBuilder) Prompt(prompt string) *NodeBuilder {
	n.scene.Prompt = prompt
	return n
}

// Time sets the scene's time of day.
func (n *NodeBuilder) Time(time string) *NodeBuilder {
	n.scene.Details.Time = time
	return n
}

// Weather sets the scene's weather.
func (n *NodeBuilder) Weather(weather string) *NodeBuilder {
	n.scene.Details.Weather = weather
	return n
}

// Tones sets the scene's tones.
func (n *NodeBuilder) Tones(tones ...string) *NodeBuilder {
	n.scene.Details.Tones = tones
	return n
}

// Question sets the question a choice node poses.
func (n *NodeBuilder) Question(title string) *NodeBuilder {
	n.choice.Title = title
	return n
}

// Branch adds an answer to a choice node and links it to the target label.
// The edge handle is the branch's position.
func (n *NodeBuilder) Branch(text, target string) *NodeBuilder {
	return n.branch(text, target, false)
}

// WrongBranch adds a dead-end answer: it reads like the others but is marked
// as leading the reader astray.
func (n *NodeBuilder) WrongBranch(text, target string) *NodeBuilder {
	return n.branch(text, target, true)
}

func (n *NodeBuilder) branch(text, target string, wrong bool) *NodeBuilder {
	handle := len(n.choice.Branches)
	n.choice.Branches = append(n.choice.Branches, domain.Branch{Text: text, Wrong: wrong})
	n.links = append(n.links, link{target: target, handle: &handle})
	return n
}

// Text sets the authored text of an info node.
func (n *NodeBuilder) Text(text string) *NodeBuilder {
	n.info.Text = text
	return n
}

// Goto adds a plain edge to the target label.
func (n *NodeBuilder) Goto(target string) *NodeBuilder {
	n.links = append(n.links, link{target: target})
	return n
}

// build returns the underlying domain node with a fresh ID.
func (n *NodeBuilder) build() domain.Node {
	switch n.kind {
	case domain.KindChoice:
		return domain.NewChoiceNode(n.label, n.choice)
	case domain.KindInfo:
		if n.info.Title == "" {
			n.info.Title = n.label
		}
		return domain.NewInfoNode(n.label, n.info)
	default:
		return domain.NewSceneNode(n.label, n.scene)
	}
}
