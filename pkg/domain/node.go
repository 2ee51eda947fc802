package domain

import "github.com/google/uuid"

// NodeKind discriminates the three node payload variants.
type NodeKind string

const (
	KindScene  NodeKind = "scene"
	KindChoice NodeKind = "choice"
	KindInfo   NodeKind = "info"
)

// Info is the payload of an informational aside.
type Info struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Position is the node's layout coordinate. Opaque to the core.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a unit of the narrative graph: a tagged union over Scene, Choice
// and Info. Exactly the payload matching Kind is non-nil. ID is immutable;
// Label is human-readable and unique within the graph (enforced by the UI,
// not here).
type Node struct {
	ID       string   `json:"id"`
	Kind     NodeKind `json:"kind"`
	Label    string   `json:"label"`
	Position Position `json:"position"`

	Scene  *Scene  `json:"scene,omitempty"`
	Choice *Choice `json:"choice,omitempty"`
	Info   *Info   `json:"info,omitempty"`
}

// NewSceneNode creates a scene node with a fresh ID.
func NewSceneNode(label string, scene Scene) Node {
	return Node{ID: uuid.New().String(), Kind: KindScene, Label: label, Scene: &scene}
}

// NewChoiceNode creates a choice node with a fresh ID.
func NewChoiceNode(label string, choice Choice) Node {
	return Node{ID: uuid.New().String(), Kind: KindChoice, Label: label, Choice: &choice}
}

// NewInfoNode creates an info node with a fresh ID.
func NewInfoNode(label string, info Info) Node {
	return Node{ID: uuid.New().String(), Kind: KindInfo, Label: label, Info: &info}
}

// Edge connects a source node to a target node. When the source is a Choice,
// Handle names the branch the edge represents: a dense zero-based position
// assigned when the edge is drawn. The handle is the sole link between branch
// position and edge; it is not tied to branch content.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Handle *int   `json:"handle,omitempty"`
}

// NewEdge creates an edge with a fresh ID. handle may be nil for non-choice sources.
func NewEdge(source, target string, handle *int) Edge {
	return Edge{ID: uuid.New().String(), Source: source, Target: target, Handle: handle}
}

// HandleIndex returns the edge's handle, or -1 when it has none.
func (e Edge) HandleIndex() int {
	if e.Handle == nil {
		return -1
	}
	return *e.Handle
}

// Viewport is the editor's pan/zoom state. Opaque to the core.
type Viewport struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// Flow is the narrative graph: nodes, edges and layout.
type Flow struct {
	Nodes    []Node   `json:"nodes"`
	Edges    []Edge   `json:"edges"`
	Viewport Viewport `json:"viewport"`
}

// NodeByID returns the node with the given ID.
func (f Flow) NodeByID(id string) (Node, bool) {
	for _, n := range f.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// nodeIndex returns the position of the node in the Nodes slice, or -1.
func (f Flow) nodeIndex(id string) int {
	for i, n := range f.Nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
