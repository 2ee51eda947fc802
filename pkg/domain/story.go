package domain

// Settings are the story-level generation settings.
type Settings struct {
	Model         string `json:"model"`
	Prompt        string `json:"prompt"`
	MainCharacter string `json:"mainCharacter"`
}

// Complete reports whether every field required to start a generation is set.
func (s Settings) Complete() bool {
	return s.Model != "" && s.Prompt != "" && s.MainCharacter != ""
}

// Story is the aggregate root: the element catalog (three disjoint ordered
// collections), the narrative graph and the top-level metadata.
//
// Every mutator returns a new *Story with structural sharing for the
// unmodified parts; the receiver is never changed. Setters addressing a
// missing ID are documented no-ops returning the receiver, not errors —
// callers must not assume the operation succeeded.
type Story struct {
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Notes    string   `json:"notes"`
	Settings Settings `json:"settings"`

	Characters []Element `json:"characters"`
	Objects    []Element `json:"objects"`
	Locations  []Element `json:"locations"`

	Flow Flow `json:"flow"`
}

// NewStory creates an empty story with a default title and viewport.
func NewStory() *Story {
	return &Story{
		Title: "Untitled story",
		Flow:  Flow{Viewport: Viewport{Zoom: 1}},
	}
}

// clone shallow-copies the aggregate. Mutators deep-copy only the path they
// touch, so prior snapshots keep sharing everything else.
func (s *Story) clone() *Story {
	c := *s
	return &c
}

// WithTitle returns a copy with the title replaced.
func (s *Story) WithTitle(title string) *Story {
	c := s.clone()
	c.Title = title
	return c
}

// WithSummary returns a copy with the summary replaced.
func (s *Story) WithSummary(summary string) *Story {
	c := s.clone()
	c.Summary = summary
	return c
}

// WithNotes returns a copy with the notes replaced.
func (s *Story) WithNotes(notes string) *Story {
	c := s.clone()
	c.Notes = notes
	return c
}

// WithSettings returns a copy with the generation settings replaced.
func (s *Story) WithSettings(settings Settings) *Story {
	c := s.clone()
	c.Settings = settings
	return c
}

// WithFlow atomically replaces the whole graph (nodes, edges and layout).
func (s *Story) WithFlow(flow Flow) *Story {
	c := s.clone()
	c.Flow = flow
	return c
}

// withNodePayload copies the node list and lets apply swap one node's payload.
func (s *Story) withNodePayload(id string, kind NodeKind, apply func(*Node)) *Story {
	i := s.Flow.nodeIndex(id)
	if i < 0 || s.Flow.Nodes[i].Kind != kind {
		return s
	}
	c := s.clone()
	nodes := append([]Node(nil), s.Flow.Nodes...)
	apply(&nodes[i])
	c.Flow.Nodes = nodes
	return c
}

// WithScene replaces the scene payload of the node with the given ID.
// No-op returning the receiver when the ID is absent or not a scene node.
func (s *Story) WithScene(id string, scene Scene) *Story {
	return s.withNodePayload(id, KindScene, func(n *Node) { n.Scene = &scene })
}

// WithChoice replaces the choice payload of the node with the given ID.
// No-op returning the receiver when the ID is absent or not a choice node.
func (s *Story) WithChoice(id string, choice Choice) *Story {
	return s.withNodePayload(id, KindChoice, func(n *Node) { n.Choice = &choice })
}

// WithInfo replaces the info payload of the node with the given ID.
// No-op returning the receiver when the ID is absent or not an info node.
func (s *Story) WithInfo(id string, info Info) *Story {
	return s.withNodePayload(id, KindInfo, func(n *Node) { n.Info = &info })
}

// AddNode returns a copy with the node appended to the graph.
func (s *Story) AddNode(n Node) *Story {
	c := s.clone()
	c.Flow.Nodes = append(append([]Node(nil), s.Flow.Nodes...), n)
	return c
}

// DeleteNode removes the node and cascades: every edge touching it is removed
// too. No-op when the ID is absent.
func (s *Story) DeleteNode(id string) *Story {
	if s.Flow.nodeIndex(id) < 0 {
		return s
	}
	c := s.clone()
	nodes := make([]Node, 0, len(s.Flow.Nodes)-1)
	for _, n := range s.Flow.Nodes {
		if n.ID != id {
			nodes = append(nodes, n)
		}
	}
	edges := make([]Edge, 0, len(s.Flow.Edges))
	for _, e := range s.Flow.Edges {
		if e.Source != id && e.Target != id {
			edges = append(edges, e)
		}
	}
	c.Flow.Nodes = nodes
	c.Flow.Edges = edges
	return c
}

// Connect draws an edge from source to target. handle names the source branch
// when source is a choice node; pass nil otherwise. No-op when either node is
// absent.
func (s *Story) Connect(source, target string, handle *int) *Story {
	if s.Flow.nodeIndex(source) < 0 || s.Flow.nodeIndex(target) < 0 {
		return s
	}
	c := s.clone()
	c.Flow.Edges = append(append([]Edge(nil), s.Flow.Edges...), NewEdge(source, target, handle))
	return c
}

// WithEdges atomically replaces the edge list, e.g. after handle reconciliation.
func (s *Story) WithEdges(edges []Edge) *Story {
	c := s.clone()
	c.Flow.Edges = edges
	return c
}

// Node returns the node with the given ID.
func (s *Story) Node(id string) (Node, bool) {
	return s.Flow.NodeByID(id)
}

// Scene returns the scene payload of the node with the given ID.
func (s *Story) Scene(id string) (Scene, bool) {
	n, ok := s.Flow.NodeByID(id)
	if !ok || n.Kind != KindScene || n.Scene == nil {
		return Scene{}, false
	}
	return *n.Scene, true
}

// Choice returns the choice payload of the node with the given ID.
func (s *Story) Choice(id string) (Choice, bool) {
	n, ok := s.Flow.NodeByID(id)
	if !ok || n.Kind != KindChoice || n.Choice == nil {
		return Choice{}, false
	}
	return *n.Choice, true
}

// Info returns the info payload of the node with the given ID.
func (s *Story) Info(id string) (Info, bool) {
	n, ok := s.Flow.NodeByID(id)
	if !ok || n.Kind != KindInfo || n.Info == nil {
		return Info{}, false
	}
	return *n.Info, true
}

// elementsOf returns the catalog collection for the kind.
func (s *Story) elementsOf(kind ElementKind) []Element {
	switch kind {
	case ElementCharacter:
		return s.Characters
	case ElementObject:
		return s.Objects
	case ElementLocation:
		return s.Locations
	}
	return nil
}

// setElementsOf writes the catalog collection for the kind on a clone.
func (s *Story) setElementsOf(kind ElementKind, elements []Element) {
	switch kind {
	case ElementCharacter:
		s.Characters = elements
	case ElementObject:
		s.Objects = elements
	case ElementLocation:
		s.Locations = elements
	}
}

// CanAddElement reports whether the element may join the catalog:
// false iff an element of the same kind already has the same name
// (case-sensitive exact match).
func (s *Story) CanAddElement(e Element) bool {
	for _, existing := range s.elementsOf(e.Kind) {
		if existing.Name == e.Name {
			return false
		}
	}
	return true
}

// AddElement validates and appends the element to its kind's collection.
// Validation failures reject the whole operation; nothing is partially applied.
func (s *Story) AddElement(e Element) (*Story, error) {
	if e.Name == "" {
		return s, ErrEmptyName
	}
	if !s.CanAddElement(e) {
		return s, ErrDuplicateElement
	}
	c := s.clone()
	c.setElementsOf(e.Kind, append(append([]Element(nil), s.elementsOf(e.Kind)...), e))
	return c, nil
}

// SetElement replaces the element with the given ID in whichever collection
// contains it. No-op returning the receiver when the ID is absent.
func (s *Story) SetElement(id string, e Element) *Story {
	for _, kind := range ElementKinds {
		collection := s.elementsOf(kind)
		for i, existing := range collection {
			if existing.ID != id {
				continue
			}
			c := s.clone()
			elements := append([]Element(nil), collection...)
			e.ID = id
			elements[i] = e
			c.setElementsOf(kind, elements)
			return c
		}
	}
	return s
}

// DeleteElement removes the ID from whichever collection contains it.
// Removing an absent ID is a no-op.
func (s *Story) DeleteElement(id string) *Story {
	for _, kind := range ElementKinds {
		collection := s.elementsOf(kind)
		for i, existing := range collection {
			if existing.ID != id {
				continue
			}
			c := s.clone()
			elements := make([]Element, 0, len(collection)-1)
			elements = append(elements, collection[:i]...)
			elements = append(elements, collection[i+1:]...)
			c.setElementsOf(kind, elements)
			return c
		}
	}
	return s
}

// Element returns the element with the given ID from any collection.
func (s *Story) Element(id string) (Element, bool) {
	for _, kind := range ElementKinds {
		for _, e := range s.elementsOf(kind) {
			if e.ID == id {
				return e, true
			}
		}
	}
	return Element{}, false
}

// ElementsByKind returns a copy of one catalog collection, in insertion order.
func (s *Story) ElementsByKind(kind ElementKind) []Element {
	return append([]Element(nil), s.elementsOf(kind)...)
}

// Elements returns all elements, characters first, then objects, then locations.
func (s *Story) Elements() []Element {
	all := make([]Element, 0, len(s.Characters)+len(s.Objects)+len(s.Locations))
	for _, kind := range ElementKinds {
		all = append(all, s.elementsOf(kind)...)
	}
	return all
}
