package graph

import "github.com/fabulark/fabula/pkg/domain"

// Outgoers returns the direct successors of the node, in edge-list order.
func Outgoers(f domain.Flow, nodeID string) []domain.Node {
	var out []domain.Node
	for _, e := range f.Edges {
		if e.Source != nodeID {
			continue
		}
		if n, ok := f.NodeByID(e.Target); ok {
			out = append(out, n)
		}
	}
	return out
}

// Incomers returns the direct predecessors of the node, in edge-list order.
func Incomers(f domain.Flow, nodeID string) []domain.Node {
	var in []domain.Node
	for _, e := range f.Edges {
		if e.Target != nodeID {
			continue
		}
		if n, ok := f.NodeByID(e.Source); ok {
			in = append(in, n)
		}
	}
	return in
}

// Reachable computes the closure of nodes reachable from start by following
// outgoing edges, start included. Each node is visited at most once, so the
// traversal terminates on cyclic graphs. The order is a deterministic DFS
// preorder (edges in list order), which puts every node after the predecessor
// it was discovered through — the property the generation loop relies on.
func Reachable(f domain.Flow, startID string) []domain.Node {
	start, ok := f.NodeByID(startID)
	if !ok {
		return nil
	}
	visited := make(map[string]bool)
	var closure []domain.Node

	var walk func(n domain.Node)
	walk = func(n domain.Node) {
		if visited[n.ID] {
			return
		}
		visited[n.ID] = true
		closure = append(closure, n)
		for _, next := range Outgoers(f, n.ID) {
			walk(next)
		}
	}
	walk(start)
	return closure
}

// PreviousScene resolves the unambiguous predecessor scene of a node: the
// single incoming edge's source when it is a scene. Info nodes are transparent
// and followed upwards through their own single incomer; a choice source or
// zero/multiple incomers yield no predecessor (ambiguous-predecessor policy).
func PreviousScene(f domain.Flow, nodeID string) (domain.Node, bool) {
	visited := map[string]bool{nodeID: true}
	current := nodeID
	for {
		in := Incomers(f, current)
		if len(in) != 1 {
			return domain.Node{}, false
		}
		prev := in[0]
		if visited[prev.ID] {
			// cycle of info nodes
			return domain.Node{}, false
		}
		visited[prev.ID] = true

		switch prev.Kind {
		case domain.KindScene:
			return prev, true
		case domain.KindInfo:
			current = prev.ID
		default:
			return domain.Node{}, false
		}
	}
}
