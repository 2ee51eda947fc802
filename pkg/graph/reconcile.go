package graph

import "github.com/fabulark/fabula/pkg/domain"

// RemapHandles rewrites the edge handles of a choice node after its branches
// were reordered, so every edge keeps pointing at the branch it originally
// represented.
//
// perm is the index permutation produced by Choice.MoveBranch: perm[k] is the
// index the branch now at position k occupied before the move. For every edge
// sourced at nodeID whose handle equals the old index of a moved branch, the
// handle is rewritten to the branch's new index. Edges of other nodes, edges
// without a handle, and handles outside the permuted range are untouched.
func RemapHandles(edges []domain.Edge, nodeID string, perm []int) []domain.Edge {
	if len(perm) == 0 {
		return edges
	}
	out := make([]domain.Edge, len(edges))
	for i, e := range edges {
		if e.Source != nodeID || e.Handle == nil {
			out[i] = e
			continue
		}
		for k, old := range perm {
			if k == old {
				continue
			}
			if *e.Handle == old {
				h := k
				e.Handle = &h
				break
			}
		}
		out[i] = e
	}
	return out
}

// DeleteBranchEdges removes every edge of the choice node that represents the
// deleted branch (handle == index) and renumbers the surviving handles above
// it down by one, keeping handles dense and aligned with the shifted branch
// list. Edges of other nodes and handle-less edges are untouched.
func DeleteBranchEdges(edges []domain.Edge, nodeID string, index int) []domain.Edge {
	out := make([]domain.Edge, 0, len(edges))
	for _, e := range edges {
		if e.Source != nodeID || e.Handle == nil {
			out = append(out, e)
			continue
		}
		switch {
		case *e.Handle == index:
			// the branch's own edge goes with it
		case *e.Handle > index:
			h := *e.Handle - 1
			e.Handle = &h
			out = append(out, e)
		default:
			out = append(out, e)
		}
	}
	return out
}
