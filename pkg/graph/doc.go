/*
Package graph holds the pure graph algorithms of the narrative editor:
the reconciliation between choice-branch positions and the edge handles that
represent them, and the reachability traversal that drives text generation.

Both operate on domain.Flow values and never mutate their inputs; edge slices
are rebuilt so callers can feed the result straight into Story.WithEdges.
*/
package graph
