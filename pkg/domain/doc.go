/*
Package domain contains the core model of a branching interactive narrative.

It defines the Story aggregate (element catalog, narrative graph, metadata)
and its node payloads: Scene, Choice and Info. This package is kept pure and
free of transport or persistence dependencies.

All mutation is copy-on-write: every mutator returns a new *Story (or a new
payload value) with structural sharing for the unchanged parts. A collaborator
holding a reference to a prior Story must observe no change to it. This is the
consistency model the whole editor relies on: divergent snapshots are merged
by funnelling commits through a single owning component.
*/
package domain
