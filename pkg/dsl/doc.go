/*
Package dsl provides a fluent builder for story graphs.

It is the programmatic alternative to editing documents by hand: tests,
examples and seed scripts describe a story as a chain of calls and get a
ready *domain.Story back.

	b := dsl.New().
		Title("The Lighthouse").
		Settings("mistral", "A coastal mystery", "Ada")

	b.Scene("intro").Prompt("Ada arrives at the lighthouse").Goto("fork")
	b.Choice("fork").Question("Climb or explore the cellar?").
		Branch("Climb the stairs", "lantern").
		Branch("Open the cellar door", "cellar")
	b.Scene("lantern").Prompt("The lantern room")
	b.Scene("cellar").Prompt("The flooded cellar")

	story, err := b.Build()

Nodes are referenced by label; Build resolves the labels, assigns IDs and
reports any link to a label that was never declared.
*/
package dsl
