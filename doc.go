/*
Package fabula is an editor core for branching interactive narratives: a
directed graph of scene, choice and info nodes whose texts are produced
sequentially by an external generation service.

The Editor owns a collection of stories. Stories are immutable snapshots;
every mutation goes through Editor.Update and the copy-on-write operations of
pkg/domain, so concurrent readers always see complete states. Persistence,
text generation and vocabulary are injected through the interfaces in
pkg/ports, with ready adapters for memory, Redis, Loam filesystem
repositories and the HTTP generation bridge.

# Usage

	e, err := fabula.Open(ctx,
		fabula.WithStore(redisstore.New("localhost:6379", "", 0)),
		fabula.WithGenerator(llmbridge.New("http://localhost:5000")),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer e.Close(ctx)

	id, _ := e.CreateStory()
	_, err = e.Update(id, func(s *domain.Story) *domain.Story {
		return s.WithTitle("The Expedition")
	})

	run, err := e.Generate(id)
	for !run.Done() {
		if _, err := run.Step(ctx); err != nil {
			break
		}
	}
	story, err := run.Commit()

Graph editing that touches choice branches must keep the edge handles in
sync; pkg/graph holds the reconciliation helpers and the traversals used by
the generation walk.
*/
package fabula
