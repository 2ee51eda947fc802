/*
Package ports defines the driven ports (interfaces) for the Fabula editor core.

These interfaces decouple the core logic from external implementations, allowing
the editor to work with various storage backends and text-generation services.

# Key Interfaces

  - StoryStore: persists and restores the story collection (Memory, Redis, Loam).
  - TextGenerator: produces narration for a node (LLM bridge, stub).
  - Catalog: read-only directory of prefab elements and scene-detail enums.
*/
package ports
