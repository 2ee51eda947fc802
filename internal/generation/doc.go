/*
Package generation drives the sequential text generation of a story graph.

A Session is built from an immutable story snapshot and walks the reachable
generatable nodes one Step at a time, committing every generated text to a
private working copy. The caller only receives the updated story when the
last step completes; a failed request aborts the session and the original
story stays untouched.
*/
package generation
