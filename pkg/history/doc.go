/*
Package history provides a generic undo/redo stack with value semantics.

A Stack is an ordered sequence of snapshots plus a cursor. All operations
return a new Stack and never mutate the receiver, which makes it safe to embed
inside copy-on-write aggregates: any holder of a previous Stack observes no
change.

Invariant: 0 <= Cursor < len(Entries) whenever the stack is non-empty.
An empty stack only exists before the first Push.
*/
package history
