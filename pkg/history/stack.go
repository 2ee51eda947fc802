package history

import "errors"

// ErrEmptyHistory is returned when reading the current entry of an empty stack.
var ErrEmptyHistory = errors.New("history is empty")

// Stack is an undo/redo sequence of snapshots of type T.
// The zero value is an empty, ready-to-use stack.
//
// Fields are exported so a Stack serializes as part of a story document, but
// they should only be manipulated through the methods below.
type Stack[T any] struct {
	Entries []T `json:"entries"`
	Cursor  int `json:"cursor"`
}

// New creates a stack seeded with the given entries, cursor on the last one.
func New[T any](entries ...T) Stack[T] {
	s := Stack[T]{Entries: append([]T(nil), entries...)}
	if len(s.Entries) > 0 {
		s.Cursor = len(s.Entries) - 1
	}
	return s
}

// Len returns the number of recorded entries.
func (s Stack[T]) Len() int {
	return len(s.Entries)
}

// IsEmpty reports whether no entry was ever pushed.
func (s Stack[T]) IsEmpty() bool {
	return len(s.Entries) == 0
}

// CanUndo reports whether the cursor can move back.
func (s Stack[T]) CanUndo() bool {
	return len(s.Entries) > 0 && s.Cursor > 0
}

// CanRedo reports whether the cursor can move forward.
func (s Stack[T]) CanRedo() bool {
	return s.Cursor < len(s.Entries)-1
}

// Current returns the entry under the cursor.
// Returns ErrEmptyHistory when nothing was pushed yet.
func (s Stack[T]) Current() (T, error) {
	if len(s.Entries) == 0 {
		var zero T
		return zero, ErrEmptyHistory
	}
	return s.Entries[s.Cursor], nil
}

// Push discards the redo branch (everything beyond the cursor), appends the
// entry and moves the cursor onto it.
func (s Stack[T]) Push(entry T) Stack[T] {
	keep := 0
	if len(s.Entries) > 0 {
		keep = s.Cursor + 1
	}
	entries := make([]T, keep, keep+1)
	copy(entries, s.Entries[:keep])
	entries = append(entries, entry)
	return Stack[T]{Entries: entries, Cursor: len(entries) - 1}
}

// Set replaces the entry under the cursor and discards the redo branch.
// On an empty stack it behaves like Push.
func (s Stack[T]) Set(entry T) Stack[T] {
	if len(s.Entries) == 0 {
		return s.Push(entry)
	}
	entries := make([]T, s.Cursor+1)
	copy(entries, s.Entries[:s.Cursor+1])
	entries[s.Cursor] = entry
	return Stack[T]{Entries: entries, Cursor: s.Cursor}
}

// Undo moves the cursor one entry back. No-op when already at the oldest entry.
func (s Stack[T]) Undo() Stack[T] {
	if !s.CanUndo() {
		return s
	}
	return Stack[T]{Entries: s.Entries, Cursor: s.Cursor - 1}
}

// Redo moves the cursor one entry forward. No-op when nothing was undone.
func (s Stack[T]) Redo() Stack[T] {
	if !s.CanRedo() {
		return s
	}
	return Stack[T]{Entries: s.Entries, Cursor: s.Cursor + 1}
}

// Truncate keeps at most the max most recent entries, clamping the cursor.
// Used when persisting documents so histories stay bounded.
func (s Stack[T]) Truncate(max int) Stack[T] {
	if max <= 0 || len(s.Entries) <= max {
		return s
	}
	drop := len(s.Entries) - max
	entries := make([]T, max)
	copy(entries, s.Entries[drop:])
	cursor := s.Cursor - drop
	if cursor < 0 {
		cursor = 0
	}
	return Stack[T]{Entries: entries, Cursor: cursor}
}
