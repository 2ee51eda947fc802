package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack_Empty(t *testing.T) {
	var s Stack[string]

	assert.True(t, s.IsEmpty())
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())

	_, err := s.Current()
	assert.ErrorIs(t, err, ErrEmptyHistory)

	// Undo/Redo on empty are no-ops, not panics.
	assert.True(t, s.Undo().IsEmpty())
	assert.True(t, s.Redo().IsEmpty())
}

func TestStack_PushAdvancesCursor(t *testing.T) {
	s := New[string]().Push("a").Push("b").Push("c")

	require.Equal(t, 3, s.Len())
	cur, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, "c", cur)
	assert.True(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}

func TestStack_UndoRedoRoundTrip(t *testing.T) {
	s := New("a", "b", "c")

	undone := s.Undo()
	cur, err := undone.Current()
	require.NoError(t, err)
	assert.Equal(t, "b", cur)

	// undo immediately followed by redo returns to the pre-undo snapshot
	redone := undone.Redo()
	cur, err = redone.Current()
	require.NoError(t, err)
	assert.Equal(t, "c", cur)
	assert.Equal(t, s.Cursor, redone.Cursor)
}

func TestStack_UndoAtOldestIsNoop(t *testing.T) {
	s := New("only")
	assert.False(t, s.CanUndo())
	assert.Equal(t, s, s.Undo())
}

func TestStack_PushAfterUndoDiscardsRedoBranch(t *testing.T) {
	s := New("a", "b", "c").Undo().Undo() // cursor on "a"

	s = s.Push("d")

	assert.False(t, s.CanRedo(), "push must invalidate redo")
	assert.Equal(t, []string{"a", "d"}, s.Entries)
	cur, err := s.Current()
	require.NoError(t, err)
	assert.Equal(t, "d", cur)
}

func TestStack_SetReplacesCurrentAndDropsRedo(t *testing.T) {
	s := New("a", "b", "c").Undo() // cursor on "b"

	s = s.Set("B")

	assert.Equal(t, []string{"a", "B"}, s.Entries)
	assert.False(t, s.CanRedo())
}

func TestStack_ValueSemantics(t *testing.T) {
	before := New("a", "b")

	after := before.Push("c")

	// The original stack is untouched by the push.
	assert.Equal(t, 2, before.Len())
	cur, err := before.Current()
	require.NoError(t, err)
	assert.Equal(t, "b", cur)
	assert.Equal(t, 3, after.Len())
}

func TestStack_Truncate(t *testing.T) {
	s := New("a", "b", "c", "d", "e")

	trimmed := s.Truncate(3)
	assert.Equal(t, []string{"c", "d", "e"}, trimmed.Entries)
	cur, err := trimmed.Current()
	require.NoError(t, err)
	assert.Equal(t, "e", cur)

	// Cursor inside the dropped prefix clamps to the oldest kept entry.
	old := s.Undo().Undo().Undo().Undo() // cursor on "a"
	trimmed = old.Truncate(2)
	assert.Equal(t, []string{"d", "e"}, trimmed.Entries)
	assert.Equal(t, 0, trimmed.Cursor)

	// No-op when already within bounds.
	assert.Equal(t, s, s.Truncate(10))
}
