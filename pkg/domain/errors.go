package domain

import "errors"

// ErrStoryNotFound is returned when a story ID cannot be found in a store.
var ErrStoryNotFound = errors.New("story not found")

// ErrParseDocument wraps any failure to decode a persisted story document.
// Callers are expected to fall back to an empty story rather than crash.
var ErrParseDocument = errors.New("malformed story document")

// ErrDuplicateElement is returned when adding an element whose name is already
// taken within its kind.
var ErrDuplicateElement = errors.New("element name already in use")

// ErrEmptyName is returned when adding an element with an empty name.
var ErrEmptyName = errors.New("element name cannot be empty")
