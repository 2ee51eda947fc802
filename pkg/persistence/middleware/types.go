// Package middleware provides composable decorators for story stores.
package middleware

import "github.com/fabulark/fabula/pkg/ports"

// Middleware wraps a StoryStore with additional behavior.
type Middleware func(next ports.StoryStore) ports.StoryStore
