// Package store persists the whole application state as one serialized
// document under a single storage key. Corrupt or missing state is never an
// error: Load falls back to the empty default so the application always
// starts.
package store

import (
	"context"

	"github.com/neoyoli49-wq/mybudgetny/internal/core"
)

// StateKey is the storage key the serialized state lives under.
const StateKey = "appState"

// Store loads and saves the application state blob.
//
// Load never fails: unreadable or malformed state yields a fresh default,
// with the cause logged. Save may fail; callers log the failure and keep the
// in-memory state as the source of truth for the rest of the session.
type Store interface {
	Load(ctx context.Context) *core.AppState
	Save(ctx context.Context, state *core.AppState) error
	Close() error
}

// normalize repairs a decoded state so lookups never hit a nil map.
func normalize(s *core.AppState) *core.AppState {
	if s == nil {
		return core.NewAppState()
	}
	if s.Users == nil {
		s.Users = make(map[string]*core.Account)
	}
	return s
}
