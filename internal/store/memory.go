package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/neoyoli49-wq/mybudgetny/internal/core"
)

// MemoryStore keeps the serialized state in memory. Used by tests and by the
// demo backend; contents vanish when the process exits.
//
// The state is held as JSON bytes rather than a pointer so that Load returns
// an independent copy, matching the round-trip behavior of the durable
// backends.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) *core.AppState {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.data) == 0 {
		return core.NewAppState()
	}
	var state core.AppState
	if err := json.Unmarshal(m.data, &state); err != nil {
		return core.NewAppState()
	}
	return normalize(&state)
}

func (m *MemoryStore) Save(ctx context.Context, state *core.AppState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Close() error { return nil }
