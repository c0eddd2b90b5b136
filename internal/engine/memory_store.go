package engine

import (
	"context"
	"encoding/json"
	"sync"

	"clearcomply/internal/model"
)

// MemoryStore is a ProgressStore backed by a map. It serves tests and
// single-binary development; production uses the Redis-backed store in
// internal/cache. Snapshots pass through JSON so stored state never aliases
// live engine state.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[string][]byte
}

// NewMemoryStore creates an empty in-memory progress store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string][]byte)}
}

func (m *MemoryStore) Save(ctx context.Context, snap *model.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps[snap.AssessmentID] = data
	return nil
}

func (m *MemoryStore) Load(ctx context.Context, assessmentID string) (*model.Snapshot, error) {
	m.mu.RLock()
	data, ok := m.snaps[assessmentID]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
