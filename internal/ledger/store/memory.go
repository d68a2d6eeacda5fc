package store

import (
	"context"
	"sync"
)

// InMemorySnapshotStore keeps the last saved snapshot in memory. It backs
// tests and ephemeral sessions; durability across restarts comes from the
// SQLite store.
type InMemorySnapshotStore struct {
	mu      sync.RWMutex
	snap    Snapshot
	saveErr error
	saves   int
}

func NewInMemorySnapshotStore() *InMemorySnapshotStore {
	return &InMemorySnapshotStore{}
}

func (s *InMemorySnapshotStore) Save(_ context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.snap = snap.Clone()
	s.saves++
	return nil
}

func (s *InMemorySnapshotStore) Load(_ context.Context) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone(), nil
}

// FailWith makes subsequent saves fail with err until called with nil. The
// last successfully saved snapshot stays untouched, which is exactly the
// degraded state the service has to tolerate.
func (s *InMemorySnapshotStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// SaveCount reports how many snapshots were durably accepted.
func (s *InMemorySnapshotStore) SaveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
