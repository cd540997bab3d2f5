package profile

import (
	"sync"
	"time"
)

const DefaultStaleAfter = time.Hour

// Store owns the current snapshot. Slots are replaced together, never one
// at a time, and the records they point to are never mutated.
type Store struct {
	mu         sync.RWMutex
	snap       Snapshot
	staleAfter time.Duration
}

func NewStore(staleAfter time.Duration) *Store {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &Store{staleAfter: staleAfter}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *Store) Replace(snap Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Stale reports whether the snapshot was never fetched or is older than the
// staleness window at now.
func (s *Store) Stale(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.LastFetch.IsZero() || now.Sub(s.snap.LastFetch) > s.staleAfter
}
