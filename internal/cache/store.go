package cache

import (
	"sync"
	"time"

	"playdamnit/pkg/models"
)

// Store is the client-side cache of last-fetched library snapshots,
// keyed by username. Mutations never edit a snapshot in place; they
// call Invalidate and the next read refetches. Last write observed
// wins, which is exactly the re-fetch-supersedes-stale model the UI
// relies on.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]snapshot
}

type snapshot struct {
	entries   []models.LibraryEntry
	fetchedAt time.Time
}

func NewStore() *Store {
	return &Store{snapshots: make(map[string]snapshot)}
}

// Get returns the cached snapshot for username, if any.
func (s *Store) Get(username string) ([]models.LibraryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[username]
	if !ok {
		return nil, false
	}
	return snap.entries, true
}

// FetchedAt reports when the cached snapshot was stored.
func (s *Store) FetchedAt(username string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[username]
	return snap.fetchedAt, ok
}

// Put stores a fresh snapshot, superseding whatever was there.
func (s *Store) Put(username string, entries []models.LibraryEntry) {
	s.mu.Lock()
	s.snapshots[username] = snapshot{entries: entries, fetchedAt: time.Now().UTC()}
	s.mu.Unlock()
}

// Invalidate drops the snapshot for one user. The next Get misses and
// the caller refetches.
func (s *Store) Invalidate(username string) {
	s.mu.Lock()
	delete(s.snapshots, username)
	s.mu.Unlock()
}
