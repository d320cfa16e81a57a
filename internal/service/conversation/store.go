// Package conversation keeps the per-conversation session and quota between
// turns, in memory only.
package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sandevgo/folio/internal/core"
	"github.com/sandevgo/folio/internal/service/session"
)

// NewID returns a fresh, time-sortable conversation id.
func NewID() string {
	return ulid.Make().String()
}

type entry struct {
	mu      sync.Mutex
	snap    core.Snapshot
	touched time.Time
	removed bool
}

type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

func newSnapshot() core.Snapshot {
	return core.Snapshot{Session: session.New()}
}

func (s *Store) entry(id string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		e = &entry{snap: newSnapshot(), touched: s.now()}
		s.entries[id] = e
	}
	return e
}

// Get returns the snapshot of id without creating it.
func (s *Store) Get(_ context.Context, id string) (core.Snapshot, bool) {
	s.mu.Lock()
	e, ok := s.entries[id]
	s.mu.Unlock()
	if !ok {
		return core.Snapshot{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return core.Snapshot{}, false
	}
	return clone(e.snap), true
}

// Update runs fn with the current snapshot of id and stores its result. Calls
// for the same id are serialized; unknown ids start from an empty snapshot.
func (s *Store) Update(_ context.Context, id string, fn func(core.Snapshot) core.Snapshot) core.Snapshot {
	for {
		e := s.entry(id)
		e.mu.Lock()
		if e.removed {
			// swept or reset while we were waiting
			e.mu.Unlock()
			continue
		}
		e.snap = clone(fn(clone(e.snap)))
		e.touched = s.now()
		out := clone(e.snap)
		e.mu.Unlock()
		return out
	}
}

// Reset forgets id. A turn in flight for id finishes first.
func (s *Store) Reset(_ context.Context, id string) {
	s.mu.Lock()
	e, ok := s.entries[id]
	delete(s.entries, id)
	s.mu.Unlock()
	if !ok {
		return
	}

	e.mu.Lock()
	e.removed = true
	e.mu.Unlock()
}

// Sweep drops conversations idle for longer than ttl and reports how many
// were removed. Conversations with a turn in flight are kept.
func (s *Store) Sweep(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	removed := 0
	for id, e := range s.entries {
		if !e.mu.TryLock() {
			continue
		}
		if e.touched.Before(cutoff) {
			e.removed = true
			delete(s.entries, id)
			removed++
		}
		e.mu.Unlock()
	}
	return removed
}

// Len is the number of live conversations.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func clone(snap core.Snapshot) core.Snapshot {
	out := snap
	out.Session = session.Clone(snap.Session)
	if snap.LastMatch != nil {
		m := *snap.LastMatch
		if m.DebugHits != nil {
			m.DebugHits = append([]core.Hit(nil), m.DebugHits...)
		}
		out.LastMatch = &m
	}
	return out
}
