package conversation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sandevgo/folio/internal/core"
	"github.com/sandevgo/folio/internal/service/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)

	_, err := ulid.ParseStrict(a)
	assert.NoError(t, err)
}

func TestStore_UpdateAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, ok := s.Get(ctx, "c1")
	assert.False(t, ok)

	got := s.Update(ctx, "c1", func(snap core.Snapshot) core.Snapshot {
		assert.Empty(t, snap.Session.RecentIntents)
		snap.Session = session.Advance(snap.Session, "greeting", "", "greeting:0")
		snap.Quota.TotalTurns++
		return snap
	})
	assert.Equal(t, "greeting", got.Session.LastIntent)

	snap, ok := s.Get(ctx, "c1")
	require.True(t, ok)
	assert.Equal(t, 1, snap.Quota.TotalTurns)
	assert.Equal(t, []string{"greeting:0"}, snap.Session.RecentReplyVariantIDs)
}

func TestStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	s.Update(ctx, "c1", func(snap core.Snapshot) core.Snapshot {
		snap.Session = session.Advance(snap.Session, "project", "", "project:0")
		snap.LastMatch = &core.MatchResult{Intent: "project", DebugHits: []core.Hit{{Rule: "project"}}}
		return snap
	})

	snap, _ := s.Get(ctx, "c1")
	snap.Session.RecentIntents[0] = "mutated"
	snap.LastMatch.DebugHits[0].Rule = "mutated"

	again, _ := s.Get(ctx, "c1")
	assert.Equal(t, "project", again.Session.RecentIntents[0])
	assert.Equal(t, "project", again.LastMatch.DebugHits[0].Rule)
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	s.Update(ctx, "c1", func(snap core.Snapshot) core.Snapshot {
		snap.Quota.TotalTurns = 5
		return snap
	})

	s.Reset(ctx, "c1")
	_, ok := s.Get(ctx, "c1")
	assert.False(t, ok)
	assert.Zero(t, s.Len())

	s.Reset(ctx, "unknown")
}

func TestStore_SerializesTurns(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update(ctx, "shared", func(snap core.Snapshot) core.Snapshot {
				snap.Quota.TotalTurns++
				return snap
			})
		}()
	}
	wg.Wait()

	snap, ok := s.Get(ctx, "shared")
	require.True(t, ok)
	assert.Equal(t, 50, snap.Quota.TotalTurns)
}

func TestStore_Sweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore()
	s.now = func() time.Time { return now }

	s.Update(ctx, "old", func(snap core.Snapshot) core.Snapshot { return snap })
	now = now.Add(20 * time.Minute)
	s.Update(ctx, "fresh", func(snap core.Snapshot) core.Snapshot { return snap })
	now = now.Add(15 * time.Minute)

	assert.Equal(t, 1, s.Sweep(30*time.Minute))
	_, ok := s.Get(ctx, "old")
	assert.False(t, ok)
	_, ok = s.Get(ctx, "fresh")
	assert.True(t, ok)
}

func TestStore_SweepSkipsBusyConversation(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore()
	s.now = func() time.Time { return now }
	s.Update(ctx, "busy", func(snap core.Snapshot) core.Snapshot { return snap })

	now = now.Add(time.Hour)
	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Update(ctx, "busy", func(snap core.Snapshot) core.Snapshot {
			close(entered)
			<-release
			return snap
		})
	}()

	<-entered
	assert.Zero(t, s.Sweep(time.Minute))
	close(release)
	<-done

	_, ok := s.Get(ctx, "busy")
	assert.True(t, ok)
}

func TestJanitor_Evicts(t *testing.T) {
	s := NewStore()
	s.Update(context.Background(), "c1", func(snap core.Snapshot) core.Snapshot { return snap })

	j := NewJanitor(s, time.Millisecond)
	j.Interval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Start(ctx) }()

	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
	assert.NoError(t, j.Shutdown(context.Background()))
}
