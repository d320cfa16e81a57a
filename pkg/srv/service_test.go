package srv

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	order []string
}

func (r *recorder) add(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, name)
}

type fakeService struct {
	name    string
	rec     *recorder
	started chan struct{}
}

func (f *fakeService) Start(context.Context) error {
	close(f.started)
	return nil
}

func (f *fakeService) Shutdown(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	f.rec.add(f.name)
	return nil
}

func TestServices_StartAndShutdownInReverse(t *testing.T) {
	rec := &recorder{}
	a := &fakeService{name: "a", rec: rec, started: make(chan struct{})}
	b := &fakeService{name: "b", rec: rec, started: make(chan struct{})}
	cleanup := NewCleanup(func() error {
		rec.add("cleanup")
		return nil
	})

	services := []Service{cleanup, a, b}

	ctx, cancel := context.WithCancel(context.Background())
	StartServices(ctx, services)

	for _, s := range []*fakeService{a, b} {
		select {
		case <-s.started:
		case <-time.After(time.Second):
			t.Fatalf("service %s did not start", s.name)
		}
	}

	cancel()
	ShutdownServices(ctx, services)

	// shutdown gets a live context even though ctx is cancelled
	require.Len(t, rec.order, 3)
	assert.Equal(t, []string{"b", "a", "cleanup"}, rec.order)
}
