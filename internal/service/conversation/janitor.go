package conversation

import (
	"context"
	"time"

	"github.com/sandevgo/folio/pkg/log"
)

const minSweepInterval = 10 * time.Second

// Janitor evicts idle conversations on a ticker.
type Janitor struct {
	store    *Store
	ttl      time.Duration
	Interval time.Duration
}

func NewJanitor(store *Store, ttl time.Duration) *Janitor {
	return &Janitor{
		store:    store,
		ttl:      ttl,
		Interval: max(ttl/2, minSweepInterval),
	}
}

func (j *Janitor) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Dur("ttl", j.ttl).Msg("starting conversation janitor")

	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := j.store.Sweep(j.ttl); n > 0 {
				logger.Debug().Int("evicted", n).Int("live", j.store.Len()).Msg("idle conversations evicted")
			}
		}
	}
}

func (j *Janitor) Shutdown(ctx context.Context) error {
	return nil
}
