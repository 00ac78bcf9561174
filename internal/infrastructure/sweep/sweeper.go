// Package sweep prunes durable session records that no client can reach any
// more.
//
// A durable record is keyed by the device cookie, which is issued before the
// record is written and expires MaxAge after issue. A record last written more
// than MaxAge ago therefore belongs to an expired cookie.
package sweep

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/steeldetailing/pm-dashboard/internal/core/ports"
)

const defaultInterval = time.Hour

// Sweeper periodically deletes stale records from a tier.
type Sweeper struct {
	tier     ports.StaleSweeper
	maxAge   time.Duration
	interval time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// New returns a Sweeper that deletes records older than maxAge every interval.
// If interval <= 0, defaultInterval is used.
func New(tier ports.StaleSweeper, maxAge, interval time.Duration, log zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Sweeper{tier: tier, maxAge: maxAge, interval: interval, now: time.Now, log: log}
}

// Start runs one sweep immediately and then one per interval until ctx is
// cancelled. It returns at once; the loop runs in its own goroutine.
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

// Once performs a single sweep and reports how many records were removed.
func (s *Sweeper) Once(ctx context.Context) (int, error) {
	return s.tier.DeleteStale(ctx, s.now().Add(-s.maxAge))
}

func (s *Sweeper) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		n, err := s.Once(ctx)
		switch {
		case err != nil && ctx.Err() == nil:
			s.log.Error().Err(err).Msg("stale session sweep failed")
		case n > 0:
			s.log.Info().Int("deleted", n).Msg("stale session records swept")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
