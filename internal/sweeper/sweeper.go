// Package sweeper reaps abandoned staging blobs. Metadata records expire via
// Redis TTLs on their own; the bytes in blob storage have no TTL, so a
// background sweep removes staging sessions whose newest write is older than
// the staging window.
package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vendorgate/internal/blob"
)

const stagingRoot = "temp"

// Sweeper removes orphaned staging blobs on an interval.
type Sweeper struct {
	blobs    blob.Store
	maxAge   time.Duration
	interval time.Duration
	logger   *slog.Logger
	clock    func() time.Time
}

// Option configures a Sweeper.
type Option func(*Sweeper)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sweeper) { s.logger = logger }
}

// WithClock sets the clock function for testability.
func WithClock(clock func() time.Time) Option {
	return func(s *Sweeper) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New constructs a Sweeper. maxAge should match the staging TTL so blobs are
// never reaped before their metadata expires.
func New(blobs blob.Store, maxAge, interval time.Duration, opts ...Option) (*Sweeper, error) {
	if blobs == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	s := &Sweeper{
		blobs:    blobs,
		maxAge:   maxAge,
		interval: interval,
		logger:   slog.Default(),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run sweeps on a ticker until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.SweepAt(ctx, s.clock()); err != nil {
				s.logger.ErrorContext(ctx, "staging sweep failed", "error", err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// SweepAt removes staging sessions whose newest object predates now minus the
// staging window. Exported for testability; the background loop passes
// wall-clock time.
func (s *Sweeper) SweepAt(ctx context.Context, now time.Time) error {
	cutoff := now.Add(-s.maxAge)
	prefixes, err := s.blobs.StalePrefixes(ctx, stagingRoot, cutoff)
	if err != nil {
		return fmt.Errorf("list stale staging sessions: %w", err)
	}

	for _, prefix := range prefixes {
		if err := s.blobs.RemoveAll(ctx, prefix); err != nil {
			return fmt.Errorf("remove %s: %w", prefix, err)
		}
		s.logger.InfoContext(ctx, "staging session reaped", "prefix", prefix)
	}
	return nil
}
