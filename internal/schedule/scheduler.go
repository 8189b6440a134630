package schedule

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/darumi/backend/internal/engine"
)

// Settler runs a settlement pass over all open objective relations.
type Settler interface {
	RunMonthlySettlement(ctx context.Context) (engine.SettlementResult, error)
}

// Scheduler triggers the monthly settlement at every month rollover.
type Scheduler struct {
	settler Settler
	now     func() time.Time
	running atomic.Bool
}

type Option func(*Scheduler)

// WithClock overrides the time source, used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

func New(settler Settler, opts ...Option) *Scheduler {
	s := &Scheduler{
		settler: settler,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// NextRun returns the first instant of the month following t, in UTC.
func (s *Scheduler) NextRun(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}

// Run blocks until ctx is canceled, firing a settlement pass at every
// month rollover.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		next := s.NextRun(s.now())
		timer := time.NewTimer(next.Sub(s.now()))

		log.Debug().Time("nextRun", next).Msg("settlement scheduled")

		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case <-timer.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single settlement pass. Passes never overlap, a
// trigger arriving while one is still active is dropped.
func (s *Scheduler) RunOnce(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		log.Warn().Msg("settlement pass already running, skipping trigger")
		return
	}
	defer s.running.Store(false)

	result, err := s.settler.RunMonthlySettlement(ctx)
	if err != nil {
		log.Error().Err(err).Msg("settlement pass failed")
		return
	}

	log.Info().
		Int("processed", result.Processed).
		Int("skipped", result.Skipped).
		Int("errored", result.Errored).
		Time("periodStart", result.PeriodStart).
		Msg("settlement pass finished")
}
