// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/tradeflix-auth/internal/config"
	"github.com/MKhiriev/tradeflix-auth/internal/logger"
	"github.com/MKhiriev/tradeflix-auth/internal/store"
)

// SessionSweeper periodically deletes session rows whose expiry lies
// further in the past than the retention window. Rows inside the window
// stay behind so recently expired sessions remain inspectable.
//
// Sweeping is an optimisation, not a correctness requirement: expired and
// invalidated sessions are already rejected on every lookup. A failed sweep
// is therefore logged and retried on the next tick; only failures the
// database reports as transient earn one immediate second attempt.
type SessionSweeper struct {
	sessions   store.SessionRepository
	classifier store.ErrorClassificator
	interval   time.Duration
	retention  time.Duration

	// now is the sweeper's clock, swappable in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewSessionSweeper constructs the sweeper from the workers configuration.
func NewSessionSweeper(sessions store.SessionRepository, classifier store.ErrorClassificator, cfg config.Workers, logger *logger.Logger) *SessionSweeper {
	return &SessionSweeper{
		sessions:   sessions,
		classifier: classifier,
		interval:   cfg.SweepInterval,
		retention:  cfg.SessionRetention,
		now:        time.Now,
		logger:     logger,
	}
}

// Run starts the sweep loop in its own goroutine and returns immediately.
func (s *SessionSweeper) Run(ctx context.Context) {
	s.logger.Info().
		Dur("interval", s.interval).
		Dur("retention", s.retention).
		Msg("session sweeper started")
	go s.loop(ctx)
}

func (s *SessionSweeper) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("session sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep performs one purge pass.
func (s *SessionSweeper) sweep(ctx context.Context) {
	cutoff := s.now().Add(-s.retention)

	deleted, err := s.sessions.DeleteExpiredSessions(ctx, cutoff)
	if err != nil && s.classifier.Classify(err) == store.Retryable {
		s.logger.Warn().Err(err).Msg("session sweep hit transient failure, retrying")
		deleted, err = s.sessions.DeleteExpiredSessions(ctx, cutoff)
	}
	if err != nil {
		s.logger.Err(err).Msg("session sweep failed")
		return
	}

	if deleted > 0 {
		s.logger.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("expired sessions purged")
	}
}
