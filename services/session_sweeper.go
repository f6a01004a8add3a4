package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type ExpiredSessionDeleter interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionSweeper periodically removes expired session rows. Expired sessions
// are already refused at request time; this only keeps the table small.
type SessionSweeper struct {
	sessions ExpiredSessionDeleter
	interval time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

const DefaultSweepInterval = 15 * time.Minute

// NewSessionSweeper falls back to DefaultSweepInterval when interval is not positive.
func NewSessionSweeper(sessions ExpiredSessionDeleter, interval time.Duration) *SessionSweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &SessionSweeper{
		sessions: sessions,
		interval: interval,
		logger:   log.With().Str("service", "sessionSweeper").Logger(),
		now:      time.Now,
	}
}

// SweepOnce deletes every session expired as of now.
func (s *SessionSweeper) SweepOnce(ctx context.Context) (int64, error) {
	removed, err := s.sessions.DeleteExpired(ctx, s.now().UTC())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info().Int64("removed", removed).Msg("swept expired sessions")
	}
	return removed, nil
}

// Run sweeps on every tick until ctx is cancelled. Failed sweeps are logged
// and retried on the next tick.
func (s *SessionSweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error().Err(err).Msg("error sweeping expired sessions")
			}
		}
	}
}
