package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"medexplain/internal/observability/metrics"
	"medexplain/internal/port"
)

// SessionSweeper periodically deletes expired sessions on a cron schedule.
type SessionSweeper struct {
	repo     port.SessionRepository
	schedule string
	cron     *cron.Cron
	now      func() time.Time
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewSessionSweeper creates a sweeper. schedule accepts standard cron expressions
// and descriptors such as "@every 15m".
func NewSessionSweeper(repo port.SessionRepository, schedule string, logger *zap.Logger, m *metrics.Metrics) *SessionSweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionSweeper{
		repo:     repo,
		schedule: schedule,
		cron:     cron.New(),
		now:      time.Now,
		logger:   logger,
		metrics:  m,
	}
}

// Sweep deletes every session that has expired and returns how many were removed.
func (s *SessionSweeper) Sweep(ctx context.Context) (int, error) {
	n, err := s.repo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("sweeping sessions: %w", err)
	}
	s.metrics.SessionsSwept(n)
	if n > 0 {
		s.logger.Info("expired sessions removed", zap.Int("count", n))
	}
	return n, nil
}

// Start registers the sweep job and starts the scheduler.
func (s *SessionSweeper) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := s.Sweep(ctx); err != nil {
			s.logger.Error("session sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.logger.Info("session sweeper started", zap.String("schedule", s.schedule))
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *SessionSweeper) Stop() {
	<-s.cron.Stop().Done()
}
