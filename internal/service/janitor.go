package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// IdleSessionDeleter removes sessions untouched since a moment.
type IdleSessionDeleter interface {
	DeleteIdle(before time.Time) int
}

// SessionJanitor periodically evicts idle sessions.
type SessionJanitor struct {
	sessions IdleSessionDeleter
	ttl      time.Duration
	interval time.Duration
	logger   *zap.Logger
}

// NewSessionJanitor creates a janitor evicting sessions idle for longer than ttl.
func NewSessionJanitor(sessions IdleSessionDeleter, ttl, interval time.Duration, logger *zap.Logger) *SessionJanitor {
	return &SessionJanitor{
		sessions: sessions,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
	}
}

// Sweep removes idle sessions once and returns how many were removed.
func (j *SessionJanitor) Sweep(now time.Time) int {
	removed := j.sessions.DeleteIdle(now.Add(-j.ttl))
	if removed > 0 {
		j.logger.Info("idle sessions evicted", zap.Int("removed", removed))
	}
	return removed
}

// Start runs the cleanup schedule until ctx is cancelled.
func (j *SessionJanitor) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		j.Sweep(time.Now())
	})
	if err != nil {
		return fmt.Errorf("add cleanup job: %w", err)
	}

	c.Start()
	j.logger.Info("session janitor started",
		zap.Duration("ttl", j.ttl),
		zap.Duration("interval", j.interval),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	j.logger.Info("session janitor stopped")
	return nil
}
