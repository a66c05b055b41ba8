package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/taskloop/backend/internal/infrastructure/attempts"
)

// AttemptJanitor expires old login attempts so the rate-limit store does
// not grow without bound.
type AttemptJanitor struct {
	store     *attempts.Store
	retention time.Duration
	logger    *zap.Logger
	cron      *cron.Cron
}

func NewAttemptJanitor(store *attempts.Store, retention, interval time.Duration, logger *zap.Logger) *AttemptJanitor {
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	j := &AttemptJanitor{
		store:     store,
		retention: retention,
		logger:    logger,
		cron:      cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	_, _ = j.cron.AddFunc(schedule, j.Sweep)

	return j
}

func (j *AttemptJanitor) Start() {
	if j == nil || j.cron == nil {
		return
	}
	j.cron.Start()
	j.logger.Info("attempt janitor started")
}

func (j *AttemptJanitor) Stop(ctx context.Context) {
	if j == nil || j.cron == nil {
		return
	}
	stopCtx := j.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	j.logger.Info("attempt janitor stopped")
}

// Sweep drops attempts older than the retention window.
func (j *AttemptJanitor) Sweep() {
	if j == nil || j.store == nil {
		return
	}
	removed, err := j.store.Cleanup(time.Now().Add(-j.retention))
	if err != nil {
		j.logger.Error("attempt cleanup failed", zap.Error(err))
		return
	}
	if removed > 0 {
		j.logger.Debug("expired login attempts removed", zap.Int("count", removed))
	}
}
