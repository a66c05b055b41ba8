package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/taskloop/backend/repository"
)

// ScannerConfig controls how frequently reminders are scanned.
type ScannerConfig struct {
	Interval  time.Duration
	BatchSize int
}

// ReminderScanner periodically surfaces tasks whose reminder has elapsed
// and which are not done yet. Delivery is a log line for now; anything
// pushing reminders further (mail, webhooks) consumes the same log stream.
type ReminderScanner struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
	cron   *cron.Cron
	cfg    ScannerConfig
}

func NewReminderScanner(tasks repository.TaskRepository, logger *zap.Logger, cfg ScannerConfig) *ReminderScanner {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rs := &ReminderScanner{
		tasks:  tasks,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = rs.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := rs.Scan(ctx); err != nil {
			rs.logger.Error("reminder scan failed", zap.Error(err))
		}
	})

	return rs
}

// Start launches the cron scheduler.
func (rs *ReminderScanner) Start() {
	if rs == nil || rs.cron == nil {
		return
	}
	rs.cron.Start()
	rs.logger.Info("reminder scanner started")
}

// Stop gracefully stops the scheduler.
func (rs *ReminderScanner) Stop(ctx context.Context) {
	if rs == nil || rs.cron == nil {
		return
	}
	stopCtx := rs.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	rs.logger.Info("reminder scanner stopped")
}

// Scan fetches due reminders and logs them once per run.
func (rs *ReminderScanner) Scan(ctx context.Context) error {
	if rs == nil || rs.tasks == nil {
		return nil
	}

	due, err := rs.tasks.ListDueReminders(ctx, time.Now(), rs.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, task := range due {
		if task.IsDone() {
			continue
		}
		rs.logger.Info("task reminder due",
			zap.String("task_id", task.ID),
			zap.String("title", task.Title),
			zap.String("status", task.Status),
			zap.Timep("reminder_date", task.ReminderDate))
	}
	return nil
}
