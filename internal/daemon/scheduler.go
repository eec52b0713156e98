package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
	"github.com/OpenStickCommunity/gp2040-ce-docs/internal/logfields"
)

// Scheduler wraps gocron scheduler for managing periodic tasks.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates a new scheduler instance.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryRuntime, "failed to create scheduler").Build()
	}
	return &Scheduler{scheduler: s}, nil
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	slog.Info("Starting scheduler")
	s.scheduler.Start()
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	slog.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}

// ScheduleRemoteRefresh runs d.RefreshRemoteContent every interval. Runs
// never overlap. It returns the job ID.
func (s *Scheduler) ScheduleRemoteRefresh(ctx context.Context, d *Daemon, interval time.Duration) (string, error) {
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			start := time.Now()
			if err := d.RefreshRemoteContent(ctx); err != nil {
				slog.Error("Scheduled remote refresh failed", logfields.Error(err))
				return
			}
			slog.Debug("Scheduled remote refresh done", logfields.Duration(time.Since(start)))
		}),
		gocron.WithName("remote-content-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", derrors.WrapError(err, derrors.CategoryRuntime, "failed to schedule remote refresh").
			WithContext("interval", interval.String()).
			Build()
	}
	slog.Info("Scheduled remote content refresh", slog.Duration("interval", interval))
	return job.ID().String(), nil
}
