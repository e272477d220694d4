// Package schedule runs periodic jobs such as scheduled link checks.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// LinkCheckJob is the name of the scheduled link check.
const LinkCheckJob = "link-check"

// Scheduler wraps a gocron scheduler.
type Scheduler struct {
	scheduler gocron.Scheduler
	ctx       context.Context
	cancel    context.CancelFunc
}

// New creates a scheduler. Jobs receive a context that is canceled by Stop.
func New() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{scheduler: s, ctx: ctx, cancel: cancel}, nil
}

// Every registers fn to run every interval, starting immediately once the
// scheduler is started. Overlapping runs of the same job are skipped.
// It returns the job ID.
func (s *Scheduler) Every(interval time.Duration, name string, fn func(context.Context) error) (string, error) {
	if interval <= 0 {
		return "", fmt.Errorf("job %s: interval must be positive, got %s", name, interval)
	}
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.run, name, fn),
		gocron.WithName(name),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create job %s: %w", name, err)
	}
	slog.Info("Scheduled job", logfields.Job(name), slog.Duration("interval", interval))
	return job.ID().String(), nil
}

func (s *Scheduler) run(name string, fn func(context.Context) error) {
	start := time.Now()
	slog.Debug("Running scheduled job", logfields.Job(name))
	if err := fn(s.ctx); err != nil {
		slog.Error("Scheduled job failed", logfields.Job(name), logfields.Error(err))
		return
	}
	slog.Debug("Scheduled job finished", logfields.Job(name), logfields.Duration(time.Since(start)))
}

// Start begins running jobs.
func (s *Scheduler) Start() {
	slog.Info("Starting scheduler")
	s.scheduler.Start()
}

// Stop cancels running jobs and waits for the scheduler to shut down.
func (s *Scheduler) Stop() error {
	slog.Info("Stopping scheduler")
	s.cancel()
	return s.scheduler.Shutdown()
}
