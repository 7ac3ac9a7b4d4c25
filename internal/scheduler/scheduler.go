package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Scheduler runs delayed one-shot tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	logger    *slog.Logger
}

// New creates a new scheduler instance
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		logger:    logger,
	}
}

// Start begins running scheduled tasks
func (s *Scheduler) Start() {
	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks. Pending tasks never fire.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// After runs fn once, d from now. A non-positive delay runs fn immediately
// on its own goroutine.
func (s *Scheduler) After(d time.Duration, fn func()) error {
	if d <= 0 {
		go fn()
		return nil
	}

	// The job is dropped from the scheduler once its single run is done
	_, err := s.scheduler.Every(d).WaitForSchedule().LimitRunsTo(1).Do(fn)
	if err != nil {
		return fmt.Errorf("schedule task in %s: %w", d, err)
	}
	s.logger.Debug("task scheduled", "delay", d)
	return nil
}
