package scheduler

import (
	"context"
	"sync"
	"time"

	"price-tracker/internal/core/logger"

	"go.uber.org/zap"
)

// Job is the unit of work the scheduler runs on every tick.
type Job func(ctx context.Context)

// Scheduler runs a job at a fixed interval. The first run happens
// immediately when Start is called, then once per interval.
type Scheduler struct {
	interval time.Duration
	job      Job
	logger   *zap.Logger

	stopOnce sync.Once
	stop     chan struct{}
}

// New creates a Scheduler that runs job every interval.
func New(interval time.Duration, job Job) *Scheduler {
	return &Scheduler{
		interval: interval,
		job:      job,
		logger:   logger.Get(),
		stop:     make(chan struct{}),
	}
}

// Start runs the job immediately and then on every tick until the context
// is cancelled or Stop is called. It blocks; callers with other work to do
// should run it in a goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting scheduler", zap.Duration("interval", s.interval))

	s.job(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped")
			return
		case <-s.stop:
			s.logger.Info("Scheduler stopped")
			return
		case <-ticker.C:
			s.job(ctx)
		}
	}
}

// Stop terminates the tick loop. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}
