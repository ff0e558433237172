package sync

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fieldline/syncbox/internal/logger"
	"github.com/fieldline/syncbox/internal/netmon"
)

// Job schedules background sync passes: one on start, one on every ticker
// interval, and one whenever connectivity comes back. The job is idle until
// Start is called.
type Job struct {
	coordinator Coordinator
	monitor     netmon.Monitor
	logger      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewJob creates a Job driving the given coordinator.
func NewJob(coordinator Coordinator, monitor netmon.Monitor, logger *logger.Logger) *Job {
	return &Job{
		coordinator: coordinator,
		monitor:     monitor,
		logger:      logger,
	}
}

// Start stops any previously running job, then launches the background
// goroutine. If interval is zero or negative it defaults to 5 minutes. The
// goroutine exits when ctx is cancelled or Stop is called.
func (j *Job) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	reconnects := j.monitor.Subscribe()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		j.runOnce(jobCtx)

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runOnce(jobCtx)
			case online := <-reconnects:
				if online {
					j.logger.Info().
						Str("func", "Job").
						Msg("connectivity restored, triggering sync")
					j.runOnce(jobCtx)
				}
			}
		}
	}()
}

// Stop cancels the background goroutine and blocks until it has exited.
// Safe to call when the job is not running.
func (j *Job) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *Job) runOnce(ctx context.Context) {
	result, err := j.coordinator.Sync(ctx)
	if err != nil {
		// Colliding with a manual sync is normal, everything else is not.
		if !errors.Is(err, ErrSyncInProgress) {
			j.logger.Error().
				Str("func", "Job.runOnce").
				Err(err).
				Msg("background sync failed")
		}
		return
	}

	if !result.Success() {
		j.logger.Warn().
			Str("func", "Job.runOnce").
			Int("errors", len(result.Errors)).
			Int("pushed", result.Pushed).
			Int("pulled", result.Pulled).
			Msg("background sync finished with errors")
	}
}
