package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
)

type shareSweepJob struct {
	shareService ShareService
	now          func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewShareSweepJob creates a shareSweepJob that calls
// shareService.SweepExpired on a ticker. The job is idle until Start is
// called.
func NewShareSweepJob(shareService ShareService, logger *logger.Logger) ShareSweepJob {
	return &shareSweepJob{shareService: shareService, now: time.Now, logger: logger}
}

// Start implements ShareSweepJob. It stops any previously running job, then
// launches a background goroutine that sweeps every interval. If interval is
// zero or negative it defaults to one minute. The goroutine exits when ctx is
// cancelled or Stop is called.
func (j *shareSweepJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if _, err := j.shareService.SweepExpired(jobCtx, j.now()); err != nil && jobCtx.Err() == nil {
					j.logger.Err(err).Str("func", "shareSweepJob.Start").Msg("share sweep failed")
				}
			}
		}
	}()
}

// Stop implements ShareSweepJob. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Safe to call when
// the job is not running.
func (j *shareSweepJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
