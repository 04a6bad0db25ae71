package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/V7-Lippyy/nutripal/internal/auth"
	"github.com/V7-Lippyy/nutripal/internal/logger"
)

type sessionRefreshJob struct {
	refresher SessionRefresher

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewSessionRefreshJob creates a sessionRefreshJob that rotates the provider
// session on a ticker. The job is idle until Start is called.
func NewSessionRefreshJob(refresher SessionRefresher, logger *logger.Logger) SessionRefreshJob {
	return &sessionRefreshJob{refresher: refresher, logger: logger}
}

// Start implements SessionRefreshJob. It stops any previously running job,
// then launches a background goroutine that refreshes every interval. If
// interval is zero or negative it defaults to 30 minutes. The goroutine
// exits when ctx is cancelled or Stop is called.
func (j *sessionRefreshJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Minute
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
				err := j.refresher.RefreshSession(jobCtx)
				if err != nil && !errors.Is(err, auth.ErrNoSession) && jobCtx.Err() == nil {
					j.logger.Err(err).
						Str("func", "sessionRefreshJob").
						Msg("background session refresh failed")
				}
			}
		}
	}()
}

// Stop implements SessionRefreshJob. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Safe to call
// when the job is not running (no-op in that case).
func (j *sessionRefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
