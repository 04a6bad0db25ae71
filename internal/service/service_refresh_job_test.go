package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/V7-Lippyy/nutripal/internal/auth"
	"github.com/V7-Lippyy/nutripal/internal/logger"
)

type fakeRefresher struct {
	calls atomic.Int64
	err   error
}

func (f *fakeRefresher) RefreshSession(context.Context) error {
	f.calls.Add(1)
	return f.err
}

func TestSessionRefreshJob_RefreshesOnTicker(t *testing.T) {
	refresher := &fakeRefresher{}
	job := NewSessionRefreshJob(refresher, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	defer job.Stop()

	assert.Eventually(t, func() bool {
		return refresher.calls.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond)
}

func TestSessionRefreshJob_StopHaltsRefreshing(t *testing.T) {
	refresher := &fakeRefresher{}
	job := NewSessionRefreshJob(refresher, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return refresher.calls.Load() >= 1
	}, 2*time.Second, 5*time.Millisecond)

	job.Stop()
	settled := refresher.calls.Load()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, refresher.calls.Load(), "no refreshes after Stop")
}

func TestSessionRefreshJob_StopWithoutStart(t *testing.T) {
	job := NewSessionRefreshJob(&fakeRefresher{}, logger.Nop())
	job.Stop() // must not panic or block
}

func TestSessionRefreshJob_ToleratesNoSession(t *testing.T) {
	refresher := &fakeRefresher{err: auth.ErrNoSession}
	job := NewSessionRefreshJob(refresher, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	defer job.Stop()

	assert.Eventually(t, func() bool {
		return refresher.calls.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond, "job keeps ticking while signed out")
}

func TestSessionRefreshJob_RestartReplacesPrevious(t *testing.T) {
	refresher := &fakeRefresher{}
	job := NewSessionRefreshJob(refresher, logger.Nop())

	job.Start(context.Background(), time.Hour)
	job.Start(context.Background(), 10*time.Millisecond)
	defer job.Stop()

	assert.Eventually(t, func() bool {
		return refresher.calls.Load() >= 1
	}, 2*time.Second, 5*time.Millisecond)
}
