// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/models"
)

// spyShareService counts SweepExpired calls.
type spyShareService struct {
	calls atomic.Int64
	err   error
}

func (s *spyShareService) Share(context.Context, *Session, models.ShareRequest) (models.ShareInfo, error) {
	return models.ShareInfo{}, nil
}

func (s *spyShareService) Revoke(context.Context, *Session, string) error { return nil }

func (s *spyShareService) ListShares(context.Context, *Session, string) ([]models.ShareInfo, error) {
	return nil, nil
}

func (s *spyShareService) SweepExpired(context.Context, time.Time) (int, error) {
	s.calls.Add(1)
	return 0, s.err
}

// ── NewShareSweepJob ─────────────────────────────────────────────────────────

func TestNewShareSweepJob_ReturnsInterface(t *testing.T) {
	job := NewShareSweepJob(&spyShareService{}, logger.Nop())
	require.NotNil(t, job)

	var _ ShareSweepJob = job
}

// ── Start / Stop ─────────────────────────────────────────────────────────────

func TestShareSweepJob_Start_CallsSweepExpired(t *testing.T) {
	spy := &spyShareService{}
	job := NewShareSweepJob(spy, logger.Nop())

	// 10ms interval, about 5 ticks in 55ms
	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "SweepExpired called %d times", got)
}

func TestShareSweepJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spyShareService{}
	job := NewShareSweepJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, callsAfterStop, spy.calls.Load(), "no sweeps after Stop")
}

func TestShareSweepJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := NewShareSweepJob(&spyShareService{}, logger.Nop())

	assert.NotPanics(t, func() { job.Stop() })
}

func TestShareSweepJob_DoubleStop_NoPanic(t *testing.T) {
	job := NewShareSweepJob(&spyShareService{}, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	job.Stop()

	assert.NotPanics(t, func() { job.Stop() })
}

func TestShareSweepJob_Start_DefaultInterval(t *testing.T) {
	spy := &spyShareService{}
	job := NewShareSweepJob(spy, logger.Nop())

	// interval <= 0 falls back to one minute
	job.Start(context.Background(), 0)
	time.Sleep(20 * time.Millisecond)
	job.Stop()

	assert.Equal(t, int64(0), spy.calls.Load())
}

func TestShareSweepJob_Restart_KeepsSweeping(t *testing.T) {
	spy := &spyShareService{}
	job := NewShareSweepJob(spy, logger.Nop())
	ctx := context.Background()

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	callsBefore := spy.calls.Load()
	assert.Greater(t, callsBefore, int64(0))

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	assert.Greater(t, spy.calls.Load(), callsBefore)
}

func TestShareSweepJob_ContextCancel_StopsJob(t *testing.T) {
	job := NewShareSweepJob(&spyShareService{}, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop hung after context cancellation")
	}
}

func TestShareSweepJob_SweepError_DoesNotStopJob(t *testing.T) {
	spy := &spyShareService{err: assert.AnError}
	job := NewShareSweepJob(spy, logger.Nop())

	job.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	assert.GreaterOrEqual(t, spy.calls.Load(), int64(3))
}
