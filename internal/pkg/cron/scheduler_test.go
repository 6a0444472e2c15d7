package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_AddJobValidation(t *testing.T) {
	s := NewScheduler()
	assert.Error(t, s.AddJob(Job{Name: "no interval", Fn: func(context.Context) error { return nil }}))
	assert.Error(t, s.AddJob(Job{Name: "no fn", Interval: time.Second}))
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()
	var ok, failed int32
	require.NoError(t, s.AddJob(Job{Name: "ok", Interval: time.Hour, Fn: func(context.Context) error {
		atomic.AddInt32(&ok, 1)
		return nil
	}}))
	require.NoError(t, s.AddJob(Job{Name: "failing", Interval: time.Hour, Fn: func(context.Context) error {
		atomic.AddInt32(&failed, 1)
		return errors.New("boom")
	}}))

	s.RunOnce(context.Background())
	assert.Equal(t, int32(1), atomic.LoadInt32(&ok))
	assert.Equal(t, int32(1), atomic.LoadInt32(&failed), "a failing job does not stop the others")
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler()
	ran := make(chan struct{}, 1)
	require.NoError(t, s.AddJob(Job{Name: "tick", Interval: time.Hour, Fn: func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}}))

	s.Start(context.Background())
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
	s.Stop()
}

func TestScheduler_Timeout(t *testing.T) {
	s := NewScheduler()
	var deadlineSet atomic.Bool
	require.NoError(t, s.AddJob(Job{Name: "bounded", Interval: time.Hour, Timeout: time.Minute, Fn: func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		deadlineSet.Store(ok)
		return nil
	}}))

	s.RunOnce(context.Background())
	assert.True(t, deadlineSet.Load())
}
