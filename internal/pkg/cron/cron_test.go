package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestRunNowRecordsStatus(t *testing.T) {
	s := New(nil)
	fail := true
	s.Register(Job{Name: "sweep", Interval: time.Hour, Fn: func(context.Context) error {
		if fail {
			return errors.New("redis down")
		}
		return nil
	}})

	assert.Equal(t, true, s.RunNow(context.Background(), "sweep"))
	items := s.List()
	assert.Equal(t, 1, len(items))
	assert.Equal(t, StatusFailed, items[0].Status)
	assert.Equal(t, "redis down", items[0].Message)

	fail = false
	s.RunNow(context.Background(), "sweep")
	items = s.List()
	assert.Equal(t, StatusOK, items[0].Status)
	assert.Equal(t, 2, items[0].Runs)
	assert.NotEqual(t, nil, items[0].LastRunAt)

	assert.Equal(t, false, s.RunNow(context.Background(), "missing"))
}

func TestRegisterIgnoresInvalidJobs(t *testing.T) {
	s := New(nil)
	s.Register(Job{Name: "zero", Fn: func(context.Context) error { return nil }})
	s.Register(Job{Name: "nofn", Interval: time.Second})
	assert.Equal(t, 0, len(s.List()))
}

func TestStartRunsUntilCancelled(t *testing.T) {
	s := New(nil)
	var runs atomic.Int32
	s.Register(Job{Name: "tick", Interval: 5 * time.Millisecond, Fn: func(context.Context) error {
		runs.Add(1)
		return nil
	}})

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	deadline := time.Now().Add(2 * time.Second)
	for runs.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	s.Wait()

	assert.Equal(t, true, runs.Load() >= 2)
}
