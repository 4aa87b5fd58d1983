package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/finwire/newsdesk/internal/modules/chat"
	"github.com/finwire/newsdesk/internal/modules/summary"
	"github.com/go-playground/assert/v2"
	"github.com/google/uuid"
)

func TestTryBeginRejectsSecondRequest(t *testing.T) {
	s := NewManager(nil, time.Hour, nil).Create()

	assert.Equal(t, nil, s.TryBegin())
	assert.Equal(t, ErrBusy, s.TryBegin())
	s.End()
	assert.Equal(t, nil, s.TryBegin())
}

func TestTryBeginConcurrent(t *testing.T) {
	s := NewManager(nil, time.Hour, nil).Create()

	var wg sync.WaitGroup
	var mu sync.Mutex
	won := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.TryBegin() == nil {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, won)
}

func TestGetOrCreate(t *testing.T) {
	m := NewManager(nil, time.Hour, nil)

	a := m.Create()
	_, err := uuid.Parse(a.ID)
	assert.Equal(t, nil, err)

	b := m.GetOrCreate(a.ID)
	assert.Equal(t, a, b)

	c := m.GetOrCreate("not-a-uuid")
	assert.NotEqual(t, "not-a-uuid", c.ID)
	assert.Equal(t, 2, m.Count())

	_, ok := m.Get(uuid.NewString())
	assert.Equal(t, false, ok)
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	m := NewManager(nil, time.Hour, nil)
	a, b := m.Create(), m.Create()

	_ = a.Transcript.Append(ctx, chat.Turn{Role: chat.RoleHuman, Text: "hi"})
	_ = a.Summaries.Put(ctx, summary.Key{Text: "t", Verbosity: summary.Short}, "s")

	turns, _ := b.Transcript.Turns(ctx)
	assert.Equal(t, 0, len(turns))
	_, ok, _ := b.Summaries.Get(ctx, summary.Key{Text: "t", Verbosity: summary.Short})
	assert.Equal(t, false, ok)
}

func TestSweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(nil, time.Hour, nil)
	m.now = func() time.Time { return now }

	idle := m.Create()
	busy := m.Create()
	_ = busy.TryBegin()

	now = now.Add(30 * time.Minute)
	fresh := m.Create()

	now = now.Add(45 * time.Minute)
	assert.Equal(t, 1, m.Sweep(context.Background()))

	_, ok := m.Get(idle.ID)
	assert.Equal(t, false, ok)
	_, ok = m.Get(busy.ID)
	assert.Equal(t, true, ok)
	_, ok = m.Get(fresh.ID)
	assert.Equal(t, true, ok)
}
