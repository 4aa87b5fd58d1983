package summary

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/finwire/newsdesk/internal/pkg/redis"
	"github.com/go-playground/assert/v2"
)

func TestRedisCacheLenCountsStoredEntries(t *testing.T) {
	srv := miniredis.RunT(t)
	ctx := context.Background()

	connect := func() *redis.Client {
		c, err := redis.Connect("redis://"+srv.Addr(), "newsdesk")
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = c.Close() })
		return c
	}

	client := connect()
	s := NewSummarizer(&fakeClient{reply: "Rates held."}, nil)
	cache := NewRedisCache(client, "sid-1", time.Hour)
	s.Summarize(ctx, cache, "Fed holds rates", Short)
	s.Summarize(ctx, cache, "Fed holds rates", Long)
	assert.Equal(t, nil, NewRedisCache(client, "sid-2", time.Hour).Put(ctx, Key{Text: "other"}, "x"))

	// a fresh process sees what the previous one stored
	reopened := NewRedisCache(connect(), "sid-1", time.Hour)
	assert.Equal(t, 2, reopened.Len(ctx))
	got, ok, err := reopened.Get(ctx, Key{Text: "Fed holds rates", Verbosity: Long})
	assert.Equal(t, nil, err)
	assert.Equal(t, true, ok)
	assert.Equal(t, "Rates held.", got)

	assert.Equal(t, nil, reopened.Clear(ctx))
	assert.Equal(t, 0, reopened.Len(ctx))
}
