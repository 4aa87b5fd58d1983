package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/assert/v2"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	c, err := Connect("redis://"+srv.Addr(), "newsdesk")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c, srv
}

func TestJoinKey(t *testing.T) {
	assert.Equal(t, "newsdesk:session:abc:transcript", JoinKey("newsdesk", "session", "abc", "transcript"))
	assert.Equal(t, "session:abc", JoinKey("", "session", "abc"))
	assert.Equal(t, "newsdesk:x", (&Client{prefix: "newsdesk"}).Key("x"))
}

func TestPushIfEmpty(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()
	key := c.Key("list")

	ok, err := c.PushIfEmpty(ctx, key, time.Minute, "first")
	assert.Equal(t, nil, err)
	assert.Equal(t, true, ok)

	ok, err = c.PushIfEmpty(ctx, key, time.Minute, "second")
	assert.Equal(t, nil, err)
	assert.Equal(t, false, ok)

	items, err := c.List(ctx, key)
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"first"}, items)
	assert.Equal(t, time.Minute, srv.TTL(key))
}

func TestCountAndDelPattern(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		assert.Equal(t, nil, c.Set(ctx, c.Key("session", "s1", k), "v", time.Minute))
	}
	assert.Equal(t, nil, c.Set(ctx, c.Key("session", "s2", "a"), "v", time.Minute))

	n, err := c.Count(ctx, c.Key("session", "s1", "*"))
	assert.Equal(t, nil, err)
	assert.Equal(t, 3, n)

	assert.Equal(t, nil, c.DelPattern(ctx, c.Key("session", "s1", "*")))
	n, _ = c.Count(ctx, c.Key("session", "*"))
	assert.Equal(t, 1, n)
}
