package summary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/finwire/newsdesk/internal/pkg/redis"
)

// Key identifies a memoized summary. Both fields must match exactly.
type Key struct {
	Text      string
	Verbosity Verbosity
}

// Digest is a fixed-length form of the key for external stores.
func (k Key) Digest() string {
	h := sha256.New()
	h.Write([]byte(k.Verbosity.String()))
	h.Write([]byte{0})
	h.Write([]byte(k.Text))
	return hex.EncodeToString(h.Sum(nil))
}

// Cache memoizes summaries for one session.
type Cache interface {
	Get(ctx context.Context, key Key) (string, bool, error)
	Put(ctx context.Context, key Key, summary string) error
	Len(ctx context.Context) int
}

type MemoryCache struct {
	mu      sync.RWMutex
	entries map[Key]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[Key]string)}
}

func (c *MemoryCache) Get(_ context.Context, key Key) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *MemoryCache) Put(_ context.Context, key Key, summary string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = summary
	return nil
}

func (c *MemoryCache) Len(context.Context) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// RedisCache stores one string key per summary under the session namespace.
type RedisCache struct {
	client    *redis.Client
	sessionID string
	ttl       time.Duration
}

func NewRedisCache(client *redis.Client, sessionID string, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, sessionID: sessionID, ttl: ttl}
}

// RedisKey is the storage key of one memoized summary.
func RedisKey(client *redis.Client, sessionID string, key Key) string {
	return client.Key("session", sessionID, "summary", key.Digest())
}

func (c *RedisCache) Get(ctx context.Context, key Key) (string, bool, error) {
	return c.client.Get(ctx, RedisKey(c.client, c.sessionID, key))
}

func (c *RedisCache) Put(ctx context.Context, key Key, summary string) error {
	return c.client.Set(ctx, RedisKey(c.client, c.sessionID, key), summary, c.ttl)
}

// Len counts the summaries stored for the session. It reports 0 when Redis cannot be scanned.
func (c *RedisCache) Len(ctx context.Context) int {
	n, err := c.client.Count(ctx, c.pattern())
	if err != nil {
		return 0
	}
	return n
}

func (c *RedisCache) pattern() string {
	return c.client.Key("session", c.sessionID, "summary", "*")
}

// Clear drops every summary of the session.
func (c *RedisCache) Clear(ctx context.Context) error {
	return c.client.DelPattern(ctx, c.pattern())
}
