package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps go-redis for the application.
type Client struct {
	rdb    *redis.Client
	prefix string
}

// Connect creates a Redis client and verifies connectivity. Keys are namespaced under prefix.
func Connect(url, prefix string) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb, prefix: prefix}, nil
}

// Key joins parts under the client prefix.
func (c *Client) Key(parts ...string) string {
	return JoinKey(c.prefix, parts...)
}

// JoinKey builds a colon separated key, skipping an empty prefix.
func JoinKey(prefix string, parts ...string) string {
	all := make([]string, 0, len(parts)+1)
	if prefix != "" {
		all = append(all, prefix)
	}
	all = append(all, parts...)
	return strings.Join(all, ":")
}

func (c *Client) Close() error { return c.rdb.Close() }

// Set stores a value with optional TTL (0 = no expiry).
func (c *Client) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Get retrieves a string value. Returns ("", false, nil) if key does not exist.
func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Del deletes one or more keys.
func (c *Client) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Append pushes values to the tail of a list and refreshes its TTL.
func (c *Client) Append(ctx context.Context, key string, ttl time.Duration, values ...interface{}) error {
	pipe := c.rdb.TxPipeline()
	pipe.RPush(ctx, key, values...)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

var pushIfEmptyScript = redis.NewScript(`
if redis.call("LLEN", KEYS[1]) > 0 then
	return 0
end
redis.call("RPUSH", KEYS[1], ARGV[1])
if tonumber(ARGV[2]) > 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 1
`)

// PushIfEmpty appends value only when the list is empty or missing, atomically. It reports
// whether the value was written.
func (c *Client) PushIfEmpty(ctx context.Context, key string, ttl time.Duration, value interface{}) (bool, error) {
	n, err := pushIfEmptyScript.Run(ctx, c.rdb, []string{key}, value, ttl.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// List returns every element of a list in order.
func (c *Client) List(ctx context.Context, key string) ([]string, error) {
	return c.rdb.LRange(ctx, key, 0, -1).Result()
}

// Count returns the number of keys matching pattern using SCAN.
func (c *Client) Count(ctx context.Context, pattern string) (int, error) {
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	n := 0
	for iter.Next(ctx) {
		n++
	}
	return n, iter.Err()
}

// DelPattern removes every key matching pattern using SCAN.
func (c *Client) DelPattern(ctx context.Context, pattern string) error {
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= 100 {
			if err := c.Del(ctx, batch...); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return c.Del(ctx, batch...)
}
