package session

import (
	"context"
	"time"

	"github.com/finwire/newsdesk/internal/modules/chat"
	"github.com/finwire/newsdesk/internal/modules/summary"
	"github.com/finwire/newsdesk/internal/pkg/redis"
)

// RedisBackend keeps transcripts and summaries in Redis so they survive a restart. Keys expire
// after ttl without writes.
type RedisBackend struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBackend(client *redis.Client, ttl time.Duration) *RedisBackend {
	return &RedisBackend{client: client, ttl: ttl}
}

func (b *RedisBackend) Transcript(id string) chat.Transcript {
	return chat.NewRedisTranscript(b.client, id, b.ttl)
}

func (b *RedisBackend) Summaries(id string) summary.Cache {
	return summary.NewRedisCache(b.client, id, b.ttl)
}

func (b *RedisBackend) Drop(ctx context.Context, id string) error {
	if err := chat.NewRedisTranscript(b.client, id, b.ttl).Clear(ctx); err != nil {
		return err
	}
	return summary.NewRedisCache(b.client, id, b.ttl).Clear(ctx)
}
