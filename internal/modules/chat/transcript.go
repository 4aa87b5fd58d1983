package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/finwire/newsdesk/internal/pkg/redis"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleAssistant Role = "assistant"
	RoleHuman     Role = "human"
)

// Turn is one entry of a conversation.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Transcript is an append-only conversation log owned by one session.
type Transcript interface {
	Append(ctx context.Context, turns ...Turn) error
	// AppendFirst writes turn only if the transcript is empty, as one atomic step.
	AppendFirst(ctx context.Context, turn Turn) (bool, error)
	Turns(ctx context.Context) ([]Turn, error)
}

type MemoryTranscript struct {
	mu    sync.RWMutex
	turns []Turn
}

func NewMemoryTranscript() *MemoryTranscript {
	return &MemoryTranscript{}
}

func (t *MemoryTranscript) Append(_ context.Context, turns ...Turn) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = append(t.turns, turns...)
	return nil
}

func (t *MemoryTranscript) AppendFirst(_ context.Context, turn Turn) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.turns) > 0 {
		return false, nil
	}
	t.turns = append(t.turns, turn)
	return true, nil
}

// Turns returns a copy, so callers cannot rewrite history.
func (t *MemoryTranscript) Turns(context.Context) ([]Turn, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out, nil
}

// RedisTranscript keeps turns as JSON entries of a Redis list.
type RedisTranscript struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisTranscript(client *redis.Client, sessionID string, ttl time.Duration) *RedisTranscript {
	return &RedisTranscript{client: client, key: RedisKey(client, sessionID), ttl: ttl}
}

// RedisKey is the list key holding a session's transcript.
func RedisKey(client *redis.Client, sessionID string) string {
	return client.Key("session", sessionID, "transcript")
}

func (t *RedisTranscript) Append(ctx context.Context, turns ...Turn) error {
	if len(turns) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(turns))
	for _, turn := range turns {
		b, err := json.Marshal(turn)
		if err != nil {
			return err
		}
		values = append(values, string(b))
	}
	return t.client.Append(ctx, t.key, t.ttl, values...)
}

func (t *RedisTranscript) AppendFirst(ctx context.Context, turn Turn) (bool, error) {
	b, err := json.Marshal(turn)
	if err != nil {
		return false, err
	}
	return t.client.PushIfEmpty(ctx, t.key, t.ttl, string(b))
}

func (t *RedisTranscript) Turns(ctx context.Context) ([]Turn, error) {
	raw, err := t.client.List(ctx, t.key)
	if err != nil {
		return nil, err
	}
	return decodeTurns(raw)
}

// Clear removes the stored transcript.
func (t *RedisTranscript) Clear(ctx context.Context) error {
	return t.client.Del(ctx, t.key)
}

func decodeTurns(raw []string) ([]Turn, error) {
	turns := make([]Turn, 0, len(raw))
	for i, item := range raw {
		var turn Turn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			return nil, fmt.Errorf("transcript entry %d: %w", i, err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}
