// Package session owns per-visitor state: the chat transcript, the summary memo and the in-flight guard.
package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/finwire/newsdesk/internal/modules/chat"
	"github.com/finwire/newsdesk/internal/modules/summary"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrBusy is returned when a session already has a chat request in flight.
var ErrBusy = errors.New("a request is already in progress for this session")

type Session struct {
	ID         string
	Transcript chat.Transcript
	Summaries  summary.Cache
	CreatedAt  time.Time

	lastSeen atomic.Int64
	busy     atomic.Bool
}

// TryBegin marks the session as awaiting a response. It fails with ErrBusy instead of queueing.
func (s *Session) TryBegin() error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

// End returns the session to idle.
func (s *Session) End() {
	s.busy.Store(false)
}

func (s *Session) Busy() bool {
	return s.busy.Load()
}

func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// Backend provides session-scoped storage.
type Backend interface {
	Transcript(id string) chat.Transcript
	Summaries(id string) summary.Cache
	Drop(ctx context.Context, id string) error
}

type MemoryBackend struct{}

func (MemoryBackend) Transcript(string) chat.Transcript { return chat.NewMemoryTranscript() }
func (MemoryBackend) Summaries(string) summary.Cache    { return summary.NewMemoryCache() }
func (MemoryBackend) Drop(context.Context, string) error {
	return nil
}

// Manager tracks live sessions. Sessions idle longer than ttl are removed by Sweep.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	backend  Backend
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewManager(backend Backend, ttl time.Duration, logger *zap.Logger) *Manager {
	if backend == nil {
		backend = MemoryBackend{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		backend:  backend,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger.Named("session"),
	}
}

// Get returns a live session and refreshes its idle timer.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		s.touch(m.now())
	}
	return s, ok
}

// Create starts a session with a fresh random id.
func (m *Manager) Create() *Session {
	return m.GetOrCreate(uuid.NewString())
}

// GetOrCreate returns the session for id, creating it when unknown. An id that is not a
// UUID is replaced by a new one.
func (m *Manager) GetOrCreate(id string) *Session {
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	if s, ok := m.Get(id); ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		s.touch(m.now())
		return s
	}
	now := m.now()
	s := &Session{
		ID:         id,
		Transcript: m.backend.Transcript(id),
		Summaries:  m.backend.Summaries(id),
		CreatedAt:  now,
	}
	s.touch(now)
	m.sessions[id] = s
	m.logger.Debug("session created", zap.String("sid", id))
	return s
}

func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes idle sessions that are not awaiting a response and reports how many it dropped.
func (m *Manager) Sweep(ctx context.Context) int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	var expired []string
	for id, s := range m.sessions {
		if s.Busy() || s.LastSeen().After(cutoff) {
			continue
		}
		delete(m.sessions, id)
		expired = append(expired, id)
	}
	m.mu.Unlock()

	for _, id := range expired {
		if err := m.backend.Drop(ctx, id); err != nil {
			m.logger.Warn("drop session storage failed", zap.String("sid", id), zap.Error(err))
		}
	}
	if len(expired) > 0 {
		m.logger.Info("swept idle sessions", zap.Int("count", len(expired)))
	}
	return len(expired)
}
