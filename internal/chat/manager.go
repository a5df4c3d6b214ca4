package chat

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Pranav-Anand04/TerpFit/internal"
	"github.com/Pranav-Anand04/TerpFit/internal/observability"
)

type entry struct {
	mu      sync.Mutex
	session *Session
}

// Manager owns sessions for surfaces that serve more than one conversation.
// Messages for the same session run one at a time, in arrival order of the
// lock; different sessions proceed independently.
type Manager struct {
	controller *Controller
	ttl        time.Duration
	logger     internal.Logger
	now        func() time.Time

	mu       sync.RWMutex
	sessions map[string]*entry
}

func NewManager(controller *Controller, ttl time.Duration, logger internal.Logger) *Manager {
	return &Manager{
		controller: controller,
		ttl:        ttl,
		logger:     logger,
		now:        time.Now,
		sessions:   make(map[string]*entry),
	}
}

func (m *Manager) Create() Session {
	s := NewSession(uuid.NewString())
	s.LastActive = m.now()

	m.mu.Lock()
	m.sessions[s.ID] = &entry{session: s}
	n := len(m.sessions)
	m.mu.Unlock()

	observability.SetChatSessions(n)
	m.logger.Debugf("chat: session %s created", s.ID)
	return s.snapshot()
}

func (m *Manager) Get(id string) (Session, error) {
	var out Session
	err := m.with(id, false, func(s *Session) { out = s.snapshot() })
	return out, err
}

// Send delivers one user message. It blocks while an earlier message for the
// same session is still being answered.
func (m *Manager) Send(ctx context.Context, id, text string) (Reply, Session, error) {
	var (
		reply Reply
		snap  Session
	)
	err := m.with(id, true, func(s *Session) {
		reply = m.controller.HandleMessage(ctx, s, text)
		snap = s.snapshot()
	})
	return reply, snap, err
}

func (m *Manager) BeginLogging(id, gym string) (Reply, Session, error) {
	var (
		reply Reply
		snap  Session
	)
	err := m.with(id, true, func(s *Session) {
		reply = m.controller.BeginLogging(s, gym)
		snap = s.snapshot()
	})
	return reply, snap, err
}

func (m *Manager) BeginGymAssistance(id, gym string) (Reply, Session, error) {
	var (
		reply Reply
		snap  Session
	)
	err := m.with(id, true, func(s *Session) {
		reply = m.controller.BeginGymAssistance(s, gym)
		snap = s.snapshot()
	})
	return reply, snap, err
}

// Delete drops a session and reports whether it existed.
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	n := len(m.sessions)
	m.mu.Unlock()

	observability.SetChatSessions(n)
	return ok
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep removes sessions idle for longer than the TTL. Sessions busy with a
// message are skipped.
func (m *Manager) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	removed := 0
	for id, e := range m.sessions {
		if !e.mu.TryLock() {
			continue
		}
		if e.session.LastActive.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
		e.mu.Unlock()
	}
	n := len(m.sessions)
	m.mu.Unlock()

	observability.SetChatSessions(n)
	if removed > 0 {
		m.logger.Infof("chat: expired %d idle sessions", removed)
	}
	return removed
}

// Run sweeps expired sessions until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) error {
	if m.ttl <= 0 {
		<-ctx.Done()
		return nil
	}
	interval := m.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// with runs fn under the session lock. Only touching calls count as activity.
func (m *Manager) with(id string, touch bool, fn func(*Session)) error {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return internal.ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.session)
	if touch {
		e.session.LastActive = m.now()
	}
	return nil
}
