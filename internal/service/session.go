package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one browser tab's worth of state: its credential holder and
// its generation workflow. Sessions address state; they are not
// authentication.
type Session struct {
	ID          string
	Credentials *CredentialHolder
	Workflow    *Workflow
	CreatedAt   time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// LastSeen returns the time of the session's most recent request
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SessionManager tracks live sessions in memory. Sessions are never
// persisted: a restart (like a page reload) starts everyone fresh with an
// empty credential.
type SessionManager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	fallbackKey string
}

// NewSessionManager creates a manager whose sessions fall back to the given
// process-level API key when no session key is set.
func NewSessionManager(fallbackKey string) *SessionManager {
	return &SessionManager{
		sessions:    make(map[string]*Session),
		fallbackKey: fallbackKey,
	}
}

// Create opens a new session
func (m *SessionManager) Create() *Session {
	now := time.Now()
	s := &Session{
		ID:          uuid.New().String(),
		Credentials: NewCredentialHolder(m.fallbackKey),
		Workflow:    NewWorkflow(),
		CreatedAt:   now,
		lastSeen:    now,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get looks up a session by ID and marks it as seen
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		s.touch()
	}
	return s, ok
}

// PruneIdle drops sessions idle for longer than maxIdle and returns how
// many were removed. Called periodically from main.
func (m *SessionManager) PruneIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.LastSeen().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Count returns the number of live sessions
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
