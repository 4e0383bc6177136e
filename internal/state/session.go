package state

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session holds one simulator session: its repository and the transcript
// of commands typed into it.
type Session struct {
	ID        string
	CreatedAt time.Time

	repo       Repository
	transcript []Entry
	mu         sync.RWMutex
}

// Entry is one line of the transcript
type Entry struct {
	Input  string    `json:"input"`
	Output string    `json:"output"`
	At     time.Time `json:"at"`
}

// Transition computes the next repository from the current one. The
// returned output is recorded in the transcript when record is true.
type Transition func(current Repository) (next Repository, output string, record bool)

// SessionManager handles concurrent access to sessions
type SessionManager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

// NewSessionManager creates a new session manager
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
	}
}

// NewSessionID returns a fresh random session ID
func NewSessionID() string {
	return uuid.NewString()
}

func newSession(id string) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		repo:      Seed(),
	}
}

// CreateSession initializes a new session. An existing session with the
// same ID is returned as is.
func (sm *SessionManager) CreateSession(id string) (*Session, error) {
	s, _ := sm.GetOrCreate(id)
	return s, nil
}

// GetOrCreate returns the session for id, creating it when missing. The
// boolean reports whether a new session was created.
func (sm *SessionManager) GetOrCreate(id string) (*Session, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if id == "" {
		id = NewSessionID()
	}
	if s, exists := sm.sessions[id]; exists {
		return s, false
	}
	s := newSession(id)
	sm.sessions[id] = s
	return s, true
}

// GetSession retrieves a session by ID
func (sm *SessionManager) GetSession(id string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s, ok := sm.sessions[id]
	return s, ok
}

// DeleteSession drops a session. It reports whether the session existed.
func (sm *SessionManager) DeleteSession(id string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if _, ok := sm.sessions[id]; !ok {
		return false
	}
	delete(sm.sessions, id)
	return true
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// Repository returns the current repository value
func (s *Session) Repository() Repository {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo
}

// Transcript returns a copy of the recorded entries, oldest first
func (s *Session) Transcript() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.transcript)
}

// Apply runs input through fn and swaps in the resulting repository as a
// whole. It returns the previous and the new repository together with the
// transcript entry.
func (s *Session) Apply(input string, fn Transition) (prev, next Repository, entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev = s.repo
	next, output, record := fn(prev)
	s.repo = next

	entry = Entry{Input: input, Output: output, At: time.Now()}
	if record {
		s.transcript = append(s.transcript, entry)
	}
	return prev, next, entry
}

// Update swaps in the repository produced by fn without touching the transcript
func (s *Session) Update(fn func(Repository) Repository) Repository {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repo = fn(s.repo)
	return s.repo
}

// Reset restores the seed repository and clears the transcript
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repo = Seed()
	s.transcript = nil
}
