package state

import (
	"sync"
	"time"

	"storefront/internal/llm"

	"github.com/google/uuid"
)

// Session is the shopping state of one visitor. Callers hold the embedded
// mutex while reading or mutating Cart, Wishlist and Chat.
type Session struct {
	sync.Mutex

	ID       string
	Cart     Cart
	Wishlist Wishlist
	Chat     []llm.Message

	lastSeen    time.Time
	checkingOut bool
}

// BeginCheckout marks the session as paying for its cart. It reports false
// when a checkout is already running. The caller must hold the lock.
func (s *Session) BeginCheckout() bool {
	if s.checkingOut {
		return false
	}
	s.checkingOut = true
	return true
}

// EndCheckout clears the mark set by BeginCheckout. The caller must hold the lock.
func (s *Session) EndCheckout() {
	s.checkingOut = false
}

// Store owns every live session. It is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewStore returns an empty Store. now may be nil, in which case time.Now is used.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		sessions: make(map[string]*Session),
		now:      now,
	}
}

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.New().String()
}

// GetOrCreate returns the session with the given id, creating it if needed.
// An empty id always creates a new session with a generated id.
func (s *Store) GetOrCreate(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		id = NewID()
	}
	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{ID: id}
		s.sessions[id] = sess
	}
	sess.lastSeen = s.now()
	return sess
}

// Get returns an existing session.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if ok {
		sess.lastSeen = s.now()
	}
	return sess, ok
}

// Reset forgets a session together with its cart, wishlist and conversation.
func (s *Store) Reset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}

// Len is the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.sessions)
}

// Sweep forgets sessions idle for longer than idle and returns how many were dropped.
func (s *Store) Sweep(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-idle)
	dropped := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			dropped++
		}
	}
	return dropped
}
