package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no live session exists for a user
var ErrNotFound = errors.New("session not found")

// Store is an in-memory, concurrency-safe table of live editing sessions
// keyed by user ID. Each user has at most one live session; creating a new
// one discards any previous session for that user.
//
// The store's own mutex only guards map access and never covers external
// I/O. Callers that perform a read-transform-write cycle (read CurrentText,
// call the model, write the result back) must hold the per-user mutex from
// Acquire for the whole cycle so concurrent edits from the same user
// serialize instead of clobbering each other.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	// per-user edit locks, lazily created and kept past session deletion
	// so a lock held across an eviction stays valid
	locks sync.Map
}

// NewStore creates a new empty session store
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session for a user with the given initial text,
// replacing any existing session for that user
func (s *Store) Create(userID, text string) *Session {
	sess := NewSession(userID, text)

	s.mu.Lock()
	s.sessions[userID] = sess
	s.mu.Unlock()

	return sess.clone()
}

// Get retrieves a copy of the user's live session, or false if none exists
func (s *Store) Get(userID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, exists := s.sessions[userID]
	if !exists {
		return nil, false
	}
	return sess.clone(), true
}

// Update appends a completed edit to the session identified by id and
// advances its current text to the edit's result. Matching on the session ID
// rather than the user alone means a result computed against a session that
// was cancelled or replaced while the transformation was in flight is
// rejected with ErrNotFound instead of clobbering the replacement
func (s *Store) Update(userID string, id uuid.UUID, newText string, edit Edit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, exists := s.sessions[userID]
	if !exists || sess.ID != id {
		return ErrNotFound
	}

	sess.History = append(sess.History, edit)
	sess.CurrentText = newText
	sess.UpdatedAt = time.Now()
	return nil
}

// Delete removes the user's session. Deleting an absent session is a no-op
func (s *Store) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Count returns the number of live sessions
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Acquire returns the per-user edit mutex, creating it on first use
func (s *Store) Acquire(userID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// EvictIdle removes sessions that have not been touched within the given
// duration and returns how many were removed
func (s *Store) EvictIdle(olderThan time.Duration) int {
	cutoff := time.Now().Add(-olderThan)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for userID, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, userID)
			evicted++
		}
	}
	return evicted
}
