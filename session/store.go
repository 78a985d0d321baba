// Package session holds in-flight analysis sessions. Records are stored as
// immutable snapshots and replaced wholesale on every update, so pollers
// never observe a half-written session and never block the writer.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/use-agent/sitegrade/models"
)

// Store is an in-memory session store. It is safe for concurrent use: the
// owning analysis job is the only writer per key, readers may poll at any
// time.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*models.AnalysisSession
	ttl      time.Duration
}

// NewStore creates a Store. A background goroutine evicts terminal sessions
// older than ttl every 5 minutes.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*models.AnalysisSession),
		ttl:      ttl,
	}
	go s.cleanupLoop()
	return s
}

// Create registers a new pending session for the URL and returns its
// snapshot.
func (s *Store) Create(url string) *models.AnalysisSession {
	sess := &models.AnalysisSession{
		ID:        uuid.NewString(),
		URL:       url,
		Status:    models.StatusPending,
		Progress:  0,
		Message:   "Analysis queued",
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return sess
}

// Get returns the current session snapshot. The returned record is immutable;
// callers must not modify it.
func (s *Store) Get(id string) (*models.AnalysisSession, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	return sess, ok
}

// Update advances a session's status, progress, and message. Progress never
// moves backwards and terminal sessions never change again; out-of-order
// updates are dropped.
func (s *Store) Update(id string, status models.SessionStatus, progress int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.sessions[id]
	if !ok || cur.Status.Terminal() {
		return
	}
	if progress < cur.Progress {
		progress = cur.Progress
	}

	next := *cur
	next.Status = status
	next.Progress = progress
	next.Message = message
	s.sessions[id] = &next
}

// Complete marks the session completed at full progress with its result
// attached. No-op on terminal sessions.
func (s *Store) Complete(id string, result *models.AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.sessions[id]
	if !ok || cur.Status.Terminal() {
		return
	}

	next := *cur
	next.Status = models.StatusCompleted
	next.Progress = 100
	next.Message = "Analysis completed"
	next.Result = result
	s.sessions[id] = &next
}

// Fail marks the session errored with a user-safe message. Progress stays
// where it was; no partial result is ever attached.
func (s *Store) Fail(id, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.sessions[id]
	if !ok || cur.Status.Terminal() {
		return
	}

	next := *cur
	next.Status = models.StatusError
	next.Message = message
	next.Result = nil
	s.sessions[id] = &next
}

// Len returns the number of sessions currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// cleanupLoop evicts terminal sessions older than the TTL every 5 minutes.
func (s *Store) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-s.ttl)
		s.mu.Lock()
		for id, sess := range s.sessions {
			if sess.Status.Terminal() && sess.CreatedAt.Before(cutoff) {
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}
