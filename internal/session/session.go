// Package session holds server-side draft sessions. Each session owns one
// draft tree plus its search-widget state; handlers swap snapshots in under
// the store lock, so a change is either fully applied or not at all.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/glasspack/api/internal/draft"
	"github.com/google/uuid"
)

// Sessions idle longer than this are dropped on the next Create.
const idleTTL = 12 * time.Hour

// Errors returned by the store.
var (
	ErrNotFound   = errors.New("draft session not found")
	ErrSearchBusy = errors.New("a duplicate-order search is already running")
	ErrSubmitBusy = errors.New("a submit is already running")
)

// Session is one user's in-progress order form.
type Session struct {
	ID     uuid.UUID
	Draft  draft.Draft
	Search draft.SearchState

	// Guards mirroring the form's isSearching / isSubmitting flags: while
	// set, a second lookup or submit is refused instead of issued twice.
	Searching  bool
	Submitting bool

	lastActive time.Time
}

// Store is a mutex-guarded in-memory session registry.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]*Session)}
}

// Create opens a new session with a fresh draft of the requested variant.
func (s *Store) Create(teamOrder bool, team, username string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, sess := range s.sessions {
		if now.Sub(sess.lastActive) > idleTTL {
			delete(s.sessions, id)
		}
	}

	d := draft.New(teamOrder)
	d.Team = team
	d.CreatedBy = username
	sess := &Session{
		ID:         uuid.New(),
		Draft:      d,
		Search:     draft.NewSearchState(),
		lastActive: now,
	}
	s.sessions[sess.ID] = sess
	return sess
}

// Get returns a copy of the session state.
func (s *Store) Get(id uuid.UUID) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return *sess, nil
}

// Delete removes a session.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Update applies fn to the session under the store lock and installs the
// snapshot it returns. fn returning an error leaves the session untouched.
func (s *Store) Update(id uuid.UUID, fn func(d draft.Draft, search draft.SearchState) (draft.Draft, draft.SearchState, error)) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	nd, ns, err := fn(sess.Draft, sess.Search)
	if err != nil {
		return *sess, err
	}
	sess.Draft = nd
	sess.Search = ns
	sess.lastActive = time.Now()
	return *sess, nil
}

// BeginSearch claims the duplicate-search guard. A second concurrent call
// fails with ErrSearchBusy and must not trigger another lookup.
func (s *Store) BeginSearch(id uuid.UUID) error {
	return s.claim(id, func(sess *Session) error {
		if sess.Searching {
			return ErrSearchBusy
		}
		sess.Searching = true
		return nil
	})
}

// EndSearch releases the duplicate-search guard.
func (s *Store) EndSearch(id uuid.UUID) {
	_ = s.claim(id, func(sess *Session) error {
		sess.Searching = false
		return nil
	})
}

// BeginSubmit claims the submit guard, refusing duplicate concurrent
// submissions.
func (s *Store) BeginSubmit(id uuid.UUID) error {
	return s.claim(id, func(sess *Session) error {
		if sess.Submitting {
			return ErrSubmitBusy
		}
		sess.Submitting = true
		return nil
	})
}

// EndSubmit releases the submit guard.
func (s *Store) EndSubmit(id uuid.UUID) {
	_ = s.claim(id, func(sess *Session) error {
		sess.Submitting = false
		return nil
	})
}

func (s *Store) claim(id uuid.UUID, fn func(*Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	return fn(sess)
}
