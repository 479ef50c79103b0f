package storefront

import (
	"sync"
	"time"
)

// APIFactory builds the API a session's store dispatches through, acting as
// that session and, when token is set, as the signed-in user.
type APIFactory func(sessionID, token string) API

// Sessions maps session ids to their stores. Stores idle for longer than ttl
// are dropped by Sweep.
type Sessions struct {
	mu     sync.Mutex
	stores map[string]*session
	newAPI APIFactory
	ttl    time.Duration
	now    func() time.Time
}

type session struct {
	store    *Store
	lastSeen time.Time
}

func NewSessions(newAPI APIFactory, ttl time.Duration) *Sessions {
	return &Sessions{
		stores: make(map[string]*session),
		newAPI: newAPI,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Get returns the session's store, creating it on first use, bound to an API
// carrying the request's credentials.
func (s *Sessions) Get(sessionID, token string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.stores[sessionID]
	if !ok {
		sess = &session{store: NewStore(nil)}
		s.stores[sessionID] = sess
	}
	sess.lastSeen = s.now()
	sess.store.SetAPI(s.newAPI(sessionID, token))
	return sess.store
}

// Sweep drops idle sessions and returns how many were removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	cutoff := s.now().Add(-s.ttl)
	for id, sess := range s.stores {
		if sess.lastSeen.Before(cutoff) {
			delete(s.stores, id)
			removed++
		}
	}
	return removed
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stores)
}
