package memory

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"reliefconnect-ai-be/pkg/store"
)

type SessionRepository struct {
	cache *cache.Cache

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSessionRepository() *SessionRepository {
	// Default expiration of 1 hour, purge expired sessions every 10 minutes.
	// Conversations are cheap to rebuild; an expired session just starts
	// with empty history.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
		locks: make(map[string]*sync.Mutex),
	}
}

func (r *SessionRepository) Save(conversation *store.Conversation) {
	r.cache.Set(conversation.SessionID, conversation, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Conversation, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Conversation), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// Lock acquires the per-session mutex, serializing concurrent turns for the
// same session id. Mutexes are never evicted; they are a few bytes each and
// the session key space is bounded by active users.
func (r *SessionRepository) Lock(sessionID string) func() {
	r.mu.Lock()
	m, ok := r.locks[sessionID]
	if !ok {
		m = &sync.Mutex{}
		r.locks[sessionID] = m
	}
	r.mu.Unlock()

	m.Lock()
	return m.Unlock
}
