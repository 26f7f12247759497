package redisstore

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"reliefconnect-ai-be/pkg/store"
)

const (
	keyPrefix  = "support:session:"
	sessionTTL = 1 * time.Hour
)

// SessionRepository keeps conversation state in Redis so sessions survive
// process restarts and can be shared by replicas. Locks are process-local:
// cross-replica exclusion would need SET NX leases, which this deployment
// does not require yet.
type SessionRepository struct {
	client *redis.Client

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSessionRepository(redisURL string) (*SessionRepository, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &SessionRepository{
		client: client,
		locks:  make(map[string]*sync.Mutex),
	}, nil
}

func (r *SessionRepository) Save(conversation *store.Conversation) {
	data, err := json.Marshal(conversation)
	if err != nil {
		log.Printf("[ERROR] Failed to marshal session %s: %v", conversation.SessionID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.client.Set(ctx, keyPrefix+conversation.SessionID, data, sessionTTL).Err(); err != nil {
		log.Printf("[ERROR] Failed to save session %s: %v", conversation.SessionID, err)
	}
}

func (r *SessionRepository) Get(sessionID string) (*store.Conversation, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := r.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		return nil, false
	}

	var conversation store.Conversation
	if err := json.Unmarshal(data, &conversation); err != nil {
		log.Printf("[ERROR] Failed to unmarshal session %s: %v", sessionID, err)
		return nil, false
	}
	return &conversation, true
}

func (r *SessionRepository) Delete(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r.client.Del(ctx, keyPrefix+sessionID)
}

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
