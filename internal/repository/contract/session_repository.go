package contract

import "reliefconnect-ai-be/pkg/store"

// SessionRepository stores conversation state keyed by session id.
//
// Lock serializes concurrent turns on the same session id: callers must hold
// the per-key lock across the read-modify-write cycle and release it with the
// returned function. Without this, two concurrent turns race and the slower
// one silently overwrites the faster one's history.
type SessionRepository interface {
	Get(sessionID string) (*store.Conversation, bool)
	Save(conversation *store.Conversation)
	Delete(sessionID string)
	Lock(sessionID string) (unlock func())
}
