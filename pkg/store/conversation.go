package store

import (
	"strings"

	"reliefconnect-ai-be/pkg/search"
)

// Intent labels assigned by the classify stage.
const (
	IntentProduct = "product"
	IntentOrder   = "order"
	IntentFraud   = "fraud"
	IntentOther   = "other"
)

// HistoryWindow is how many trailing history lines are read back as
// context on the next turn. Storage itself is never truncated.
const HistoryWindow = 6

// Conversation is the per-session state threaded through the product
// recommendation pipeline. History is chronological and append-only;
// Query, Intent, Products and Response are overwritten each turn.
type Conversation struct {
	SessionID string             `json:"session_id"`
	Query     string             `json:"query"`
	Intent    string             `json:"intent"`
	Products  []search.Candidate `json:"products"`
	Response  string             `json:"response"`
	History   []string           `json:"history"`
}

func NewConversation(sessionID string) *Conversation {
	return &Conversation{
		SessionID: sessionID,
		History:   []string{},
	}
}

// ContextWindow returns the last n history lines in chronological order.
func (c *Conversation) ContextWindow(n int) []string {
	if n <= 0 || len(c.History) == 0 {
		return nil
	}
	if len(c.History) <= n {
		return c.History
	}
	return c.History[len(c.History)-n:]
}

// EffectiveQuery builds the context-prefixed query for a new user turn:
// the trailing history window joined by newlines, then "user: {query}".
// With no history the query is used verbatim.
func (c *Conversation) EffectiveQuery(query string) string {
	window := c.ContextWindow(HistoryWindow)
	if len(window) == 0 {
		return query
	}
	return strings.Join(window, "\n") + "\nuser: " + query
}

// AppendUserLine records the user's raw utterance in history.
func (c *Conversation) AppendUserLine(query string) {
	c.History = append(c.History, "user: "+query)
}

// AppendBotLine records the assistant's response in history.
func (c *Conversation) AppendBotLine(response string) {
	c.History = append(c.History, "bot: "+response)
}
