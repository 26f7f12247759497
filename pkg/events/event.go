package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DECISION_MADE").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used across the service.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes emitted by the adjudication flow.
const (
	TypeDecisionMade = "DECISION_MADE"
	TypeFraudAlert   = "FRAUD_ALERT"
)

// NewDecisionMade builds the event emitted after every successful
// adjudication, fraudulent or not.
func NewDecisionMade(orderID, issueType, decision, riskLevel string, fraudFlag bool) BaseEvent {
	return BaseEvent{
		Type: TypeDecisionMade,
		Data: map[string]interface{}{
			"order_id":         orderID,
			"issue_type":       issueType,
			"decision":         decision,
			"fraud_flag":       fraudFlag,
			"fraud_risk_level": riskLevel,
		},
		OccurredAt: time.Now(),
	}
}

// NewFraudAlert builds the escalation event for flagged decisions.
func NewFraudAlert(orderID, issueType, riskLevel, reason string) BaseEvent {
	return BaseEvent{
		Type: TypeFraudAlert,
		Data: map[string]interface{}{
			"order_id":         orderID,
			"issue_type":       issueType,
			"fraud_risk_level": riskLevel,
			"reason":           reason,
		},
		OccurredAt: time.Now(),
	}
}
