package dto

import "time"

// DecisionMadeMessage is the watermill payload published after every
// successful adjudication and consumed by the alert fan-out.
type DecisionMadeMessage struct {
	OrderId        string    `json:"order_id"`
	IssueType      string    `json:"issue_type"`
	Decision       string    `json:"decision"`
	Reason         string    `json:"reason"`
	PoliteMessage  string    `json:"polite_message"`
	FraudFlag      bool      `json:"fraud_flag"`
	FraudRiskLevel string    `json:"fraud_risk_level"`
	CustomerEmail  string    `json:"customer_email,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
