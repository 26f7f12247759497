package dto

import "github.com/google/uuid"

type ProductResponse struct {
	Id           uuid.UUID              `json:"id"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	Utility      string                 `json:"utility"`
	Category     string                 `json:"category"`
	Price        float64                `json:"price"`
	Availability string                 `json:"availability"`
	Emoji        string                 `json:"emoji,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}
