package dto

import (
	"time"

	"github.com/google/uuid"

	"reliefconnect-ai-be/pkg/ai/pipeline"
)

type ReportRequest struct {
	Order        map[string]interface{} `json:"order" validate:"required"`
	OrderProblem string                 `json:"order_problem" validate:"required"`
	IssueType    string                 `json:"issue_type" validate:"required"`
	// Image is an optional base64-encoded photo backing the claim.
	Image string `json:"image,omitempty"`
}

type ReportResponse struct {
	FraudResult map[string]interface{} `json:"fraud_result"`
	ImageResult map[string]interface{} `json:"image_result"`
	Decision    *pipeline.Decision     `json:"decision"`
}

type OrderItemDTO struct {
	Product  string `json:"product" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type CreateOrderRequest struct {
	Name      string                 `json:"name" validate:"required"`
	Address   string                 `json:"address" validate:"required"`
	Phone     string                 `json:"phone" validate:"required"`
	Email     string                 `json:"email" validate:"required,email"`
	Urgency   string                 `json:"urgency" validate:"omitempty,oneof=low medium high"`
	Payment   map[string]interface{} `json:"payment"`
	Items     []OrderItemDTO         `json:"items" validate:"required,min=1,dive"`
	IsPackage bool                   `json:"is_package"`
}

type OrderResponse struct {
	Id        uuid.UUID              `json:"id"`
	Name      string                 `json:"name"`
	Address   string                 `json:"address"`
	Phone     string                 `json:"phone"`
	Email     string                 `json:"email"`
	Urgency   string                 `json:"urgency"`
	Payment   map[string]interface{} `json:"payment"`
	Items     []OrderItemDTO         `json:"items"`
	IsPackage bool                   `json:"is_package"`
	Timestamp time.Time              `json:"timestamp"`
}
