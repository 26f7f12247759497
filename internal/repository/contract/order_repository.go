package contract

import (
	"context"

	"github.com/google/uuid"

	"reliefconnect-ai-be/internal/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindById(ctx context.Context, id uuid.UUID) (*model.Order, error)
	FindAllByUserId(ctx context.Context, userId uuid.UUID) ([]*model.Order, error)
}
