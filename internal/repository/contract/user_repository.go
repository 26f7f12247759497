package contract

import (
	"context"

	"github.com/google/uuid"

	"reliefconnect-ai-be/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindById(ctx context.Context, id uuid.UUID) (*model.User, error)
}
