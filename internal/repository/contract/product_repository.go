package contract

import (
	"context"

	"github.com/google/uuid"

	"reliefconnect-ai-be/internal/model"
)

// ScoredProduct pairs a product with its cosine distance to a query vector.
type ScoredProduct struct {
	Product  *model.Product
	Distance float64
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindAll(ctx context.Context) ([]*model.Product, error)
	FindByIds(ctx context.Context, ids []uuid.UUID) ([]*model.Product, error)
	SaveEmbedding(ctx context.Context, embedding *model.ProductEmbedding) error
	DeleteEmbeddingsByProductId(ctx context.Context, productId uuid.UUID) error

	// SearchSimilarWithDistance returns the nearest products to the query
	// vector, ascending by cosine distance (0 = identical).
	SearchSimilarWithDistance(ctx context.Context, embedding []float32, limit int) ([]*ScoredProduct, error)
}
