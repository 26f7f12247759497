package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"reliefconnect-ai-be/internal/model"
	"reliefconnect-ai-be/internal/repository/contract"
)

type ProductRepositoryImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &ProductRepositoryImpl{
		db: db,
	}
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *ProductRepositoryImpl) FindAll(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	if err := r.db.WithContext(ctx).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepositoryImpl) FindByIds(ctx context.Context, ids []uuid.UUID) ([]*model.Product, error) {
	var products []*model.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepositoryImpl) SaveEmbedding(ctx context.Context, embedding *model.ProductEmbedding) error {
	return r.db.WithContext(ctx).Create(embedding).Error
}

func (r *ProductRepositoryImpl) DeleteEmbeddingsByProductId(ctx context.Context, productId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("product_id = ?", productId).Delete(&model.ProductEmbedding{}).Error
}

// SearchSimilarWithDistance runs a pgvector cosine-distance scan over product
// embeddings, joined back to the live catalog rows.
func (r *ProductRepositoryImpl) SearchSimilarWithDistance(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredProduct, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.Product
		Distance float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	// Cosine distance: embedding_value <=> query_vector (0 = identical)
	err := r.db.WithContext(ctx).
		Table("product_embeddings").
		Select("products.*, embedding_value <=> ? as distance", queryVector).
		Joins("JOIN products ON products.id = product_embeddings.product_id").
		Where("product_embeddings.deleted_at IS NULL").
		Where("products.deleted_at IS NULL").
		Order("distance ASC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []*contract.ScoredProduct{}, nil
		}
		return nil, err
	}

	scored := make([]*contract.ScoredProduct, len(results))
	for i, res := range results {
		product := res.Product
		scored[i] = &contract.ScoredProduct{
			Product:  &product,
			Distance: res.Distance,
		}
	}
	return scored, nil
}
