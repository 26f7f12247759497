package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"reliefconnect-ai-be/internal/dto"
	"reliefconnect-ai-be/internal/model"
	"reliefconnect-ai-be/internal/repository/contract"
)

type IProductService interface {
	// List returns the full catalog, or only the given products when ids is
	// non-empty (used to hydrate recommendation candidates).
	List(ctx context.Context, ids []uuid.UUID) ([]*dto.ProductResponse, error)
}

type productService struct {
	productRepo contract.ProductRepository
}

func NewProductService(productRepo contract.ProductRepository) IProductService {
	return &productService{
		productRepo: productRepo,
	}
}

func (s *productService) List(ctx context.Context, ids []uuid.UUID) ([]*dto.ProductResponse, error) {
	var (
		products []*model.Product
		err      error
	)
	if len(ids) > 0 {
		products, err = s.productRepo.FindByIds(ctx, ids)
	} else {
		products, err = s.productRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, toProductResponse(p))
	}
	return res, nil
}

func toProductResponse(p *model.Product) *dto.ProductResponse {
	var metadata map[string]interface{}
	if len(p.Metadata) > 0 {
		_ = json.Unmarshal(p.Metadata, &metadata)
	}

	return &dto.ProductResponse{
		Id:           p.Id,
		Name:         p.Name,
		Description:  p.Description,
		Utility:      p.Utility,
		Category:     p.Category,
		Price:        p.Price,
		Availability: p.Availability,
		Emoji:        p.Emoji,
		Metadata:     metadata,
	}
}
