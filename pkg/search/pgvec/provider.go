package pgvec

import (
	"context"
	"encoding/json"
	"fmt"

	"reliefconnect-ai-be/internal/repository/contract"
	"reliefconnect-ai-be/pkg/embedding"
	"reliefconnect-ai-be/pkg/search"
)

// PgvectorProvider serves nearest-neighbor queries from the product catalog:
// the query text is embedded by the configured embedding provider, then
// matched against product embeddings with pgvector cosine distance.
type PgvectorProvider struct {
	embeddingProvider embedding.EmbeddingProvider
	productRepo       contract.ProductRepository
}

var _ search.SearchProvider = &PgvectorProvider{}

func NewPgvectorProvider(
	embeddingProvider embedding.EmbeddingProvider,
	productRepo contract.ProductRepository,
) *PgvectorProvider {
	return &PgvectorProvider{
		embeddingProvider: embeddingProvider,
		productRepo:       productRepo,
	}
}

func (p *PgvectorProvider) Query(ctx context.Context, text string, topK int) ([]search.Candidate, error) {
	embeddingRes, err := p.embeddingProvider.Generate(text, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, &search.ProviderError{Backend: "pgvector", Err: fmt.Errorf("embedding generation failed: %w", err)}
	}

	scored, err := p.productRepo.SearchSimilarWithDistance(ctx, embeddingRes.Embedding.Values, topK)
	if err != nil {
		return nil, &search.ProviderError{Backend: "pgvector", Err: fmt.Errorf("vector search failed: %w", err)}
	}

	candidates := make([]search.Candidate, 0, len(scored))
	for _, s := range scored {
		metadata := map[string]interface{}{
			"name":         s.Product.Name,
			"utility":      s.Product.Utility,
			"category":     s.Product.Category,
			"price":        s.Product.Price,
			"availability": s.Product.Availability,
		}
		if s.Product.Emoji != "" {
			metadata["emoji"] = s.Product.Emoji
		}
		if len(s.Product.Metadata) > 0 {
			var extra map[string]interface{}
			if err := json.Unmarshal(s.Product.Metadata, &extra); err == nil {
				for k, v := range extra {
					metadata[k] = v
				}
			}
		}

		candidates = append(candidates, search.Candidate{
			ID:       s.Product.Id.String(),
			Document: s.Product.Description,
			Distance: s.Distance,
			Metadata: metadata,
		})
	}

	return candidates, nil
}
