package chroma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"reliefconnect-ai-be/pkg/search"
)

// ChromaProvider queries a Chroma server collection over its REST API.
// The collection is expected to be configured with a server-side embedding
// function and cosine distance (hnsw:space = cosine).
type ChromaProvider struct {
	BaseURL    string
	Collection string
	Client     *http.Client

	collectionId string // resolved lazily from the collection name
}

var _ search.SearchProvider = &ChromaProvider{}

func NewChromaProvider(baseURL, collection string) *ChromaProvider {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	return &ChromaProvider{
		BaseURL:    baseURL,
		Collection: collection,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chromaCollectionResponse struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type chromaQueryRequest struct {
	QueryTexts []string `json:"query_texts"`
	NResults   int      `json:"n_results"`
	Include    []string `json:"include"`
}

type chromaQueryResponse struct {
	Ids       [][]string                 `json:"ids"`
	Documents [][]string                 `json:"documents"`
	Metadatas [][]map[string]interface{} `json:"metadatas"`
	Distances [][]float64                `json:"distances"`
}

func (p *ChromaProvider) resolveCollection(ctx context.Context) (string, error) {
	if p.collectionId != "" {
		return p.collectionId, nil
	}

	url := fmt.Sprintf("%s/api/v1/collections/%s", p.BaseURL, p.Collection)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chroma request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chroma error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var collection chromaCollectionResponse
	if err := json.Unmarshal(bodyBytes, &collection); err != nil {
		return "", fmt.Errorf("unmarshal collection: %w", err)
	}

	p.collectionId = collection.Id
	return p.collectionId, nil
}

func (p *ChromaProvider) Query(ctx context.Context, text string, topK int) ([]search.Candidate, error) {
	if topK <= 0 {
		topK = 5
	}

	collectionId, err := p.resolveCollection(ctx)
	if err != nil {
		return nil, &search.ProviderError{Backend: "chroma", Err: err}
	}

	payload := chromaQueryRequest{
		QueryTexts: []string{text},
		NResults:   topK,
		Include:    []string{"documents", "metadatas", "distances"},
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/collections/%s/query", p.BaseURL, collectionId)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, &search.ProviderError{Backend: "chroma", Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &search.ProviderError{Backend: "chroma", Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &search.ProviderError{Backend: "chroma", Err: fmt.Errorf("status %d, body: %s", resp.StatusCode, string(bodyBytes))}
	}

	var queryRes chromaQueryResponse
	if err := json.Unmarshal(bodyBytes, &queryRes); err != nil {
		return nil, &search.ProviderError{Backend: "chroma", Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	if len(queryRes.Ids) == 0 {
		return []search.Candidate{}, nil
	}

	// Chroma returns one result set per query text; we always send one.
	candidates := make([]search.Candidate, 0, len(queryRes.Ids[0]))
	for i, id := range queryRes.Ids[0] {
		candidate := search.Candidate{ID: id}
		if len(queryRes.Documents) > 0 && i < len(queryRes.Documents[0]) {
			candidate.Document = queryRes.Documents[0][i]
		}
		if len(queryRes.Metadatas) > 0 && i < len(queryRes.Metadatas[0]) {
			candidate.Metadata = queryRes.Metadatas[0][i]
		}
		if len(queryRes.Distances) > 0 && i < len(queryRes.Distances[0]) {
			candidate.Distance = queryRes.Distances[0][i]
		}
		candidates = append(candidates, candidate)
	}

	return candidates, nil
}
