package search

import "context"

// Candidate is a single nearest-neighbor result returned by a search backend.
// Distance is cosine distance (0 = identical); backends must rank ascending.
type Candidate struct {
	ID       string                 `json:"id"`
	Document string                 `json:"description"`
	Distance float64                `json:"distance"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// SearchProvider defines the contract for any nearest-neighbor search backend
type SearchProvider interface {
	// Query returns up to topK candidates for the text, ascending by distance
	Query(ctx context.Context, text string, topK int) ([]Candidate, error)
}

// FilterByDistance keeps candidates at or below the threshold, preserving
// the provider's ranking. The boundary is inclusive.
func FilterByDistance(candidates []Candidate, threshold float64) []Candidate {
	filtered := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Distance <= threshold {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
