package search

import "fmt"

// ProviderError marks a failure inside a search backend.
type ProviderError struct {
	Backend string
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s search: %v", e.Backend, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
