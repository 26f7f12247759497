package llm

import "fmt"

// ProviderError marks a failure inside an LLM backend (network, HTTP
// status, malformed body). Handlers map it to an upstream failure rather
// than blaming the caller.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
