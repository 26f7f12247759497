package parser

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError means the provider's output could not be coerced into JSON,
// even after scanning for an embedded object. Raw carries the offending
// text for logs and debugging.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	raw := e.Raw
	if len(raw) > 200 {
		raw = raw[:200] + "..."
	}
	return fmt.Sprintf("could not parse JSON from provider response: %q", raw)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Extract parses a JSON object out of a raw completion. Providers routinely
// wrap structured output in prose or markdown fences, so a failed direct
// parse falls back to the first '{' .. last '}' substring (spanning newlines).
func Extract(raw string) (map[string]interface{}, error) {
	var result map[string]interface{}
	if err := ExtractInto(raw, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ExtractInto is Extract with a caller-supplied target type.
func ExtractInto(raw string, v interface{}) error {
	trimmed := strings.TrimSpace(raw)

	directErr := json.Unmarshal([]byte(trimmed), v)
	if directErr == nil {
		return nil
	}

	embedded := extractJSON(trimmed)
	if embedded == "" {
		return &ParseError{Raw: raw, Err: directErr}
	}

	if err := json.Unmarshal([]byte(embedded), v); err != nil {
		return &ParseError{Raw: raw, Err: err}
	}
	return nil
}

func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}
