package pipeline

import "fmt"

// SchemaError means the decision stage produced JSON that parsed but failed
// schema validation. It is surfaced rather than defaulted: an unvalidated
// decision could leak malformed trust-sensitive output to a customer.
type SchemaError struct {
	Field string
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decision failed schema validation on field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("decision failed schema validation: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
