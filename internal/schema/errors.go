package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSchema is returned when a schema name has not been registered.
var ErrUnknownSchema = errors.New("unknown schema")

// ValidationError reports that a value failed validation against a named
// schema. Violations holds one human-readable message per failed constraint.
type ValidationError struct {
	Schema     string
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf(
		"value does not conform to schema %q: %s",
		e.Schema,
		strings.Join(e.Violations, "; "),
	)
}
