// Package schema defines the named JSON schemas for each pipeline stage
// contract and validates raw values against them.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Validator holds the compiled named schemas.
type Validator struct {
	compiled map[string]*jsonschema.Schema
}

// New compiles all registered schemas into a Validator.
func New() (*Validator, error) {
	compiled := make(map[string]*jsonschema.Schema)

	for name, def := range definitions() {
		s, err := compile(name, def)
		if err != nil {
			return nil, fmt.Errorf("compile schema %q: %w", name, err)
		}
		compiled[name] = s
	}

	return &Validator{compiled: compiled}, nil
}

// Validate checks value against the named schema. The value must be a
// JSON-compatible representation (map[string]any, []any, primitives).
// Returns a *ValidationError listing every violation, or ErrUnknownSchema
// for an unregistered name.
func (v *Validator) Validate(name string, value any) error {
	s, ok := v.compiled[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSchema, name)
	}

	if err := s.Validate(value); err != nil {
		return &ValidationError{
			Schema:     name,
			Violations: violations(err),
		}
	}

	return nil
}

func compile(name string, def map[string]any) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	resource := name + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resource, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	return compiler.Compile(resource)
}

// violations flattens a jsonschema error into leaf-level messages.
func violations(err error) []string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}
	return flatten(ve)
}

func flatten(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		location := ve.InstanceLocation
		if location == "" {
			location = "/"
		}
		return []string{fmt.Sprintf("%s: %s", location, ve.Message)}
	}

	var messages []string
	for _, cause := range ve.Causes {
		messages = append(messages, flatten(cause)...)
	}
	return messages
}
