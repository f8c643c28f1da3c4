// Package prompts defines the per-stage prompt templates for the triage
// pipeline: tunable instructions, immutable output specifications, and
// variable-bearing templates with strict placeholder enforcement.
package prompts

import "errors"

// Sentinel errors for prompt operations.
var (
	ErrInvalidStage    = errors.New("invalid pipeline stage")
	ErrMissingVariable = errors.New("template variable not supplied")
)
