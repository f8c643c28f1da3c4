// Package workflow implements the document triage pipeline: a linear
// classify → extract → route state graph with per-run audit logging and
// short-circuiting on stage failure.
package workflow

import "errors"

// Sentinel errors for workflow operations.
var (
	ErrInvalidSubmission = errors.New("invalid submission")
	ErrMissingState      = errors.New("missing workflow state")
)
