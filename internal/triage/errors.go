package triage

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/triage/workflow"
)

// Domain errors for triage operations.
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrBatchTooLarge  = errors.New("batch exceeds maximum size")
	ErrEmptyBatch     = errors.New("batch contains no submissions")
)

// MapHTTPStatus maps triage domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, workflow.ErrInvalidSubmission) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrInvalidRequest) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrBatchTooLarge) || errors.Is(err, ErrEmptyBatch) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
