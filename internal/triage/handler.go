package triage

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/triage/pkg/handlers"
	"github.com/JaimeStill/triage/pkg/routes"
	"github.com/JaimeStill/triage/workflow"
)

// maxBatchSize caps the number of submissions accepted in one batch request.
const maxBatchSize = 25

// Handler provides HTTP endpoints for triage operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a Handler with the given system, logger, and upload size limit.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "triage"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for triage endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/triage",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Run},
			{Method: "POST", Pattern: "/batch", Handler: h.RunBatch},
		},
	}
}

// Run accepts a single submission — JSON body, or multipart form with a
// file field for PDF — and returns the pipeline result.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	sub, err := h.readSubmission(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Run(r.Context(), sub)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// RunBatch accepts a JSON array of submissions and returns per-submission
// outcomes in input order.
func (h *Handler) RunBatch(w http.ResponseWriter, r *http.Request) {
	var subs []workflow.Submission
	if err := json.NewDecoder(r.Body).Decode(&subs); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	if len(subs) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrEmptyBatch)
		return
	}

	if len(subs) > maxBatchSize {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrBatchTooLarge)
		return
	}

	items := h.sys.RunBatch(r.Context(), subs)
	handlers.RespondJSON(w, http.StatusOK, items)
}

func (h *Handler) readSubmission(r *http.Request) (workflow.Submission, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		return h.readMultipart(r)
	}

	var sub workflow.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		return workflow.Submission{}, fmt.Errorf("%w: malformed body", ErrInvalidRequest)
	}

	return sub, nil
}

// readMultipart converts an uploaded document into a PDF submission with a
// base64 data URI body.
func (h *Handler) readMultipart(r *http.Request) (workflow.Submission, error) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		return workflow.Submission{}, fmt.Errorf("%w: upload too large", ErrInvalidRequest)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return workflow.Submission{}, fmt.Errorf("%w: missing file", ErrInvalidRequest)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return workflow.Submission{}, fmt.Errorf("%w: unreadable file", ErrInvalidRequest)
	}

	contentType := detectContentType(header.Header.Get("Content-Type"), data)

	return workflow.Submission{
		InputType:  workflow.InputPDF,
		PDFDataURI: workflow.EncodeDataURI(data, contentType),
	}, nil
}

func detectContentType(header string, data []byte) string {
	header = strings.TrimSpace(header)
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}
