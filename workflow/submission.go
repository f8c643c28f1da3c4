package workflow

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// InputType is the declared format of a document submission.
type InputType string

// Supported submission input types.
const (
	InputEmail InputType = "Email"
	InputJSON  InputType = "JSON"
	InputPDF   InputType = "PDF"
)

// Submission is a single ephemeral document submission. PDF documents
// arrive as a base64 data URI; Email and JSON arrive as plain text content.
type Submission struct {
	InputType  InputType `json:"input_type"`
	Content    string    `json:"content"`
	PDFDataURI string    `json:"pdf_data_uri,omitempty"`
}

// Validate enforces the pre-flight constraints that gate a run: a PDF
// submission requires a decodable document, everything else requires
// non-blank text. For PDFs the returned page count verifies the document
// is structurally readable before any stage runs.
func (s Submission) Validate() (*int, error) {
	switch s.InputType {
	case InputPDF:
		if strings.TrimSpace(s.PDFDataURI) == "" {
			return nil, fmt.Errorf("%w: PDF submission requires a document", ErrInvalidSubmission)
		}

		data, err := DecodeDataURI(s.PDFDataURI)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
		}

		count, err := api.PageCount(bytes.NewReader(data), nil)
		if err != nil {
			return nil, fmt.Errorf("%w: unreadable PDF document: %w", ErrInvalidSubmission, err)
		}

		return &count, nil
	case InputEmail, InputJSON:
		if strings.TrimSpace(s.Content) == "" {
			return nil, fmt.Errorf("%w: %s submission requires non-blank content", ErrInvalidSubmission, s.InputType)
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unknown input type %q", ErrInvalidSubmission, s.InputType)
	}
}

// documentContent returns the content handed to the classifier.
func (s Submission) documentContent() string {
	if s.InputType == InputPDF {
		return s.PDFDataURI
	}
	return s.Content
}

// EncodeDataURI builds a base64 data URI with the given MIME prefix.
func EncodeDataURI(data []byte, contentType string) string {
	return fmt.Sprintf(
		"data:%s;base64,%s",
		contentType,
		base64.StdEncoding.EncodeToString(data),
	)
}

// DecodeDataURI extracts the raw bytes from a base64 data URI.
func DecodeDataURI(uri string) ([]byte, error) {
	const prefix = "data:"
	if !strings.HasPrefix(uri, prefix) {
		return nil, fmt.Errorf("malformed data URI")
	}

	idx := strings.Index(uri, ",")
	if idx < 0 {
		return nil, fmt.Errorf("malformed data URI")
	}

	if !strings.HasSuffix(uri[len(prefix):idx], ";base64") {
		return nil, fmt.Errorf("data URI must be base64-encoded")
	}

	data, err := base64.StdEncoding.DecodeString(uri[idx+1:])
	if err != nil {
		return nil, fmt.Errorf("decode data URI: %w", err)
	}

	return data, nil
}
