package triage_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/triage/internal/triage"
	"github.com/JaimeStill/triage/pkg/routes"
	"github.com/JaimeStill/triage/workflow"
)

// fakeSystem captures submissions and replays configured outcomes.
type fakeSystem struct {
	result  *workflow.Result
	err     error
	lastSub workflow.Submission
	batch   [][]workflow.Submission
}

func (f *fakeSystem) Handler(maxUploadSize int64) *triage.Handler {
	return triage.NewHandler(f, testLogger(), maxUploadSize)
}

func (f *fakeSystem) Run(_ context.Context, sub workflow.Submission) (*workflow.Result, error) {
	f.lastSub = sub
	return f.result, f.err
}

func (f *fakeSystem) RunBatch(_ context.Context, subs []workflow.Submission) []triage.BatchItem {
	f.batch = append(f.batch, subs)

	items := make([]triage.BatchItem, len(subs))
	for i := range subs {
		items[i] = triage.BatchItem{Index: i, Result: f.result}
	}
	return items
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMux(t *testing.T, sys *fakeSystem) *http.ServeMux {
	t.Helper()

	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler(1<<20).Routes())
	return mux
}

func doneResult() *workflow.Result {
	return &workflow.Result{State: workflow.RunDone}
}

func TestRun(t *testing.T) {
	t.Run("json submission", func(t *testing.T) {
		sys := &fakeSystem{result: doneResult()}
		mux := newMux(t, sys)

		body := `{"input_type":"Email","content":"please quote 200 units"}`
		req := httptest.NewRequest("POST", "/triage", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}

		var result workflow.Result
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if result.State != workflow.RunDone {
			t.Errorf("state = %s, want %s", result.State, workflow.RunDone)
		}
		if sys.lastSub.InputType != workflow.InputEmail {
			t.Errorf("submission input type = %s, want Email", sys.lastSub.InputType)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		sys := &fakeSystem{result: doneResult()}
		mux := newMux(t, sys)

		req := httptest.NewRequest("POST", "/triage", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("invalid submission maps to bad request", func(t *testing.T) {
		sys := &fakeSystem{
			err: fmt.Errorf("%w: Email submission requires non-blank content", workflow.ErrInvalidSubmission),
		}
		mux := newMux(t, sys)

		body := `{"input_type":"Email","content":""}`
		req := httptest.NewRequest("POST", "/triage", strings.NewReader(body))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("multipart upload becomes a pdf submission", func(t *testing.T) {
		sys := &fakeSystem{result: doneResult()}
		mux := newMux(t, sys)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", "invoice.pdf")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte("%PDF-1.4 fake body")); err != nil {
			t.Fatalf("write form file: %v", err)
		}
		mw.Close()

		req := httptest.NewRequest("POST", "/triage", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
		if sys.lastSub.InputType != workflow.InputPDF {
			t.Errorf("submission input type = %s, want PDF", sys.lastSub.InputType)
		}
		if !strings.HasPrefix(sys.lastSub.PDFDataURI, "data:") {
			t.Errorf("pdf data uri = %q, want data URI", sys.lastSub.PDFDataURI)
		}
	})

	t.Run("multipart without file field", func(t *testing.T) {
		sys := &fakeSystem{result: doneResult()}
		mux := newMux(t, sys)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		mw.WriteField("note", "no file here")
		mw.Close()

		req := httptest.NewRequest("POST", "/triage", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestRunBatch(t *testing.T) {
	t.Run("empty batch", func(t *testing.T) {
		sys := &fakeSystem{}
		mux := newMux(t, sys)

		req := httptest.NewRequest("POST", "/triage/batch", strings.NewReader("[]"))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("oversized batch", func(t *testing.T) {
		sys := &fakeSystem{}
		mux := newMux(t, sys)

		subs := make([]workflow.Submission, 26)
		for i := range subs {
			subs[i] = workflow.Submission{InputType: workflow.InputEmail, Content: "x"}
		}
		body, _ := json.Marshal(subs)

		req := httptest.NewRequest("POST", "/triage/batch", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if len(sys.batch) != 0 {
			t.Error("oversized batch should never reach the system")
		}
	})

	t.Run("valid batch returns per-item outcomes", func(t *testing.T) {
		sys := &fakeSystem{result: doneResult()}
		mux := newMux(t, sys)

		body := `[{"input_type":"Email","content":"a"},{"input_type":"JSON","content":"{}"}]`
		req := httptest.NewRequest("POST", "/triage/batch", strings.NewReader(body))
		rec := httptest.NewRecorder()

		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}

		var items []triage.BatchItem
		if err := json.NewDecoder(rec.Body).Decode(&items); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(items) != 2 {
			t.Errorf("items = %d, want 2", len(items))
		}
	})
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid submission", workflow.ErrInvalidSubmission, http.StatusBadRequest},
		{"invalid request", triage.ErrInvalidRequest, http.StatusBadRequest},
		{"batch too large", triage.ErrBatchTooLarge, http.StatusBadRequest},
		{"empty batch", triage.ErrEmptyBatch, http.StatusBadRequest},
		{"unknown error", fmt.Errorf("something else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := triage.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
