package invoker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/JaimeStill/triage/internal/invoker"
	"github.com/JaimeStill/triage/internal/prompts"
	"github.com/JaimeStill/triage/internal/schema"
)

// fakeAgent returns canned content and captures the rendered prompt.
type fakeAgent struct {
	content string
	err     error
	prompt  string
}

func (f *fakeAgent) Chat(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.content, nil
}

func newInvoker(t *testing.T, agent invoker.Agent) *invoker.Invoker {
	t.Helper()

	schemas, err := schema.New()
	if err != nil {
		t.Fatalf("schema.New() error = %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return invoker.New(agent, schemas, logger)
}

func classifyVars() map[string]string {
	return map[string]string{
		"content":     "Please quote 200 units.",
		"format_hint": "Email",
	}
}

func TestInvoke(t *testing.T) {
	ctx := context.Background()

	t.Run("parses and validates a structured response", func(t *testing.T) {
		agent := &fakeAgent{content: `{"format":"Email","intent":"RFQ"}`}
		inv := newInvoker(t, agent)

		got, err := inv.Invoke(ctx, prompts.StageClassify, classifyVars(), schema.Classification)
		if err != nil {
			t.Fatalf("Invoke() error = %v", err)
		}

		if got["format"] != "Email" || got["intent"] != "RFQ" {
			t.Errorf("result = %v", got)
		}
		if !strings.Contains(agent.prompt, "Please quote 200 units.") {
			t.Error("rendered prompt missing substituted content")
		}
	})

	t.Run("recovers a fenced response", func(t *testing.T) {
		agent := &fakeAgent{content: "```json\n{\"format\":\"Email\",\"intent\":\"RFQ\"}\n```"}
		inv := newInvoker(t, agent)

		got, err := inv.Invoke(ctx, prompts.StageClassify, classifyVars(), schema.Classification)
		if err != nil {
			t.Fatalf("Invoke() error = %v", err)
		}
		if got["format"] != "Email" {
			t.Errorf("result = %v", got)
		}
	})

	t.Run("missing template variable fails before the model call", func(t *testing.T) {
		agent := &fakeAgent{content: `{}`}
		inv := newInvoker(t, agent)

		_, err := inv.Invoke(ctx, prompts.StageClassify, nil, schema.Classification)
		if !errors.Is(err, prompts.ErrMissingVariable) {
			t.Fatalf("error = %v, want ErrMissingVariable", err)
		}
		if agent.prompt != "" {
			t.Error("model should not be called when rendering fails")
		}
	})

	t.Run("provider fault surfaces as model invocation error", func(t *testing.T) {
		agent := &fakeAgent{err: errors.New("connection refused")}
		inv := newInvoker(t, agent)

		_, err := inv.Invoke(ctx, prompts.StageClassify, classifyVars(), schema.Classification)
		if !errors.Is(err, invoker.ErrModelInvocation) {
			t.Errorf("error = %v, want ErrModelInvocation", err)
		}
	})

	t.Run("unparseable response surfaces as model invocation error", func(t *testing.T) {
		agent := &fakeAgent{content: "I'm sorry, I can't produce JSON today."}
		inv := newInvoker(t, agent)

		_, err := inv.Invoke(ctx, prompts.StageClassify, classifyVars(), schema.Classification)
		if !errors.Is(err, invoker.ErrModelInvocation) {
			t.Errorf("error = %v, want ErrModelInvocation", err)
		}
	})

	t.Run("shape mismatch surfaces as validation error", func(t *testing.T) {
		agent := &fakeAgent{content: `{"format":"Email"}`}
		inv := newInvoker(t, agent)

		_, err := inv.Invoke(ctx, prompts.StageClassify, classifyVars(), schema.Classification)

		var ve *schema.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("error = %v, want *schema.ValidationError", err)
		}
		if errors.Is(err, invoker.ErrModelInvocation) {
			t.Error("validation error should not wrap ErrModelInvocation")
		}
	})
}
