// Package invoker wraps a single hosted-model call: it renders a stage
// prompt, sends it through the agent boundary, parses the structured
// response, and validates it against the stage's named schema.
package invoker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/triage/internal/prompts"
	"github.com/JaimeStill/triage/internal/schema"
	"github.com/JaimeStill/triage/pkg/formatting"
)

// System defines the contract for invoking the hosted model for a stage.
type System interface {
	Invoke(
		ctx context.Context,
		stage prompts.Stage,
		vars map[string]string,
		schemaName string,
	) (map[string]any, error)
}

// Invoker renders prompts, calls the model, and validates responses.
// It performs no retries; failures propagate to the caller unmodified.
type Invoker struct {
	agent   Agent
	schemas *schema.Validator
	logger  *slog.Logger
}

// New creates an Invoker over the given agent boundary and schema validator.
func New(agent Agent, schemas *schema.Validator, logger *slog.Logger) *Invoker {
	return &Invoker{
		agent:   agent,
		schemas: schemas,
		logger:  logger.With("system", "invoker"),
	}
}

// Invoke renders the stage template with vars, sends the prompt to the
// model, parses the response as structured data, and validates it against
// the named schema. A missing template variable is a caller contract
// violation. Provider faults and unparseable responses surface as
// ErrModelInvocation; shape mismatches surface as *schema.ValidationError.
func (i *Invoker) Invoke(
	ctx context.Context,
	stage prompts.Stage,
	vars map[string]string,
	schemaName string,
) (map[string]any, error) {
	prompt, err := prompts.Render(stage, vars)
	if err != nil {
		return nil, fmt.Errorf("render %s prompt: %w", stage, err)
	}

	content, err := i.agent.Chat(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrModelInvocation, stage, err)
	}

	parsed, err := formatting.Parse[map[string]any](content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrModelInvocation, stage, err)
	}

	if err := i.schemas.Validate(schemaName, parsed); err != nil {
		return nil, err
	}

	i.logger.InfoContext(
		ctx, "model invocation complete",
		"stage", stage,
		"schema", schemaName,
	)

	return parsed, nil
}
