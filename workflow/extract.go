package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/triage/internal/prompts"
	"github.com/JaimeStill/triage/internal/schema"
)

// ExtractNode returns a state node that runs exactly one extraction
// variant, selected by the classified format. The Email and PDF variants
// invoke the model; the JSON variant resolves deterministically against the
// webhook payload schema and never calls the model. An unrecognized format
// produces no extraction and silently skips routing.
func ExtractNode(r *run) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		if halted(s) {
			return s, nil
		}

		sub, err := extractSubmission(s)
		if err != nil {
			return s, fmt.Errorf("extract: %w", err)
		}

		cls, err := extractClassification(s)
		if err != nil {
			return s, fmt.Errorf("extract: %w", err)
		}

		switch InputType(cls.Format) {
		case InputEmail:
			return r.extractModel(ctx, s, prompts.StageExtractEmail, schema.EmailExtraction, InputEmail, map[string]string{
				"email_content": sub.Content,
			})
		case InputJSON:
			return r.extractWebhook(ctx, s, sub)
		case InputPDF:
			return r.extractModel(ctx, s, prompts.StageExtractPDF, schema.PDFExtraction, InputPDF, map[string]string{
				"pdf_data_uri": sub.PDFDataURI,
			})
		default:
			r.rt.Logger.InfoContext(
				ctx, "no extraction variant for format",
				"run_id", r.id,
				"format", cls.Format,
			)
			return s.Set(KeyHalted, true), nil
		}
	})
}

// extractModel runs a model-backed extraction variant.
func (r *run) extractModel(
	ctx context.Context,
	s state.State,
	stage prompts.Stage,
	schemaName string,
	format InputType,
	vars map[string]string,
) (state.State, error) {
	r.log.Begin(StageExtract, map[string]any{"variant": string(format)})

	out, err := r.rt.Invoker.Invoke(ctx, stage, vars, schemaName)
	if err != nil {
		r.log.Fail(StageExtract, err)
		return s.Set(KeyHalted, true).Set(KeyFailedStage, StageExtract), nil
	}

	ext := Extraction{Format: format, Fields: out}
	r.log.Complete(StageExtract, ext, "")

	r.rt.Logger.InfoContext(
		ctx, "extract stage complete",
		"run_id", r.id,
		"variant", format,
		"fields", len(out),
	)

	return s.Set(KeyExtraction, ext), nil
}

// extractWebhook runs the deterministic JSON variant.
func (r *run) extractWebhook(ctx context.Context, s state.State, sub Submission) (state.State, error) {
	r.log.Begin(StageExtract, map[string]any{"variant": string(InputJSON)})

	webhook := ValidateWebhook(r.rt.Schemas, sub.Content)
	ext := Extraction{Format: InputJSON, Webhook: &webhook}
	r.log.Complete(StageExtract, ext, "")

	r.rt.Logger.InfoContext(
		ctx, "extract stage complete",
		"run_id", r.id,
		"variant", InputJSON,
		"is_valid", webhook.IsValid,
	)

	return s.Set(KeyExtraction, ext), nil
}

// ValidateWebhook checks webhook payload text against the business-payload
// contract. Unparseable data yields a single parse-error anomaly; a parsed
// payload that violates the schema yields one anomaly per violation.
func ValidateWebhook(schemas *schema.Validator, data string) WebhookExtraction {
	var payload any
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return WebhookExtraction{
			Anomalies: []string{fmt.Sprintf("parse error: %v", err)},
		}
	}

	if err := schemas.Validate(schema.WebhookPayload, payload); err != nil {
		var ve *schema.ValidationError
		if errors.As(err, &ve) {
			return WebhookExtraction{Anomalies: ve.Violations}
		}
		return WebhookExtraction{Anomalies: []string{err.Error()}}
	}

	return WebhookExtraction{IsValid: true, Anomalies: []string{}}
}

func extractClassification(s state.State) (Classification, error) {
	val, ok := s.Get(KeyClassification)
	if !ok {
		return Classification{}, fmt.Errorf("%w: missing %s", ErrMissingState, KeyClassification)
	}

	cls, ok := val.(Classification)
	if !ok {
		return Classification{}, fmt.Errorf("%w: %s is not Classification", ErrMissingState, KeyClassification)
	}

	return cls, nil
}
