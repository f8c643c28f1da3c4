package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/triage/internal/prompts"
	"github.com/JaimeStill/triage/internal/schema"
)

// ClassifyNode returns a state node that determines the document's format
// and business intent through a single model invocation. A failed
// invocation halts the run; no further stages execute.
func ClassifyNode(r *run) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		sub, err := extractSubmission(s)
		if err != nil {
			return s, fmt.Errorf("classify: %w", err)
		}

		r.log.Begin(StageClassify, map[string]any{
			"format_hint": string(sub.InputType),
		})

		out, err := r.rt.Invoker.Invoke(ctx, prompts.StageClassify, map[string]string{
			"content":     sub.documentContent(),
			"format_hint": string(sub.InputType),
		}, schema.Classification)
		if err != nil {
			r.log.Fail(StageClassify, err)
			return s.Set(KeyHalted, true).Set(KeyFailedStage, StageClassify), nil
		}

		cls := classificationFrom(out)
		r.log.Complete(StageClassify, cls, "")

		r.rt.Logger.InfoContext(
			ctx, "classify stage complete",
			"run_id", r.id,
			"format", cls.Format,
			"intent", cls.Intent,
		)

		return s.Set(KeyClassification, cls), nil
	})
}

func classificationFrom(out map[string]any) Classification {
	format, _ := out["format"].(string)
	intent, _ := out["intent"].(string)

	return Classification{
		Format: format,
		Intent: NormalizeIntent(intent),
	}
}

func extractSubmission(s state.State) (Submission, error) {
	val, ok := s.Get(KeySubmission)
	if !ok {
		return Submission{}, fmt.Errorf("%w: missing %s", ErrMissingState, KeySubmission)
	}

	sub, ok := val.(Submission)
	if !ok {
		return Submission{}, fmt.Errorf("%w: %s is not Submission", ErrMissingState, KeySubmission)
	}

	return sub, nil
}
