package workflow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/triage/internal/actions"
	"github.com/JaimeStill/triage/internal/prompts"
	"github.com/JaimeStill/triage/internal/schema"
)

// Terminal routing outcomes outside the closed action set.
const (
	ActionNone    = "no_action_taken"
	ActionUnknown = "unknown"
)

const noRouteDetails = "No action was taken as no route matched."

// RouteNode returns a state node that decides and simulates the follow-up
// action. The model chooses from the closed action set; deterministic
// post-processing maps the choice to a target and dispatches a simulated
// call. A failed invocation is recorded against this stage only — the run
// still completes and earlier results stand.
func RouteNode(r *run) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		if halted(s) {
			return s, nil
		}

		cls, err := extractClassification(s)
		if err != nil {
			return s, fmt.Errorf("route: %w", err)
		}

		ext, err := extractExtraction(s)
		if err != nil {
			return s, fmt.Errorf("route: %w", err)
		}

		payload := ext.payload()

		r.log.Begin(StageRoute, map[string]any{
			"intent": cls.Intent,
			"format": cls.Format,
		})

		out, err := r.rt.Invoker.Invoke(ctx, prompts.StageRoute, map[string]string{
			"agent_output": marshalPayload(payload),
			"intent":       cls.Intent,
			"format":       cls.Format,
		}, schema.Routing)
		if err != nil {
			r.log.Fail(StageRoute, err)
			return s.Set(KeyFailedStage, StageRoute), nil
		}

		routing := r.resolve(ctx, out, payload)
		r.log.Complete(StageRoute, routing, routing.ActionTaken)

		r.rt.Logger.InfoContext(
			ctx, "route stage complete",
			"run_id", r.id,
			"action", routing.ActionTaken,
		)

		return s.Set(KeyRouting, routing), nil
	})
}

// resolve applies the deterministic post-processing: map the model's choice
// to a target and dispatch. An absent choice resolves to the unknown
// outcome; a choice outside the route table takes no action. Neither
// dispatches a simulated call.
func (r *run) resolve(ctx context.Context, out map[string]any, payload any) Routing {
	choice, ok := out["action"].(string)
	if !ok || choice == "" {
		return Routing{ActionTaken: ActionUnknown, Details: noRouteDetails}
	}

	target, ok := actions.Target(choice)
	if !ok {
		return Routing{ActionTaken: ActionNone, Details: noRouteDetails}
	}

	call := r.rt.Actions.Dispatch(ctx, choice, target, payload)

	return Routing{ActionTaken: choice, Details: call.Details}
}

func marshalPayload(payload any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return "{}"
	}
	return string(data)
}

func extractExtraction(s state.State) (Extraction, error) {
	val, ok := s.Get(KeyExtraction)
	if !ok {
		return Extraction{}, fmt.Errorf("%w: missing %s", ErrMissingState, KeyExtraction)
	}

	ext, ok := val.(Extraction)
	if !ok {
		return Extraction{}, fmt.Errorf("%w: %s is not Extraction", ErrMissingState, KeyExtraction)
	}

	return ext, nil
}
