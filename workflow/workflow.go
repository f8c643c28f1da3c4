package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// run holds the per-run state: a fresh identifier and an audit log owned
// exclusively by this run. Concurrent runs never share a log.
type run struct {
	rt        *Runtime
	id        uuid.UUID
	log       *AuditLog
	pageCount *int
}

// Execute runs the triage pipeline for a single submission. Pre-flight
// validation rejects blank or unreadable submissions before any stage runs,
// leaving the audit log empty. The state graph (classify → extract → route)
// always runs to its exit; stage failures are recorded in the audit log and
// halt downstream stages through the state bag rather than aborting the
// graph, so partial results survive.
func Execute(ctx context.Context, rt *Runtime, sub Submission) (*Result, error) {
	pageCount, err := sub.Validate()
	if err != nil {
		return nil, err
	}

	r := &run{
		rt:        rt,
		id:        uuid.New(),
		log:       &AuditLog{},
		pageCount: pageCount,
	}

	graph, err := buildGraph(r)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initial := state.New(nil)
	initial = initial.Set(KeySubmission, sub)

	final, err := graph.Execute(ctx, initial)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return r.result(final), nil
}

func buildGraph(r *run) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("triage")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("classify", ClassifyNode(r)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("extract", ExtractNode(r)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("route", RouteNode(r)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("classify", "extract", nil); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("extract", "route", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("classify"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("route"); err != nil {
		return nil, err
	}

	return graph, nil
}

// result assembles the run's terminal artifact from the final state.
func (r *run) result(s state.State) *Result {
	res := &Result{
		RunID:       r.id,
		State:       RunDone,
		PageCount:   r.pageCount,
		Log:         r.log.Events(),
		CompletedAt: time.Now(),
	}

	if cls, err := extractClassification(s); err == nil {
		res.Classification = &cls
	}
	if ext, err := extractExtraction(s); err == nil {
		res.Extraction = &ext
	}
	if routing, ok := extractRouting(s); ok {
		res.Routing = &routing
	}

	if stage, ok := failedStage(s); ok {
		res.FailedStage = stage
		// a router failure is terminal only for that stage
		if stage != StageRoute {
			res.State = RunError
		}
	} else if halted(s) && res.Routing == nil {
		// classification resolved to a format with no extraction variant
		res.State = RunError
	}

	return res
}

func halted(s state.State) bool {
	val, ok := s.Get(KeyHalted)
	if !ok {
		return false
	}

	b, ok := val.(bool)
	return ok && b
}

func failedStage(s state.State) (Stage, bool) {
	val, ok := s.Get(KeyFailedStage)
	if !ok {
		return "", false
	}

	stage, ok := val.(Stage)
	return stage, ok
}

func extractRouting(s state.State) (Routing, bool) {
	val, ok := s.Get(KeyRouting)
	if !ok {
		return Routing{}, false
	}

	routing, ok := val.(Routing)
	return routing, ok
}
