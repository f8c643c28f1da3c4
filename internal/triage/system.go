// Package triage implements the triage domain: submission intake, pipeline
// execution, and the HTTP endpoints that expose single and batch runs.
package triage

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/triage/workflow"
)

// System defines the public contract for triage domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	Run(ctx context.Context, sub workflow.Submission) (*workflow.Result, error)
	RunBatch(ctx context.Context, subs []workflow.Submission) []BatchItem
}

// BatchItem pairs a batch submission with its run outcome. Error carries
// pre-flight rejections; Result carries everything that reached the
// pipeline.
type BatchItem struct {
	Index  int              `json:"index"`
	Result *workflow.Result `json:"result,omitempty"`
	Error  string           `json:"error,omitempty"`
}

type system struct {
	rt          *workflow.Runtime
	logger      *slog.Logger
	concurrency int
}

// New creates the triage System over a workflow runtime. Concurrency bounds
// the number of batch runs in flight at once.
func New(rt *workflow.Runtime, logger *slog.Logger, concurrency int) System {
	if concurrency < 1 {
		concurrency = 1
	}
	return &system{
		rt:          rt,
		logger:      logger.With("system", "triage"),
		concurrency: concurrency,
	}
}

func (s *system) Handler(maxUploadSize int64) *Handler {
	return NewHandler(s, s.logger, maxUploadSize)
}

// Run executes the pipeline for a single submission.
func (s *system) Run(ctx context.Context, sub workflow.Submission) (*workflow.Result, error) {
	return workflow.Execute(ctx, s.rt, sub)
}

// RunBatch executes the pipeline for each submission with bounded
// concurrency. Runs are isolated: each gets its own audit log, and one
// submission's rejection never aborts the others. Results preserve input
// order.
func (s *system) RunBatch(ctx context.Context, subs []workflow.Submission) []BatchItem {
	items := make([]BatchItem, len(subs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, sub := range subs {
		g.Go(func() error {
			result, err := workflow.Execute(gctx, s.rt, sub)

			item := BatchItem{Index: i, Result: result}
			if err != nil {
				item.Error = err.Error()
			}
			items[i] = item
			return nil
		})
	}

	// errors are captured per item; Wait only synchronizes
	_ = g.Wait()

	s.logger.InfoContext(
		ctx, "batch complete",
		"submissions", len(subs),
	)

	return items
}
