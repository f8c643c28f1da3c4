package api

import (
	"fmt"

	"github.com/JaimeStill/triage/internal/actions"
	"github.com/JaimeStill/triage/internal/invoker"
	"github.com/JaimeStill/triage/internal/schema"
	"github.com/JaimeStill/triage/internal/triage"
	"github.com/JaimeStill/triage/workflow"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Triage triage.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) (*Domain, error) {
	schemas, err := schema.New()
	if err != nil {
		return nil, fmt.Errorf("compile schemas: %w", err)
	}

	inv := invoker.New(
		invoker.NewAgent(runtime.Agent),
		schemas,
		runtime.Logger,
	)

	wf := &workflow.Runtime{
		Invoker: inv,
		Schemas: schemas,
		Actions: actions.NewDispatcher(runtime.Logger),
		Logger:  runtime.Logger,
	}

	return &Domain{
		Triage: triage.New(wf, runtime.Logger, runtime.BatchConcurrency),
	}, nil
}
