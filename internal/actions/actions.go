// Package actions maps routed follow-up actions to their simulated
// downstream targets. No real network call is made: dispatching an action
// synthesizes a description of the call that would have been sent.
package actions

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// The closed set of routable actions.
const (
	CreateTicket       = "create_ticket"
	EscalateIssue      = "escalate_issue"
	FlagComplianceRisk = "flag_compliance_risk"
)

// targets maps each routable action to its symbolic endpoint identifier.
var targets = map[string]string{
	CreateTicket:       "/crm/create_ticket",
	EscalateIssue:      "/crm/escalate",
	FlagComplianceRisk: "/risk_alert",
}

// Call records a simulated dispatch to a downstream target.
type Call struct {
	Action  string    `json:"action"`
	Target  string    `json:"target"`
	Details string    `json:"details"`
	SentAt  time.Time `json:"sent_at"`
}

// Target resolves an action to its endpoint identifier. The second return
// is false when the action is outside the routable set.
func Target(action string) (string, bool) {
	target, ok := targets[action]
	return target, ok
}

// Dispatcher performs simulated dispatches to downstream targets.
type Dispatcher struct {
	logger *slog.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		logger: logger.With("system", "actions"),
	}
}

// Dispatch simulates sending payload to the target mapped from action.
// The action must already be resolved via Target; unknown actions are the
// caller's responsibility to filter.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	action string,
	target string,
	payload any,
) Call {
	body, err := json.Marshal(payload)
	if err != nil {
		body = []byte("{}")
	}

	call := Call{
		Action:  action,
		Target:  target,
		Details: fmt.Sprintf("Simulated call to %s with payload: %s", target, body),
		SentAt:  time.Now(),
	}

	d.logger.InfoContext(
		ctx, "dispatched simulated action",
		"action", action,
		"target", target,
	)

	return call
}
