package workflow

import (
	"time"

	"github.com/google/uuid"
)

// Stage identifies a pipeline stage in the audit log.
type Stage string

// Pipeline stages.
const (
	StageClassify Stage = "classify"
	StageExtract  Stage = "extract"
	StageRoute    Stage = "route"
)

// EventKind distinguishes audit log event types.
type EventKind string

// Audit event kinds. Every stage attempt appends a processing event on
// entry and a completed or failed event on exit.
const (
	EventProcessing EventKind = "processing"
	EventCompleted  EventKind = "completed"
	EventFailed     EventKind = "failed"
)

// Event is a single append-only audit log entry. Events are never mutated
// after append.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Stage     Stage     `json:"stage"`
	Kind      EventKind `json:"kind"`
	Input     any       `json:"input,omitempty"`
	Output    any       `json:"output,omitempty"`
	Error     string    `json:"error,omitempty"`
	Action    string    `json:"action,omitempty"`
}

// AuditLog is the append-only event sequence for one pipeline run. It is
// owned exclusively by that run; concurrent runs each get their own log.
type AuditLog struct {
	events []Event
}

// Begin appends a processing event marking entry into a stage.
func (l *AuditLog) Begin(stage Stage, input any) {
	l.append(Event{
		Stage: stage,
		Kind:  EventProcessing,
		Input: input,
	})
}

// Complete appends a completed event with the stage's output and an
// optional action label.
func (l *AuditLog) Complete(stage Stage, output any, action string) {
	l.append(Event{
		Stage:  stage,
		Kind:   EventCompleted,
		Output: output,
		Action: action,
	})
}

// Fail appends a failed event carrying the raw error message.
func (l *AuditLog) Fail(stage Stage, err error) {
	l.append(Event{
		Stage: stage,
		Kind:  EventFailed,
		Error: err.Error(),
	})
}

// Events returns a copy of the event sequence in append order.
func (l *AuditLog) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Stages returns the distinct stages present in the log, in first-seen order.
func (l *AuditLog) Stages() []Stage {
	var out []Stage
	seen := make(map[Stage]bool)
	for _, e := range l.events {
		if !seen[e.Stage] {
			seen[e.Stage] = true
			out = append(out, e.Stage)
		}
	}
	return out
}

func (l *AuditLog) append(e Event) {
	e.ID = uuid.New()
	e.Timestamp = time.Now()
	l.events = append(l.events, e)
}
