package workflow

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// State keys for values carried through the pipeline state bag.
const (
	KeySubmission     = "submission"
	KeyClassification = "classification"
	KeyExtraction     = "extraction"
	KeyRouting        = "routing"
	KeyHalted         = "halted"
	KeyFailedStage    = "failed_stage"
)

// IntentOther is the generic fallback when the classifier's intent is
// outside the recognized set.
const IntentOther = "other"

// The recognized business intent categories.
var intents = []string{
	"RFQ",
	"Complaint",
	"Invoice",
	"Regulation",
	"Fraud Risk",
}

// Classification is the classifier stage's output: the detected document
// format and business intent. Immutable once produced.
type Classification struct {
	Format string `json:"format"`
	Intent string `json:"intent"`
}

// NormalizeIntent maps an unrecognized intent to the generic fallback.
func NormalizeIntent(intent string) string {
	if slices.Contains(intents, intent) {
		return intent
	}
	return IntentOther
}

// WebhookExtraction is the deterministic JSON variant's output.
type WebhookExtraction struct {
	IsValid   bool     `json:"is_valid"`
	Anomalies []string `json:"anomalies"`
}

// Extraction is the tagged union over the format-specific extraction
// variants. Exactly one variant is produced per run: Fields for the Email
// and PDF variants, Webhook for the JSON variant.
type Extraction struct {
	Format  InputType          `json:"format"`
	Fields  map[string]any     `json:"fields,omitempty"`
	Webhook *WebhookExtraction `json:"webhook,omitempty"`
}

// payload returns the extraction data handed to the router.
func (e Extraction) payload() any {
	if e.Webhook != nil {
		return e.Webhook
	}
	return e.Fields
}

// Routing is the terminal artifact of a run: the action taken and a
// human-readable description of the simulated downstream call.
type Routing struct {
	ActionTaken string `json:"action_taken"`
	Details     string `json:"details"`
}

// RunState is the terminal state of a pipeline run.
type RunState string

// Terminal run states.
const (
	RunDone  RunState = "done"
	RunError RunState = "error"
)

// Result is the complete output of one pipeline run.
type Result struct {
	RunID          uuid.UUID       `json:"run_id"`
	State          RunState        `json:"state"`
	FailedStage    Stage           `json:"failed_stage,omitempty"`
	Classification *Classification `json:"classification,omitempty"`
	Extraction     *Extraction     `json:"extraction,omitempty"`
	Routing        *Routing        `json:"routing,omitempty"`
	PageCount      *int            `json:"page_count,omitempty"`
	Log            []Event         `json:"log"`
	CompletedAt    time.Time       `json:"completed_at"`
}
