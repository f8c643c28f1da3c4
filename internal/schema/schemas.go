package schema

// Registered schema names, one per validated stage contract plus the
// webhook business payload checked by the JSON extraction variant.
const (
	Classification  = "classification"
	EmailExtraction = "email_extraction"
	PDFExtraction   = "pdf_extraction"
	Routing         = "routing"
	WebhookPayload  = "webhook_payload"
)

// classificationSchema constrains the classifier's structured output.
// Format and intent are open strings: the pipeline treats unrecognized
// values as a dispatch concern, not a schema violation.
func classificationSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"format": map[string]any{"type": "string", "minLength": 1},
			"intent": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"format", "intent"},
	}
}

// extractionSchema constrains the email and PDF extraction outputs.
// The field set is prompt-defined, so the only mechanical requirement is a
// well-formed object.
func extractionSchema() map[string]any {
	return map[string]any{
		"type": "object",
	}
}

// routingSchema constrains the router's structured output. The action is
// optional: an absent choice is resolved downstream, not rejected here.
func routingSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"action":    map[string]any{"type": "string"},
			"rationale": map[string]any{"type": "string"},
		},
	}
}

// webhookPayloadSchema is the business-payload contract validated by the
// deterministic JSON extraction variant.
func webhookPayloadSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"event_type": map[string]any{"type": "string"},
			"timestamp":  map[string]any{"type": "string"},
			"data":       map[string]any{"type": "object"},
		},
		"required": []string{"event_type", "timestamp", "data"},
	}
}

func definitions() map[string]map[string]any {
	return map[string]map[string]any{
		Classification:  classificationSchema(),
		EmailExtraction: extractionSchema(),
		PDFExtraction:   extractionSchema(),
		Routing:         routingSchema(),
		WebhookPayload:  webhookPayloadSchema(),
	}
}
