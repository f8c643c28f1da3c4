package prompts

const classifySpec = `Respond with a JSON object matching this exact structure:

{
  "format": "<Email|JSON|PDF>",
  "intent": "<RFQ|Complaint|Invoice|Regulation|Fraud Risk|other>"
}

Field constraints:
- format: The detected document format. One of Email, JSON, or PDF.
- intent: The business intent of the document. One of RFQ, Complaint,
  Invoice, Regulation, or Fraud Risk; use "other" only when none fit.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Respond with exactly the two fields above, nothing else`

const extractEmailSpec = `Respond with a JSON object containing the structured
fields you extracted, for example:

{
  "sender": "<sender identity if present>",
  "sender_intent": "<what the sender wants>",
  "entities": ["<entity1>", "<entity2>"]
}

Field constraints:
- Include only fields you found evidence for in the email.
- entities: Concrete values referenced by the sender (order numbers,
  products, amounts, dates), exactly as written.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Never fabricate values for fields you could not find`

const extractJSONSpec = `Respond with a JSON object matching this exact structure:

{
  "is_valid": false,
  "anomalies": ["<anomaly1>"]
}

Field constraints:
- is_valid: Whether the payload conforms to the expected contract.
- anomalies: One message per contract violation found; empty when valid.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing`

const extractPDFSpec = `Respond with a JSON object containing the structured
fields you extracted, for example:

{
  "origin": "<issuing party if present>",
  "purpose": "<what the document is for>",
  "entities": ["<entity1>", "<entity2>"]
}

Field constraints:
- Include only fields you found evidence for in the document.
- entities: Concrete values referenced in the document (reference numbers,
  parties, amounts, dates), exactly as written.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Never fabricate values for fields you could not find`

const routeSpec = `Respond with a JSON object matching this exact structure:

{
  "action": "<create_ticket|escalate_issue|flag_compliance_risk>",
  "rationale": "<explanation>"
}

Field constraints:
- action: Exactly one of create_ticket, escalate_issue, or
  flag_compliance_risk.
- rationale: Brief explanation of why this action fits the document's
  intent and extracted data.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Choose exactly one action from the fixed set`

var specs = map[Stage]string{
	StageClassify:     classifySpec,
	StageExtractEmail: extractEmailSpec,
	StageExtractJSON:  extractJSONSpec,
	StageExtractPDF:   extractPDFSpec,
	StageRoute:        routeSpec,
}

// Spec returns the output specification for a pipeline stage.
// Specifications define the expected response structure and behavioral
// constraints. Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
