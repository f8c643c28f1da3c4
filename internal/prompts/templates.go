package prompts

import (
	"fmt"
	"regexp"
	"strings"
)

const classifyTemplate = `Declared format hint: {{format_hint}}

Document content:

{{content}}`

const extractEmailTemplate = `Email content:

{{email_content}}`

const extractJSONTemplate = `Webhook payload:

{{webhook_data}}`

const extractPDFTemplate = `PDF document (base64 data URI):

{{pdf_data_uri}}`

const routeTemplate = `Extracted document data:

{{agent_output}}

Classified intent: {{intent}}
Document format: {{format}}`

var templates = map[Stage]string{
	StageClassify:     classifyTemplate,
	StageExtractEmail: extractEmailTemplate,
	StageExtractJSON:  extractJSONTemplate,
	StageExtractPDF:   extractPDFTemplate,
	StageRoute:        routeTemplate,
}

var placeholder = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Template returns the variable-bearing template body for a pipeline stage.
// Returns ErrInvalidStage if the stage is not recognized.
func Template(stage Stage) (string, error) {
	text, ok := templates[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}

// Variables returns the placeholder names a stage's template declares.
func Variables(stage Stage) ([]string, error) {
	text, err := Template(stage)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, match := range placeholder.FindAllStringSubmatch(text, -1) {
		names = append(names, match[1])
	}
	return names, nil
}

// Render composes the full prompt for a stage: instructions, output
// specification, and the template body with every placeholder substituted
// from vars. A placeholder with no corresponding variable is a caller
// contract violation and fails with ErrMissingVariable.
func Render(stage Stage, vars map[string]string) (string, error) {
	instructions, err := Instructions(stage)
	if err != nil {
		return "", err
	}

	spec, err := Spec(stage)
	if err != nil {
		return "", err
	}

	body, err := substitute(stage, vars)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\n")
	sb.WriteString(spec)
	sb.WriteString("\n\n")
	sb.WriteString(body)

	return sb.String(), nil
}

func substitute(stage Stage, vars map[string]string) (string, error) {
	text, err := Template(stage)
	if err != nil {
		return "", err
	}

	var missing []string
	rendered := placeholder.ReplaceAllStringFunc(text, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		value, ok := vars[name]
		if !ok {
			missing = append(missing, name)
			return m
		}
		return value
	})

	if len(missing) > 0 {
		return "", fmt.Errorf(
			"%w: stage %s requires %s",
			ErrMissingVariable, stage, strings.Join(missing, ", "),
		)
	}

	return rendered, nil
}
