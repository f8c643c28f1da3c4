package prompts

import (
	"encoding/json"
	"slices"
)

// Stage identifies a pipeline stage prompt.
type Stage string

// Valid pipeline stage prompts. The JSON extraction variant resolves
// deterministically, but its prompt is still defined alongside the others
// so every variant carries a complete stage definition.
const (
	StageClassify     Stage = "classify"
	StageExtractEmail Stage = "extract_email"
	StageExtractJSON  Stage = "extract_json"
	StageExtractPDF   Stage = "extract_pdf"
	StageRoute        Stage = "route"
)

var stages = []Stage{
	StageClassify,
	StageExtractEmail,
	StageExtractJSON,
	StageExtractPDF,
	StageRoute,
}

// Stages returns the list of valid pipeline stage prompts.
func Stages() []Stage {
	return stages
}

// UnmarshalJSON validates that the decoded string is a known stage value.
func (s *Stage) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Stage(raw)
	if !slices.Contains(stages, v) {
		return ErrInvalidStage
	}
	*s = v
	return nil
}

// ParseStage validates a string as a known pipeline stage.
// Returns ErrInvalidStage if the value is not recognized.
func ParseStage(s string) (Stage, error) {
	v := Stage(s)
	if !slices.Contains(stages, v) {
		return "", ErrInvalidStage
	}
	return v, nil
}
