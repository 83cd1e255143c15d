package demo

import (
	"fmt"
	"strings"
)

// Scenario controls how a demo analysis ends.
type Scenario string

const (
	ScenarioSuccess   Scenario = "success"
	ScenarioFail      Scenario = "fail"
	ScenarioMalformed Scenario = "malformed"
)

func ParseScenario(value string) (Scenario, error) {
	switch Scenario(strings.ToLower(strings.TrimSpace(value))) {
	case ScenarioSuccess, ScenarioFail, ScenarioMalformed:
		return Scenario(strings.ToLower(strings.TrimSpace(value))), nil
	default:
		return "", fmt.Errorf("invalid demo scenario %q (valid: success, fail, malformed)", value)
	}
}

// FailMessage is the server error reported by ScenarioFail.
const FailMessage = "Transcription service unavailable"
