package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "step:" vs "steps:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Organization == "" {
		return fmt.Errorf("organization is required")
	}
	if s.Revision <= 0 {
		return fmt.Errorf("revision must be positive")
	}
	if s.Agreement != "" && s.Agreement != "confirmed" && s.Agreement != "none" {
		return fmt.Errorf("agreement must be \"confirmed\" or \"none\", got %q", s.Agreement)
	}
	if s.Target.PublicKey == "" || s.Target.Address == "" {
		return fmt.Errorf("target identity requires public_key and address")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for name, actor := range s.Actors {
		if name == "target" {
			return fmt.Errorf("actor name \"target\" is reserved")
		}
		if actor.PublicKey == "" || actor.Address == "" {
			return fmt.Errorf("actor %q requires public_key and address", name)
		}
	}

	for i, step := range s.Steps {
		if step.Actor == "" {
			return fmt.Errorf("steps[%d]: actor is required", i)
		}
		if step.Actor != "target" {
			if _, ok := s.Actors[step.Actor]; !ok {
				return fmt.Errorf("steps[%d]: unknown actor %q", i, step.Actor)
			}
		}
		if step.Invoke == "" {
			return fmt.Errorf("steps[%d]: invoke is required", i)
		}
		if step.Expect != nil {
			switch step.Expect.Outcome {
			case OutcomeWrapped, OutcomeFailed:
			case "":
				return fmt.Errorf("steps[%d].expect: outcome is required", i)
			default:
				return fmt.Errorf("steps[%d].expect: unknown outcome %q", i, step.Expect.Outcome)
			}
			if step.Expect.Outcome == OutcomeWrapped && step.Expect.ErrorCode != "" {
				return fmt.Errorf("steps[%d].expect: error_code is only valid for failed outcomes", i)
			}
		}
	}

	return nil
}
