package harness

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted calendar session.
// Scenarios run a list of command lines against a fresh registry and
// compare the resulting transcript against a golden file.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario exercises.
	Description string `yaml:"description"`

	// Calendar names the calendar bootstrapped before the script runs.
	// Defaults to "default".
	Calendar string `yaml:"calendar,omitempty"`

	// Timezone is the bootstrap calendar's timezone. Defaults to "UTC" so
	// transcripts stay machine-independent.
	Timezone string `yaml:"timezone,omitempty"`

	// Script contains the command lines to execute, in order. Blank lines
	// and lines starting with # are skipped.
	Script []string `yaml:"script"`

	// ExpectErrors lists substrings that must each match at least one
	// error produced by the script. Errors not covered by any entry fail
	// the scenario.
	ExpectErrors []string `yaml:"expect_errors,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expect_error:".
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

	if len(s.Script) == 0 {
		return fmt.Errorf("script list is required and must be non-empty")
	}

	if s.Timezone != "" {
		if _, err := time.LoadLocation(s.Timezone); err != nil {
			return fmt.Errorf("unknown timezone %q", s.Timezone)
		}
	}

	for i, want := range s.ExpectErrors {
		if want == "" {
			return fmt.Errorf("expect_errors[%d]: must not be empty", i)
		}
	}

	return nil
}
