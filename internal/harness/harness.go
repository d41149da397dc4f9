// Package harness runs scripted calendar sessions for conformance testing.
//
// A scenario is a YAML file holding a list of command lines. The harness
// executes them against a fresh registry with a sequential ID generator,
// collects the transcript (failed commands contribute "error: ..." lines),
// and checks the script's errors against the scenario's expectations. Tests
// then compare transcripts to golden files, so the command language's
// observable behavior is pinned line by line.
package harness

import (
	"fmt"
	"strings"

	"github.com/atulty/calendar-app-sub000/internal/command"
	"github.com/atulty/calendar-app-sub000/internal/engine"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True when every expected error matched and nothing failed unexpectedly.
	Pass bool

	// Transcript contains each executed command's output in order. A failed
	// command contributes its error text; listings span multiple lines.
	Transcript []string

	// Failures contains expectation failure messages. Empty if Pass is true.
	Failures []string
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:       true,
		Transcript: []string{},
		Failures:   []string{},
	}
}

// AddFailure records an expectation failure and marks the result as failed.
func (r *Result) AddFailure(msg string) {
	r.Failures = append(r.Failures, msg)
	r.Pass = false
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh registry with a sequential ID
// generator, bootstrapped with the scenario's calendar (default "default"
// in UTC). Command failures do not stop the script; they are recorded in
// the transcript the way an interactive session would print them.
func Run(scenario *Scenario) (*Result, error) {
	calendar := scenario.Calendar
	if calendar == "" {
		calendar = "default"
	}
	timezone := scenario.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	reg := engine.NewRegistry(engine.WithIDGenerator(engine.NewSequenceGenerator("ev")))
	if err := reg.CreateCalendar(calendar, timezone); err != nil {
		return nil, fmt.Errorf("bootstrapping calendar %q: %w", calendar, err)
	}
	if err := reg.UseCalendar(calendar); err != nil {
		return nil, err
	}
	exec := command.NewExecutor(reg)

	result := NewResult()
	var failed []error
	for _, line := range scenario.Script {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		out, done, err := exec.ExecuteLine(trimmed)
		if err != nil {
			failed = append(failed, err)
			result.Transcript = append(result.Transcript, "error: "+err.Error())
			continue
		}
		if out != "" {
			result.Transcript = append(result.Transcript, out)
		}
		if done {
			break
		}
	}

	evaluateErrors(scenario, failed, result)
	return result, nil
}

// evaluateErrors matches the errors a script produced against the
// scenario's expectations. An expectation no error matched fails the
// scenario, as does an error no expectation covers.
func evaluateErrors(scenario *Scenario, failed []error, result *Result) {
	covered := make([]bool, len(failed))
	for _, want := range scenario.ExpectErrors {
		matched := false
		for i, err := range failed {
			if strings.Contains(err.Error(), want) {
				covered[i] = true
				matched = true
			}
		}
		if !matched {
			result.AddFailure(fmt.Sprintf("expected an error containing %q, none occurred", want))
		}
	}
	for i, err := range failed {
		if !covered[i] {
			result.AddFailure(fmt.Sprintf("unexpected error: %v", err))
		}
	}
}
