package harness

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and compares the transcript against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Expectation failures (unexpected errors, unmet expect_errors entries) are
// reported on t before the golden comparison, so a drifted transcript and a
// broken expectation surface together.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, failure := range result.Failures {
		t.Error(failure)
	}

	AssertGolden(t, scenario.Name, result)
	return nil
}

// AssertGolden compares a result's transcript against the golden file for
// scenarioName. Useful when a test has already run a scenario and wants the
// comparison without re-running it.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, transcriptBytes(result))
}

// transcriptBytes renders a transcript the way a headless session prints
// it: one newline-terminated entry per executed command.
func transcriptBytes(result *Result) []byte {
	if len(result.Transcript) == 0 {
		return []byte{}
	}
	return []byte(strings.Join(result.Transcript, "\n") + "\n")
}
