package harness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAssertGolden_Transcript pins the golden rendering: one entry per
// command, newline-terminated, listings spanning multiple lines in place.
func TestAssertGolden_Transcript(t *testing.T) {
	scenario := &Scenario{
		Name:        "transcript-rendering",
		Description: "inline scenario behind the rendering golden",
		Script: []string{
			`create event "Standup" from 2025-06-02T09:00 to 2025-06-02T09:30`,
			"print events on 2025-06-02",
			"exit",
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	require.True(t, result.Pass)

	AssertGolden(t, scenario.Name, result)
}

func TestTranscriptBytes_EmptyResult(t *testing.T) {
	require.Empty(t, transcriptBytes(NewResult()))
}
