package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atulty/calendar-app-sub000/internal/config"
	"github.com/atulty/calendar-app-sub000/internal/engine"
)

// HeadlessOptions holds flags for the headless command.
type HeadlessOptions struct {
	*RootOptions

	// IDs allows overriding the event ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDs engine.IDGenerator
}

// NewHeadlessCommand creates the headless command.
func NewHeadlessCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HeadlessOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "headless <script>",
		Short: "Execute a calendar command script",
		Long: `Execute a script of calendar commands and print the transcript.

Blank lines and lines starting with # are skipped. Execution stops at the
first failed command with exit code 1. A script must finish with an exit
command; one that runs off the end is rejected.

Example:
  calcli headless ./schedule.txt
  calcli --verbose headless ./schedule.txt`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeadless(opts, args[0], cmd)
		},
	}

	return cmd
}

func runHeadless(opts *HeadlessOptions, path string, cmd *cobra.Command) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitUsageError, "loading configuration", err)
	}
	exec, err := newSession(cfg, opts.IDs)
	if err != nil {
		return WrapExitError(ExitUsageError, "starting session", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitUsageError, "reading script", err)
	}

	out := cmd.OutOrStdout()
	exited := false
	for i, line := range strings.Split(string(raw), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		result, done, err := exec.ExecuteLine(trimmed)
		if err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("%s line %d", path, i+1), err)
		}
		if result != "" {
			fmt.Fprintln(out, result)
		}
		if done {
			exited = true
			break
		}
	}
	if !exited {
		return WrapExitError(ExitFailure, "running script", &engine.Error{
			Kind:    engine.KindValidation,
			Op:      "headless",
			Message: fmt.Sprintf("script %s must finish with an exit command", path),
		})
	}
	return nil
}
