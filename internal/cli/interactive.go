package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atulty/calendar-app-sub000/internal/config"
	"github.com/atulty/calendar-app-sub000/internal/engine"
)

// InteractiveOptions holds flags for the interactive command.
type InteractiveOptions struct {
	*RootOptions

	// IDs allows overriding the event ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDs engine.IDGenerator
}

// NewInteractiveCommand creates the interactive command.
func NewInteractiveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InteractiveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Run a calendar session on stdin",
		Long: `Run a read-eval-print session against a fresh calendar registry.

Commands are read line by line from stdin and their results printed to
stdout. A failed command reports an error and the session continues. The
session ends at the exit command or at end of input.

Example:
  calcli interactive
  calcli --config ./calcli.yaml interactive`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(opts, cmd)
		},
	}

	return cmd
}

func runInteractive(opts *InteractiveOptions, cmd *cobra.Command) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitUsageError, "loading configuration", err)
	}
	exec, err := newSession(cfg, opts.IDs)
	if err != nil {
		return WrapExitError(ExitUsageError, "starting session", err)
	}

	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, cfg.Prompt)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		result, done, err := exec.ExecuteLine(line)
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if result != "" {
			fmt.Fprintln(out, result)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}
