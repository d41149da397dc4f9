// Package cli wires the calendar command language into a cobra binary with
// interactive and headless session modes.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
}

// NewRootCommand creates the root command for the calcli binary.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "calcli",
		Short: "calcli - plain-text calendar sessions",
		Long: `calcli runs calendar sessions driven by a line-oriented command
language: create calendars and events, edit and copy them across
timezones, and exchange data as CSV spreadsheets or iCalendar files.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(opts.Verbose)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	cmd.AddCommand(NewInteractiveCommand(opts))
	cmd.AddCommand(NewHeadlessCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// configureLogging installs a text handler on stderr. Session transcripts go
// to stdout, so diagnostics never mix into them.
func configureLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
