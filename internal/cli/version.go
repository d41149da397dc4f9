package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is stamped by release builds via
// -ldflags "-X github.com/atulty/calendar-app-sub000/internal/cli.version=v1.2.3".
var version = "dev"

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the calcli version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "calcli %s\n", version)
		},
	}
}
