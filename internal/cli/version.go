package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X .../internal/cli.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "promptvault %s\n", Version)
			fmt.Fprintf(out, "  Go:     %s\n", runtime.Version())
			fmt.Fprintf(out, "  Commit: %s\n", Commit)
			fmt.Fprintf(out, "  Date:   %s\n", BuildDate)
		},
	}
}
