package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for doccheck
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doccheck",
		Short: "Lint shell scripts embedded in documentation",
		Long: `doccheck walks the documentation tree under the current directory,
extracts every [source,bash] and [source,sh] listing block, and runs each
one through shellcheck inside a container.

Scripts are checked one at a time. Every failure is reported with its file
and line, and checking continues with the next block.

The shellcheck image defaults to koalaman/shellcheck:stable and can be
changed with the SHELLCHECK_CONTAINER environment variable.

Exit code: 0 if every script passed (or none were found), 1 otherwise`,
		Version: Version,
		Args:    cobra.NoArgs,
		RunE:    runCheck,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints errors so a lint failure is not reported twice
		SilenceErrors: true,
	}

	cmd.Flags().BoolP("verbose", "v", false, "log all detected shell scripts")
	cmd.Flags().String("config", "", "Path to config file (default: "+defaultConfigHint+")")
	cmd.Flags().String("image", "", "shellcheck container image (overrides $SHELLCHECK_CONTAINER)")
	cmd.Flags().String("launcher", "", "Container launcher binary (default: podman)")
	cmd.Flags().String("report", "", "Write a YAML run report to this path")
	cmd.Flags().String("color", "", "Highlight failures: always, auto, never (default: always)")
	cmd.Flags().String("log-level", "", "Diagnostic log level on stderr: trace, debug, info, warn, error")

	return cmd
}
