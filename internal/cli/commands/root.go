// Package commands implements the procmux command-line interface.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/procmux/internal/cli/ui"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "procmux",
	Short: "Process multiplexer - supervise interpreter scripts",
	Long: `Procmux launches named scripts, captures their output line by line to a
log file or its own standard streams, and manages their lifecycle until they
exit or are stopped.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		ui.Error("%v", err)
	}
	return err
}
