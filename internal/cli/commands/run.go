package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aki/procmux/internal/supervisor"
)

var (
	runName string
	runDir  string
	runLog  string
)

var runCmd = &cobra.Command{
	Use:   "run <script> [-- args...]",
	Short: "Run a single script under supervision",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&runName, "name", "", "process name (defaults to the script file name)")
	runCmd.Flags().StringVar(&runDir, "dir", "", "working directory")
	runCmd.Flags().StringVar(&runLog, "log", "", "append output to this file instead of stdout/stderr")
}

func runRun(cmd *cobra.Command, args []string) error {
	sup := supervisor.New(supervisor.WithLogger(newLogger()))
	ctx := cmd.Context()

	name := runName
	if name == "" {
		name = filepath.Base(args[0])
	}

	entry, err := sup.Start(ctx, supervisor.Options{
		Name:   name,
		Script: args[0],
		Dir:    runDir,
		Log:    runLog,
		Args:   args[1:],
	})
	if err != nil {
		return err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		<-sigs
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		sup.Shutdown(stopCtx)
	}()

	err = entry.Wait(ctx)

	// Mirror the child's exit code when it failed with one
	var exitErr *supervisor.ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		os.Exit(exitErr.Code)
	}

	return err
}
