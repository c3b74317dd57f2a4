package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/aki/procmux/internal/cli/ui"
	"github.com/aki/procmux/internal/config"
	"github.com/aki/procmux/internal/supervisor"
)

// shutdownTimeout bounds how long up waits for processes to stop after a
// termination signal before giving up and exiting.
const shutdownTimeout = 30 * time.Second

var upFile string

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Start every process defined in the configuration file",
	Long: `Up loads the configuration file, starts every process it defines, and
supervises them until they exit or the supervisor receives SIGINT/SIGTERM.`,
	RunE: runUp,
}

func init() {
	upCmd.Flags().StringVarP(&upFile, "file", "f", config.DefaultFileName, "configuration file")
}

func runUp(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(upFile)
	if err != nil {
		return err
	}

	// One supervisor per project directory
	lock := flock.New(filepath.Join(filepath.Dir(upFile), ".procmux.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire instance lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another procmux instance is already running for %s", upFile)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	sup := supervisor.New(supervisor.WithLogger(newLogger()))
	sup.OnStopping(func() {
		ui.Info("shutting down")
	})

	ctx := cmd.Context()

	var wg sync.WaitGroup
	for _, proc := range cfg.Processes {
		opts := proc.Options()
		name := proc.Name

		wg.Add(1)
		opts.OnExit = func(err error) {
			defer wg.Done()
			if err != nil {
				ui.Error("%s exited: %v", name, err)
			} else {
				ui.Info("%s exited", name)
			}
		}

		if _, err := sup.Start(ctx, opts); err != nil {
			ui.Error("failed to start %s: %v", name, err)
			wg.Done()
		}
	}

	printEntries(sup.Entries())

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	select {
	case <-done:
	case <-sigs:
		stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		sup.Shutdown(stopCtx)
		<-done
	}

	return nil
}

func printEntries(entries []*supervisor.Entry) {
	if len(entries) == 0 {
		return
	}

	tbl := ui.NewTable("NAME", "PID", "STATE", "UPTIME", "SCRIPT")
	for _, e := range entries {
		tbl.AddRow(e.Name(), e.PID(), string(e.State()),
			ui.FormatDuration(time.Since(e.StartTime())), e.Script())
	}
	tbl.Print()
}
