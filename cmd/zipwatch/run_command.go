package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"zipwatch/internal/daemonrun"
	"zipwatch/internal/logging"
)

type watchFlags struct {
	checkNow     bool
	pollInterval int
	diagnostic   bool
	logLevel     string
}

func (f *watchFlags) register(cmd *cobra.Command, withCheckNow bool) {
	if withCheckNow {
		cmd.Flags().BoolVar(&f.checkNow, "check-now", false, "Process archives already present, then exit")
	}
	cmd.Flags().IntVar(&f.pollInterval, "poll-interval", 0, "Poll sweep interval in seconds (overrides config)")
	cmd.Flags().BoolVar(&f.diagnostic, "diagnostic", false, "Also write a debug JSON log under <log_dir>/debug")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var flags watchFlags
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Process archives already in the watch directory, then exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.checkNow = true
			return runWatcher(cmd, ctx, flags)
		},
	}
	flags.register(cmd, false)
	return cmd
}

// runWatcher runs the daemon in the foreground. Fatal errors and panics are
// also appended to the crash file so they survive a missing console.
func runWatcher(cmd *cobra.Command, ctx *commandContext, flags watchFlags) (err error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("poll-interval") {
		if err := cfg.ApplyPollIntervalOverride(flags.pollInterval); err != nil {
			return err
		}
	}

	defer func() {
		if r := recover(); r != nil {
			logging.RecordCrash(cfg.ErrorFilePath(), r, debug.Stack())
			panic(r)
		}
	}()

	err = daemonrun.Run(cmd.Context(), cfg, daemonrun.Options{
		LogLevel:   flags.logLevel,
		CheckNow:   flags.checkNow,
		Diagnostic: flags.diagnostic,
	})
	if err != nil {
		logging.RecordCrash(cfg.ErrorFilePath(), err, nil)
		return fmt.Errorf("zipwatch: %w", err)
	}
	return nil
}
