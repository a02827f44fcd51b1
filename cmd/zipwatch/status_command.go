package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"zipwatch/internal/arrival"
	"zipwatch/internal/config"
	"zipwatch/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show watcher and preflight status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			lines := renderSectionHeader("Watcher", colorize)
			running, pid := watcherRunning(cfg)
			if running {
				detail := "another process holds the lock"
				if pid != "" {
					detail = "pid " + pid
				}
				lines = append(lines, renderStatusLine("Running", statusOK, detail, colorize))
			} else {
				lines = append(lines, renderStatusLine("Running", statusInfo, yesNo(false), colorize))
			}
			if infos, err := arrival.List(nil, cfg.Paths.WatchDir, cfg.Watch.ArchiveExtension); err == nil {
				kind := statusInfo
				if len(infos) > 0 {
					kind = statusWarn
				}
				lines = append(lines, renderStatusLine("Pending archives", kind, fmt.Sprintf("%d", len(infos)), colorize))
			}
			lines = append(lines, renderStatusLine("Poll interval", statusInfo, cfg.PollInterval().String(), colorize))
			notify := "disabled"
			if cfg.Notifications.NtfyTopic != "" {
				notify = cfg.Notifications.NtfyTopic
			}
			lines = append(lines, renderStatusLine("Notifications", statusInfo, notify, colorize))
			lines = append(lines, renderStatusLine("Log file", statusInfo, cfg.LogFilePath(), colorize))
			lines = append(lines, "")

			lines = append(lines, renderSectionHeader("Preflight", colorize)...)
			failed := 0
			for _, result := range preflight.RunAll(cfg) {
				kind := statusOK
				if !result.Passed {
					kind = statusError
					failed++
				}
				lines = append(lines, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}

			fmt.Fprintln(out, strings.Join(lines, "\n"))
			if failed > 0 {
				return fmt.Errorf("%d preflight check(s) failed", failed)
			}
			return nil
		},
	}
}

// watcherRunning probes the single-instance lock without holding it.
func watcherRunning(cfg *config.Config) (bool, string) {
	lockPath := cfg.LockFilePath()
	if _, err := os.Stat(lockPath); err != nil {
		return false, ""
	}
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return false, ""
	}
	if ok {
		_ = lock.Unlock()
		return false, ""
	}
	pid, err := os.ReadFile(cfg.PIDFilePath())
	if err != nil {
		return true, ""
	}
	return true, strings.TrimSpace(string(pid))
}
