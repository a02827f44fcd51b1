package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"zipwatch/internal/arrival"
)

func newPendingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List archives waiting in the watch directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			infos, err := arrival.List(nil, cfg.Paths.WatchDir, cfg.Watch.ArchiveExtension)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(infos) == 0 {
				fmt.Fprintf(out, "No archives waiting in %s\n", cfg.Paths.WatchDir)
				return nil
			}

			now := time.Now()
			var total int64
			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				total += info.Size()
				rows = append(rows, []string{
					info.Name(),
					humanize.Bytes(uint64(info.Size())),
					humanize.RelTime(info.ModTime(), now, "ago", "from now"),
				})
			}
			footer := []string{
				fmt.Sprintf("%d archive(s)", len(infos)),
				humanize.Bytes(uint64(total)),
				"",
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Archive", "Size", "Modified"},
				rows,
				tableOptions{
					aligns:   []columnAlignment{alignLeft, alignRight, alignLeft},
					footer:   footer,
					colorize: shouldColorize(out),
				},
			))
			return nil
		},
	}
}
