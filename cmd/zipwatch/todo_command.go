package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"zipwatch/internal/todo"
)

func newTodoCommand(ctx *commandContext) *cobra.Command {
	var openOnly bool

	cmd := &cobra.Command{
		Use:   "todo",
		Short: "List entries in the task document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			doc := todo.New(cfg.Paths.TodoFile)
			exists, err := doc.Exists()
			if err != nil {
				return err
			}
			if !exists {
				fmt.Fprintf(out, "Task document not found at %s\n", doc.Path())
				return nil
			}
			summary, err := doc.Parse()
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(summary.Entries))
			for _, entry := range summary.Entries {
				if openOnly && !entry.Open() {
					continue
				}
				done := 0
				for _, task := range entry.Tasks {
					if task.Done {
						done++
					}
				}
				rows = append(rows, []string{
					entry.Title,
					entry.Link,
					fmt.Sprintf("%d/%d", done, len(entry.Tasks)),
					yesNo(entry.Open()),
				})
			}

			if summary.Title != "" {
				fmt.Fprintln(out, summary.Title)
			}
			if len(rows) == 0 {
				fmt.Fprintln(out, "No entries")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Entry", "Folder", "Done", "Open"},
				rows,
				tableOptions{
					aligns:   []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
					footer:   []string{strconv.Itoa(len(rows)) + " entries"},
					colorize: shouldColorize(out),
				},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&openOnly, "open", false, "Only show entries with unchecked tasks")
	return cmd
}
