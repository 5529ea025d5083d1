package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m8org/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List recent runs or show the files handled by one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			if len(args) == 1 {
				return showRun(cmd, store, args[0])
			}
			return listRuns(cmd, store, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Maximum number of runs to list")
	return cmd
}

func listRuns(cmd *cobra.Command, store *history.Store, limit int) error {
	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortID(run.ID),
			humanize.Time(run.StartedAt),
			runMode(run),
			strconv.Itoa(run.Counts.Attempted),
			strconv.Itoa(run.Counts.Converted),
			strconv.Itoa(run.Counts.Skipped),
			strconv.Itoa(run.Counts.Failed),
			strconv.Itoa(run.Counts.Overlong),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Run", "Started", "Mode", "Files", "Converted", "Skipped", "Failed", "Overlong"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
	))
	return nil
}

func showRun(cmd *cobra.Command, store *history.Store, id string) error {
	run, err := store.GetRun(cmd.Context(), id)
	if err != nil {
		return err
	}
	entries, err := store.Entries(cmd.Context(), run.ID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s (%s)\n", run.ID, runMode(run))
	fmt.Fprintf(out, "Started: %s\n", run.StartedAt.Local().Format(time.DateTime))
	if run.Finished() {
		fmt.Fprintf(out, "Duration: %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	}
	fmt.Fprintf(out, "Source: %s\n", run.SourceDir)
	fmt.Fprintf(out, "Destination: %s\n", run.DestDir)
	if len(entries) == 0 {
		fmt.Fprintln(out, "No files recorded")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{entry.SourcePath, entry.ShortPath, entry.Status, yesNo(entry.Overlong), entry.Message})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Source", "Output", "Status", "Overlong", "Message"},
		rows,
		nil,
	))
	return nil
}

func runMode(run history.Run) string {
	switch {
	case !run.Finished():
		return "incomplete"
	case run.DryRun:
		return "dry run"
	default:
		return "convert"
	}
}
