package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"organizer/internal/history"
	"organizer/internal/logging"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past runs or the moves of one run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Organizer.History {
				fmt.Fprintln(cmd.OutOrStdout(), "Move history is disabled (organizer.history = false)")
				return nil
			}
			store, err := history.Open(cfg.Paths.HistoryDB)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			if runID != "" {
				return printRun(cmd, store, runID)
			}
			return printRuns(cmd, store, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")
	cmd.Flags().StringVar(&runID, "run", "", "Show the moves of one run (id or unique prefix)")
	return cmd
}

func printRuns(cmd *cobra.Command, store *history.Store, limit int) error {
	runs, err := store.Runs(cmd.Context(), limit)
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
			run.StartedAt.Format(logging.TimestampLayout),
			run.Dir,
			strconv.Itoa(run.Moved),
			strconv.Itoa(run.Failed),
			runDuration(run),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Run", "Started", "Folder", "Moved", "Failed", "Duration"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
	))
	return nil
}

func printRun(cmd *cobra.Command, store *history.Store, id string) error {
	run, err := store.Run(cmd.Context(), id)
	if err != nil {
		return err
	}
	moves, err := store.Moves(cmd.Context(), run.ID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	writeRunSummary(out, run)
	if len(moves) == 0 {
		fmt.Fprintln(out, "No moves recorded")
		return nil
	}

	var total uint64
	rows := make([][]string, 0, len(moves))
	for _, move := range moves {
		size := uint64(max(move.Size, 0))
		total += size
		rows = append(rows, []string{
			move.MovedAt.Format(logging.TimestampLayout),
			move.Name,
			move.Category,
			humanize.Bytes(size),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Time", "File", "Category", "Size"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
	))
	fmt.Fprintf(out, "%d moves, %s total\n", len(moves), humanize.Bytes(total))
	return nil
}

func writeRunSummary(out io.Writer, run history.Run) {
	fmt.Fprintf(out, "Run:      %s\n", run.ID)
	fmt.Fprintf(out, "Folder:   %s\n", run.Dir)
	fmt.Fprintf(out, "Started:  %s (%s)\n", run.StartedAt.Format(logging.TimestampLayout), humanize.Time(run.StartedAt))
	fmt.Fprintf(out, "Finished: %s\n", yesNo(run.Finished()))
	fmt.Fprintf(out, "Moved:    %d\n", run.Moved)
	fmt.Fprintf(out, "Failed:   %d\n", run.Failed)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func runDuration(run history.Run) string {
	if !run.Finished() {
		return "incomplete"
	}
	return run.Duration().Round(time.Millisecond).String()
}
