package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"organizer/internal/audit"
	"organizer/internal/config"
	"organizer/internal/history"
	"organizer/internal/logging"
	"organizer/internal/organizer"
	"organizer/internal/picker"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "organize [DIR]",
		Short: "Sort a folder's files into category subfolders",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganize(cmd, ctx, args)
		},
	}
}

func runOrganize(cmd *cobra.Command, ctx *commandContext, args []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	logger, err := ctx.newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	loaded, err := ctx.loadRules()
	if err != nil {
		fmt.Fprintln(out, err)
		fmt.Fprintln(out, picker.Failure("Configuration error", "Could not load the category rules.", err.Error()))
		return &reportedError{err: err}
	}
	if loaded.Table.Empty() {
		err := fmt.Errorf("%w in %s", organizer.ErrNoCategories, loaded.Source)
		fmt.Fprintln(out, err)
		fmt.Fprintln(out, picker.Failure("Configuration error", "Add at least one category to the rules file."))
		return &reportedError{err: err}
	}

	runCtx := cmd.Context()
	if runCtx == nil {
		runCtx = context.Background()
	}

	dir, err := selectDirectory(runCtx, cmd, args)
	if err != nil {
		return err
	}
	if dir == "" {
		fmt.Fprintln(out, "No folder selected. Exiting.")
		return nil
	}

	auditLog, err := audit.Open(cfg.Paths.AuditLog)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer auditLog.Close()

	runID := uuid.NewString()
	runCtx = logging.WithRunID(runCtx, runID)
	started := time.Now()

	histCtx := context.WithoutCancel(runCtx)
	recorders := []organizer.Recorder{auditLog}
	store := openHistory(histCtx, cfg, logger, runID, dir, started)
	if store != nil {
		defer store.Close()
		recorders = append(recorders, store.Recorder(runID))
	}

	status := &runOutput{out: out}
	opts := []organizer.Option{
		organizer.WithRecorder(organizer.Recorders(recorders...)),
		organizer.WithMoveStart(status.moving),
	}
	if cfg.Organizer.Progress && isTerminal(out) {
		opts = append(opts, organizer.WithProgress(status.progress))
	}

	fmt.Fprintf(out, "Organizing folder: %s\n", dir)
	engine := organizer.New(logger, opts...)
	result, runErr := engine.Run(runCtx, organizer.Request{
		Dir:     dir,
		Table:   loaded.Table,
		Exclude: loaded.ScriptName,
	})
	status.finish()

	for _, failure := range result.Failures {
		fmt.Fprintln(out, describeFailure(failure))
	}

	if store != nil {
		if err := store.FinishRun(histCtx, runID, time.Now(), result.Moved, len(result.Failures)); err != nil {
			logging.WarnWithContext(logger, "failed to finish history run",
				"history_finish_failed",
				logging.String(logging.FieldRunID, runID),
				logging.Error(err),
			)
		}
	}

	if errors.Is(runErr, context.Canceled) {
		fmt.Fprintf(out, "Interrupted after %s.\n", english.Plural(result.Moved, "move", ""))
		return runErr
	}
	if runErr != nil {
		fmt.Fprintln(out, picker.Failure("Organization stopped", runErr.Error()))
		return &reportedError{err: runErr}
	}
	fmt.Fprintln(out, picker.Success("Organization complete", picker.CompletionLines(result.Moved, auditLog.Path())...))
	return nil
}

// selectDirectory resolves the folder to organize from the argument or,
// when attached to a terminal, the folder browser. "" means nothing was chosen.
func selectDirectory(ctx context.Context, cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		dir := strings.TrimSpace(args[0])
		if dir == "" {
			return "", nil
		}
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return "", fmt.Errorf("resolve folder: %w", err)
		}
		return expanded, nil
	}
	in := cmd.InOrStdin()
	if !isTerminal(in) || !isTerminal(cmd.OutOrStdout()) {
		return "", nil
	}
	return picker.Run(ctx, workingDir(), in, cmd.OutOrStdout())
}

func openHistory(ctx context.Context, cfg *config.Config, logger *slog.Logger, runID, dir string, started time.Time) *history.Store {
	if !cfg.Organizer.History {
		return nil
	}
	store, err := history.Open(cfg.Paths.HistoryDB)
	if err == nil {
		err = store.BeginRun(ctx, runID, dir, started)
		if err != nil {
			_ = store.Close()
		}
	}
	if err != nil {
		logging.WarnWithContext(logger, "move history unavailable; continuing without it",
			"history_unavailable",
			logging.String("path", cfg.Paths.HistoryDB),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "set organizer.history = false to silence this warning"),
		)
		return nil
	}
	return store
}

// runOutput writes per-file status lines and keeps the progress bar, when
// one is active, from being drawn over them.
type runOutput struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

func (r *runOutput) moving(name, category string) {
	if r.bar != nil {
		_ = r.bar.Clear()
	}
	fmt.Fprintf(r.out, "Moving %s to %s\n", name, category)
}

func (r *runOutput) progress(done, total int) {
	if r.bar == nil {
		r.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(r.out),
			progressbar.OptionSetDescription("Organizing"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}
	_ = r.bar.Set(done)
}

func (r *runOutput) finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

func describeFailure(f organizer.Failure) string {
	switch {
	case errors.Is(f.Err, organizer.ErrPermission):
		return fmt.Sprintf("Could not move %s due to permission issues", f.Name)
	case errors.Is(f.Err, organizer.ErrDestinationExists):
		return fmt.Sprintf("Skipped %s: %s already exists", f.Name, filepath.Join(f.Category, f.Name))
	default:
		return fmt.Sprintf("Could not move %s: %v", f.Name, f.Err)
	}
}
