package organizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"organizer/internal/logging"
	"organizer/internal/rules"
)

// ErrNoCategories is returned when Run is called without a usable table.
var ErrNoCategories = errors.New("no categories configured")

// Request is the input of one run.
type Request struct {
	// Dir is the folder to organize. Empty means the user cancelled selection.
	Dir   string
	Table rules.Table
	// Exclude is skipped by exact, case-sensitive name comparison.
	Exclude string
}

// Result summarizes one run.
type Result struct {
	// Moved is the number of successful moves.
	Moved     int
	Matched   int
	Unmatched int
	Excluded  int
	Moves     []Move
	Failures  []Failure
}

// Failure records an entry that matched a category but could not be moved.
type Failure struct {
	Name     string
	Category string
	Err      error
}

// ProgressFunc is called after each entry with the number processed so far.
type ProgressFunc func(done, total int)

// MoveStartFunc is called before a matched file is moved, whether or not the
// move then succeeds.
type MoveStartFunc func(name, category string)

// Engine classifies and moves files.
type Engine struct {
	fs       afero.Fs
	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time
	progress ProgressFunc
	onMove   MoveStartFunc
}

// Option customizes an Engine.
type Option func(*Engine)

// WithFs replaces the filesystem (tests use afero.MemMapFs).
func WithFs(fs afero.Fs) Option {
	return func(e *Engine) { e.fs = fs }
}

// WithRecorder sets the collaborator notified of each successful move.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithClock overrides the time source used for move timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithProgress registers a per-entry progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(e *Engine) { e.progress = fn }
}

// WithMoveStart registers a callback invoked before each move attempt.
func WithMoveStart(fn MoveStartFunc) Option {
	return func(e *Engine) { e.onMove = fn }
}

// New constructs an Engine on the host filesystem.
func New(logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		fs:     afero.NewOsFs(),
		logger: logging.NewComponentLogger(logger, "organizer"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run organizes req.Dir. The returned Result is valid even when err is
// non-nil and reflects the work done before the failure.
func (e *Engine) Run(ctx context.Context, req Request) (Result, error) {
	var result Result
	if req.Table.Empty() {
		return result, ErrNoCategories
	}
	if req.Dir == "" {
		return result, nil
	}
	logger := logging.WithContext(ctx, e.logger)

	entries, err := afero.ReadDir(e.fs, req.Dir)
	if err != nil {
		return result, fmt.Errorf("read directory %s: %w", req.Dir, err)
	}
	logger.Info("organizing folder",
		logging.String("dir", req.Dir),
		logging.Int("entries", len(entries)),
		logging.Int("categories", len(req.Table)),
	)

	started := e.now()
	for idx, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := e.handleEntry(ctx, logger, req, entry.Name(), entry.IsDir(), entry.Size(), &result); err != nil {
			return result, err
		}
		if e.progress != nil {
			e.progress(idx+1, len(entries))
		}
	}

	logger.Info("organize summary",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("moved", result.Moved),
		logging.Int("failed", len(result.Failures)),
		logging.Int("unmatched", result.Unmatched),
		logging.Duration("duration", e.now().Sub(started)),
	)
	return result, nil
}

func (e *Engine) handleEntry(ctx context.Context, logger *slog.Logger, req Request, name string, isDir bool, size int64, result *Result) error {
	if name == req.Exclude {
		result.Excluded++
		logger.Debug("skipping excluded entry", logging.String(logging.FieldFile, name))
		return nil
	}
	if isDir {
		return nil
	}

	match, ok := req.Table.Match(name)
	if !ok {
		result.Unmatched++
		return nil
	}
	result.Matched++

	folder := filepath.Join(req.Dir, match.Category)
	if err := e.fs.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("create category folder %s: %w", folder, err)
	}

	source := filepath.Join(req.Dir, name)
	target := filepath.Join(folder, name)
	logger.Info("moving file",
		logging.String(logging.FieldFile, name),
		logging.String(logging.FieldCategory, match.Category),
	)
	if e.onMove != nil {
		e.onMove(name, match.Category)
	}
	if err := e.move(logger, source, target); err != nil {
		result.Failures = append(result.Failures, Failure{Name: name, Category: match.Category, Err: err})
		logMoveFailure(logger, name, match.Category, err)
		return nil
	}

	move := Move{
		Name:      name,
		Category:  match.Category,
		Extension: match.Extension,
		Source:    source,
		Target:    target,
		Size:      size,
		MovedAt:   e.now(),
	}
	result.Moved++
	result.Moves = append(result.Moves, move)

	if e.recorder != nil {
		if err := e.recorder.RecordMove(ctx, move); err != nil {
			logging.WarnWithContext(logger, "failed to record move",
				"record_move_failed",
				logging.String(logging.FieldFile, name),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check audit log and history paths are writable"),
			)
		}
	}
	return nil
}

func logMoveFailure(logger *slog.Logger, name, category string, err error) {
	switch {
	case errors.Is(err, ErrPermission):
		logging.WarnWithContext(logger, "could not move file due to permission issues",
			"move_permission_denied",
			logging.String(logging.FieldFile, name),
			logging.String(logging.FieldCategory, category),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check ownership and permissions of the file and folder"),
		)
	case errors.Is(err, ErrDestinationExists):
		logging.WarnWithContext(logger, "destination already exists; file left in place",
			"move_conflict",
			logging.String(logging.FieldFile, name),
			logging.String(logging.FieldCategory, category),
			logging.String(logging.FieldErrorHint, "rename or remove one of the files and run again"),
		)
	default:
		logging.WarnWithContext(logger, "could not move file",
			"move_failed",
			logging.String(logging.FieldFile, name),
			logging.String(logging.FieldCategory, category),
			logging.Error(err),
		)
	}
}
