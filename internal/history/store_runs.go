package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"organizer/internal/organizer"
)

const (
	runColumns  = "id, dir, started_at, finished_at, moved, failed"
	moveColumns = "id, run_id, name, category, extension, source, target, size, moved_at"
)

// BeginRun inserts the row for a new run.
func (s *Store) BeginRun(ctx context.Context, id, dir string, startedAt time.Time) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("run id is required")
	}
	if _, err := s.execWithRetry(ctx,
		"INSERT INTO runs (id, dir, started_at) VALUES (?, ?, ?)",
		id, dir, formatTime(startedAt),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun stores the final counts of a run.
func (s *Store) FinishRun(ctx context.Context, id string, finishedAt time.Time, moved, failed int) error {
	res, err := s.execWithRetry(ctx,
		"UPDATE runs SET finished_at = ?, moved = ?, failed = ? WHERE id = ?",
		formatTime(finishedAt), moved, failed, id,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// AddMove appends a move to run id.
func (s *Store) AddMove(ctx context.Context, runID string, move organizer.Move) error {
	if _, err := s.execWithRetry(ctx,
		`INSERT INTO moves (run_id, name, category, extension, source, target, size, moved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, move.Name, move.Category, move.Extension, move.Source, move.Target, move.Size, formatTime(move.MovedAt),
	); err != nil {
		return fmt.Errorf("insert move: %w", err)
	}
	return nil
}

// Recorder binds the store to one run so the engine can write moves as they
// happen. A move that already happened is written even if ctx is cancelled.
func (s *Store) Recorder(runID string) organizer.Recorder {
	return organizer.RecorderFunc(func(ctx context.Context, move organizer.Move) error {
		return s.AddMove(context.WithoutCancel(ensureContext(ctx)), runID, move)
	})
}

// Runs returns the most recent runs, newest first. A limit <= 0 returns all.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	query := "SELECT " + runColumns + " FROM runs ORDER BY started_at DESC, rowid DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Run fetches a single run. Unique id prefixes are accepted.
func (s *Store) Run(ctx context.Context, id string) (Run, error) {
	ctx = ensureContext(ctx)
	id = strings.TrimSpace(id)
	if id == "" {
		return Run{}, fmt.Errorf("%w: empty id", ErrRunNotFound)
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+runColumns+" FROM runs WHERE id = ? OR id LIKE ? ORDER BY started_at DESC LIMIT 2",
		id, stripLikeWildcards(id)+"%",
	)
	if err != nil {
		return Run{}, fmt.Errorf("query run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return Run{}, fmt.Errorf("scan run: %w", err)
		}
		if run.ID == id {
			return run, nil
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return Run{}, err
	}
	switch len(matches) {
	case 0:
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return Run{}, fmt.Errorf("run id prefix %q is ambiguous", id)
	}
}

// Moves lists the moves of a run in the order they happened.
func (s *Store) Moves(ctx context.Context, runID string) ([]MoveRecord, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+moveColumns+" FROM moves WHERE run_id = ? ORDER BY id",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var (
			rec      MoveRecord
			movedRaw string
		)
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Name, &rec.Category, &rec.Extension,
			&rec.Source, &rec.Target, &rec.Size, &movedRaw); err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		rec.MovedAt = parseTime(movedRaw)
		moves = append(moves, rec)
	}
	return moves, rows.Err()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run         Run
		startedRaw  string
		finishedRaw sql.NullString
	)
	if err := scanner.Scan(&run.ID, &run.Dir, &startedRaw, &finishedRaw, &run.Moved, &run.Failed); err != nil {
		return Run{}, err
	}
	run.StartedAt = parseTime(startedRaw)
	run.FinishedAt = parseTime(finishedRaw.String)
	return run, nil
}

func stripLikeWildcards(s string) string {
	r := strings.NewReplacer("%", "", "_", "")
	return r.Replace(s)
}
