package history

import (
	"errors"
	"time"
)

// ErrRunNotFound is returned when a run id has no row.
var ErrRunNotFound = errors.New("run not found")

// Run is one organizer invocation.
type Run struct {
	ID         string
	Dir        string
	StartedAt  time.Time
	FinishedAt time.Time
	Moved      int
	Failed     int
}

// Finished reports whether the run recorded its final counts.
func (r Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// Duration returns the wall time of a finished run.
func (r Run) Duration() time.Duration {
	if !r.Finished() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// MoveRecord is one persisted move.
type MoveRecord struct {
	ID        int64
	RunID     string
	Name      string
	Category  string
	Extension string
	Source    string
	Target    string
	Size      int64
	MovedAt   time.Time
}

const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		return time.Time{}
	}
	return t.Local()
}
