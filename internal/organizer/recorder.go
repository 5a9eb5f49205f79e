package organizer

import (
	"context"
	"errors"
	"time"
)

// Move describes one successful relocation.
type Move struct {
	Name      string
	Category  string
	Extension string
	Source    string
	Target    string
	Size      int64
	MovedAt   time.Time
}

// Recorder receives every successful move. The audit log and the history
// store implement it.
type Recorder interface {
	RecordMove(ctx context.Context, move Move) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ctx context.Context, move Move) error

func (f RecorderFunc) RecordMove(ctx context.Context, move Move) error {
	return f(ctx, move)
}

type multiRecorder []Recorder

// Recorders combines recorders; nil entries are dropped. Every recorder sees
// every move and their errors are joined.
func Recorders(recorders ...Recorder) Recorder {
	filtered := make(multiRecorder, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			filtered = append(filtered, r)
		}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return filtered
}

func (m multiRecorder) RecordMove(ctx context.Context, move Move) error {
	var errs []error
	for _, r := range m {
		if err := r.RecordMove(ctx, move); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
