package audit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"organizer/internal/logging"
	"organizer/internal/organizer"
)

// ErrLocked is returned when another process holds the audit log.
var ErrLocked = errors.New("audit log is in use by another organizer process")

// Log is an open, locked audit log.
type Log struct {
	mu   sync.Mutex
	path string
	file *os.File
	lock *flock.Flock
	now  func() time.Time
}

// Option customizes a Log.
type Option func(*Log)

// WithClock overrides the time source. Moves that carry their own timestamp
// use it instead.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// Open opens path for appending, creating it when missing, and takes an
// exclusive lock on path+".lock".
func Open(path string, opts ...Option) (*Log, error) {
	if path == "" {
		return nil, errors.New("audit log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create audit log directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock audit log: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open audit log: %w", err)
	}

	l := &Log{path: path, file: file, lock: lock, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Path returns the log file location.
func (l *Log) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// RecordMove appends one line for move.
func (l *Log) RecordMove(_ context.Context, move organizer.Move) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return os.ErrClosed
	}

	at := move.MovedAt
	if at.IsZero() {
		at = l.now()
	}
	if _, err := l.file.WriteString(FormatLine(at, move.Name, move.Category)); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

// FormatLine renders one audit record including the trailing newline.
func FormatLine(at time.Time, name, category string) string {
	return fmt.Sprintf("%s - Moved %s to %s\n", at.Local().Format(logging.TimestampLayout), name, category)
}

// Close flushes the file and releases the lock.
func (l *Log) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	var errs []error
	if err := l.file.Close(); err != nil {
		errs = append(errs, err)
	}
	l.file = nil
	if err := l.lock.Unlock(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

var _ organizer.Recorder = (*Log)(nil)
