package audit_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"organizer/internal/audit"
	"organizer/internal/organizer"
)

func TestRecordMoveAppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "organizer.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("2025-12-31 23:59:59 - Moved old.pdf to Documents\n"), 0o644); err != nil {
		t.Fatalf("seed log: %v", err)
	}

	log, err := audit.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.Local)
	if err := log.RecordMove(context.Background(), organizer.Move{Name: "a.mp4", Category: "Video", MovedAt: at}); err != nil {
		t.Fatalf("RecordMove: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	want := "2025-12-31 23:59:59 - Moved old.pdf to Documents\n2026-03-04 05:06:07 - Moved a.mp4 to Video\n"
	if string(data) != want {
		t.Fatalf("unexpected log contents:\n%s", data)
	}
}

func TestRecordMoveUsesClockWhenUnstamped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "organizer.log")
	fixed := time.Date(2026, 10, 18, 12, 0, 0, 0, time.Local)
	log, err := audit.Open(path, audit.WithClock(func() time.Time { return fixed }))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer log.Close()

	if err := log.RecordMove(context.Background(), organizer.Move{Name: "x.pdf", Category: "Documents"}); err != nil {
		t.Fatalf("RecordMove: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.HasPrefix(string(data), "2026-10-18 12:00:00 - Moved x.pdf to Documents") {
		t.Fatalf("unexpected line %q", data)
	}
}

func TestOpenRefusesSecondHolder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "organizer.log")
	first, err := audit.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if _, err := audit.Open(path); !errors.Is(err, audit.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}

	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	second, err := audit.Open(path)
	if err != nil {
		t.Fatalf("expected lock to be free after Close: %v", err)
	}
	_ = second.Close()
}

func TestRecordMoveAfterCloseFails(t *testing.T) {
	log, err := audit.Open(filepath.Join(t.TempDir(), "organizer.log"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := log.RecordMove(context.Background(), organizer.Move{Name: "a"}); !errors.Is(err, os.ErrClosed) {
		t.Fatalf("expected os.ErrClosed, got %v", err)
	}
	if log.Path() == "" {
		t.Fatal("expected path to survive Close")
	}
}
