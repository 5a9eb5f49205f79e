package organizer_test

import (
	"context"
	"errors"
	"testing"

	"organizer/internal/organizer"
)

func TestRecordersFanOutAndJoinErrors(t *testing.T) {
	var calls []string
	first := organizer.RecorderFunc(func(_ context.Context, m organizer.Move) error {
		calls = append(calls, "first:"+m.Name)
		return errors.New("first failed")
	})
	second := organizer.RecorderFunc(func(_ context.Context, m organizer.Move) error {
		calls = append(calls, "second:"+m.Name)
		return nil
	})

	err := organizer.Recorders(first, nil, second).RecordMove(context.Background(), organizer.Move{Name: "a.pdf"})
	if err == nil || err.Error() != "first failed" {
		t.Fatalf("expected joined error from first recorder, got %v", err)
	}
	if len(calls) != 2 || calls[1] != "second:a.pdf" {
		t.Fatalf("expected both recorders to run, got %v", calls)
	}
}

func TestRecordersEmptyIsNoop(t *testing.T) {
	if err := organizer.Recorders().RecordMove(context.Background(), organizer.Move{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
