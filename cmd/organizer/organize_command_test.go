package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunOutputClearsProgressBeforeStatusLine(t *testing.T) {
	var buf bytes.Buffer
	status := &runOutput{out: &buf}

	status.progress(1, 3)
	if !strings.Contains(buf.String(), "Organizing") {
		t.Fatalf("expected the bar to render, got %q", buf.String())
	}
	drawn := buf.Len()

	status.moving("a.pdf", "Documents")
	tail := buf.String()[drawn:]
	if !strings.HasSuffix(tail, "\rMoving a.pdf to Documents\n") {
		t.Fatalf("expected the bar line to be cleared before the status line, got %q", tail)
	}
	if strings.Contains(tail, "Organizing") {
		t.Fatalf("bar redrawn into the status line: %q", tail)
	}
	status.finish()
}

func TestRunOutputWithoutProgress(t *testing.T) {
	var buf bytes.Buffer
	status := &runOutput{out: &buf}

	status.moving("a.pdf", "Documents")
	status.finish()
	if got := buf.String(); got != "Moving a.pdf to Documents\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
