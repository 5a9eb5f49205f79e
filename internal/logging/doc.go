// Package logging assembles structured slog loggers and formatting helpers used
// across the organizer.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so a run can tag every line with
// its run identifier. The package also provides a no-op logger for tests and
// wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so diagnostics keep the
// same shape whether they come from the engine or the CLI.
package logging
