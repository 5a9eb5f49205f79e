// Package config loads, normalizes, and validates organizer settings.
//
// Settings are the ambient knobs around a run: where the audit log and move
// history live, an explicit rules file, log level and format, and whether the
// CLI draws a progress bar. They live in an optional TOML file; every field has
// a default so a missing file is not an error. The category rules themselves
// are loaded by package rules.
//
// Always obtain settings through this package so downstream code receives
// expanded absolute paths and clear validation errors.
package config
