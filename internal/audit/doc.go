// Package audit writes the append-only move log.
//
// Each successful move becomes one line of the form
//
//	2026-01-02 15:04:05 - Moved report.pdf to Documents
//
// in local time. The log is never read or rotated by the organizer. An
// advisory lock on a sibling ".lock" file keeps concurrent organizer
// processes from interleaving lines in the same log.
package audit
