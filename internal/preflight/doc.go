// Package preflight provides readiness checks for the files and folders an
// organizer run depends on.
//
// The CLI "organizer check" command runs RunAll and renders each Result as a
// status line. Checks never modify the filesystem.
package preflight
