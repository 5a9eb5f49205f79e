// Package organizer moves the immediate entries of one folder into category
// subfolders.
//
// The Engine takes plain data (a folder path and a rules.Table) and returns a
// Result; it never prompts or renders. Entries are processed one at a time in
// name order. Each matching file is renamed into <folder>/<category>/, the
// category folder being created on first use. Per-file failures such as a
// denied permission or an existing destination are logged and skipped, while
// failing to create a category folder ends the run. Every successful move is
// handed to the injected Recorder, which is how the audit log and the move
// history are written.
package organizer
