// Package history persists organizer runs and the moves they made in a
// SQLite database.
//
// Each run gets a row keyed by its UUID with the folder, start and finish
// times, and final counts. Moves reference their run and are written as
// they happen through the organizer.Recorder returned by Store.Recorder, so
// an interrupted run still leaves a partial trail. The store uses WAL mode
// and retries briefly on SQLITE_BUSY so a history query from another shell
// does not fail a run in progress.
package history
