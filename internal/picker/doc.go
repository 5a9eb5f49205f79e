// Package picker implements the interactive terminal surfaces of the
// organizer: a folder browser used when no directory argument is given,
// and the boxed notices shown when a run completes or cannot start.
package picker
