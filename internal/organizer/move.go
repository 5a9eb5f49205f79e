package organizer

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"golang.org/x/sys/unix"

	"organizer/internal/logging"
)

var (
	// ErrPermission marks a move the host refused.
	ErrPermission = errors.New("permission denied")
	// ErrDestinationExists marks a move skipped because the target name is taken.
	ErrDestinationExists = errors.New("destination already exists")
)

// FailureKind returns a short label for a move failure.
func FailureKind(err error) string {
	switch {
	case errors.Is(err, ErrPermission):
		return "permission"
	case errors.Is(err, ErrDestinationExists):
		return "conflict"
	default:
		return "error"
	}
}

// move renames source to target, falling back to copy and remove when they
// sit on different devices. An existing target is never replaced.
func (e *Engine) move(logger *slog.Logger, source, target string) error {
	if _, err := e.fs.Stat(target); err == nil {
		return fmt.Errorf("%w: %s", ErrDestinationExists, target)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return classifyMoveError(fmt.Errorf("stat destination: %w", err))
	}

	renameErr := e.fs.Rename(source, target)
	if renameErr == nil {
		return nil
	}
	if !errors.Is(renameErr, unix.EXDEV) {
		return classifyMoveError(renameErr)
	}

	if err := copyFile(e.fs, source, target); err != nil {
		return classifyMoveError(fmt.Errorf("copy across devices: %w", err))
	}
	if err := e.fs.Remove(source); err != nil {
		logging.WarnWithContext(logger, "failed to remove source after copy; duplicate file remains",
			"move_source_cleanup_failed",
			logging.String("source", source),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "delete the original file manually"),
		)
	}
	return nil
}

func classifyMoveError(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermission, err)
	}
	return err
}

// copyFile copies src to dst and verifies size and content hash.
func copyFile(afs afero.Fs, src, dst string) error {
	srcInfo, err := afs.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := afs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := afs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	written, err := io.Copy(io.MultiWriter(out, dstHasher), io.TeeReader(in, srcHasher))
	if err != nil {
		_ = afs.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = afs.Remove(dst)
		return err
	}
	if written != srcInfo.Size() {
		_ = afs.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcInfo.Size(), written)
	}
	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = afs.Remove(dst)
		return errors.New("copy hash mismatch: file corrupted during copy")
	}
	return nil
}
