package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	// TempFileSuffix ends the name of every in-flight atomic write.
	// A temp file for "<id>.json" is named "<id>.json.<random>.tmp".
	TempFileSuffix = ".tmp"

	defaultRenameAttempts = 3
)

// writeFileAtomic writes data to a file atomically by writing to a temp file
// in the same directory and then renaming it onto filename.
// The rename is retried a few times since it can fail transiently when
// another process holds the target open (Windows, antivirus scanners).
func writeFileAtomic(fsys fileSystem, filename string, data []byte, perm os.FileMode, attempts uint) error {
	dir := filepath.Dir(filename)

	tmpFile, err := fsys.CreateTemp(dir, filepath.Base(filename)+".*"+TempFileSuffix)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer fsys.Remove(tmpFile.Name()) // Clean up if we fail before rename

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := fsys.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if attempts == 0 {
		attempts = defaultRenameAttempts
	}
	err = retry.Do(
		func() error { return fsys.Rename(tmpFile.Name(), filename) },
		retry.Attempts(attempts),
		retry.Delay(10*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, os.ErrNotExist)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}

	return nil
}
