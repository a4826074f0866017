// Package commitfile writes the synthesized commit message into the
// commit-message file atomically: a temp file in the same directory,
// followed by a rename, so a crash mid-write never leaves a half-written
// message behind.
package commitfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// Write overwrites path with message as raw UTF-8 bytes, atomically.
func Write(path, message string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".commitsynth-*")
	if err != nil {
		return fmt.Errorf("commitfile: create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(message); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("commitfile: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("commitfile: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("commitfile: rename into place: %w", err)
	}
	return nil
}
