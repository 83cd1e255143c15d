// Package export writes an analysis document to disk.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pablasso/meetmind/internal/render"
)

// Write stores data as meeting_analysis.json inside dir using an atomic
// write, and returns the written path. An existing export is replaced.
func Write(dir string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}

	// Ensure directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	filename := filepath.Join(dir, render.ExportFilename)

	// Atomic write: write to temp file then rename
	tmp, err := os.CreateTemp(dir, render.ExportFilename+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create export temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write export temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to close export temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to set export permissions: %w", err)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		// Clean up temp file on rename failure
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to rename export temp file: %w", err)
	}

	return filename, nil
}
