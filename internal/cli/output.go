package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// writeFileAtomic publishes content at path in one step and never
// replaces an existing file. The content is staged in a temp file beside
// path, then hard-linked into place.
func writeFileAtomic(path, content string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".profilestamp-*")
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil { // #nosec G302 -- user output file
		return fmt.Errorf("failed to write output: %w", err)
	}

	if err := os.Link(tmp.Name(), path); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s: %w", path, ErrOutputExists)
		}
		return fmt.Errorf("cannot create output file: %w", err)
	}
	return nil
}
