// Package fileutil writes simulation reports and other output files.
package fileutil

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteAtomic streams content from write into a temp file beside filename and
// renames it into place once complete. Readers see the old file or the new
// one, never a partial write.
func WriteAtomic(filename string, perm os.FileMode, write func(io.Writer) error) (err error) {
	// same directory so the rename stays on one filesystem
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err = write(w); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("flush temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// WriteJSON writes v as indented JSON, atomically.
func WriteJSON(filename string, v any, perm os.FileMode) error {
	return WriteAtomic(filename, perm, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}
