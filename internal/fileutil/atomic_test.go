package fileutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "report.json")

	require.NoError(t, WriteJSON(file, map[string]int{"rounds": 10}, 0o644))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rounds": 10}`, string(data))

	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteAtomicOverwrite(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "out.txt")
	write := func(s string) func(io.Writer) error {
		return func(w io.Writer) error {
			_, err := io.WriteString(w, s)
			return err
		}
	}

	require.NoError(t, WriteAtomic(file, 0o600, write("initial")))
	require.NoError(t, WriteAtomic(file, 0o600, write("updated content")))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "updated content", string(data))
}

func TestWriteAtomicFailureKeepsOriginal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(file, []byte("original"), 0o644))

	boom := errors.New("boom")
	err := WriteAtomic(file, 0o644, func(io.Writer) error { return boom })
	require.ErrorIs(t, err, boom)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteAtomicInvalidDir(t *testing.T) {
	t.Parallel()

	err := WriteJSON("/nonexistent/dir/report.json", 1, 0o644)
	assert.Error(t, err)
}
