package issues

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jstool/internal/errors"
)

func writeIssues(t *testing.T, dir, subdir string, names ...string) {
	t.Helper()
	sub := filepath.Join(dir, subdir)
	require.NoError(t, os.MkdirAll(sub, 0755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(sub, name), []byte("x"), 0644))
	}
}

func TestNextID(t *testing.T) {
	dir := t.TempDir()
	writeIssues(t, dir, "open", "001-first-bug.md", "003-feature-request.md")
	writeIssues(t, dir, "closed", "002-fixed.md")

	id, err := NextID(dir)
	require.NoError(t, err)
	assert.Equal(t, "004", id)
}

func TestNextID_EmptyDir(t *testing.T) {
	id, err := NextID(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "001", id)
}

func TestNextID_MissingSubdirsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeIssues(t, dir, "open", "007-only-open.md")

	id, err := NextID(dir)
	require.NoError(t, err)
	assert.Equal(t, "008", id)
}

func TestNextID_IgnoresNonNumericNames(t *testing.T) {
	dir := t.TempDir()
	writeIssues(t, dir, "open", "README.md", "notes.txt", "012-real.md")

	id, err := NextID(dir)
	require.NoError(t, err)
	assert.Equal(t, "013", id)
}

func TestNextID_PastThreeDigits(t *testing.T) {
	dir := t.TempDir()
	writeIssues(t, dir, "closed", "999-last.md")

	id, err := NextID(dir)
	require.NoError(t, err)
	assert.Equal(t, "1000", id)
}

func TestNextID_DirNotFound(t *testing.T) {
	_, err := NextID(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDirNotFound)
	assert.Contains(t, err.Error(), "directory not found")
}
