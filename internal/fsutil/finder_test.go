package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"a.hcl", "nested/b.hcl", "nested/c.yaml", "notes.txt"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}

	files, err := FindFilesByExtension([]string{dir}, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.hcl"), filepath.Join(dir, "nested", "b.hcl")}, files)

	files, err = FindFilesByExtension([]string{dir, filepath.Join(dir, "a.hcl")}, ".hcl", ".yaml")
	require.NoError(t, err)
	assert.Len(t, files, 3, "a file listed twice is returned once")

	files, err = FindFilesByExtension([]string{filepath.Join(dir, "notes.txt")}, ".hcl")
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = FindFilesByExtension([]string{filepath.Join(dir, "missing")}, ".hcl")
	assert.Error(t, err)
}
