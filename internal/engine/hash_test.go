package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "hello world")
	writeFile(t, dir, "b.txt", "hello world")
	writeFile(t, dir, "c.txt", "different content")

	h1, err := HashFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Len(t, h1, 64)

	h2, err := HashFile(filepath.Join(dir, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	h3, err := HashFile(filepath.Join(dir, "c.txt"))
	require.NoError(t, err)
	assert.NotEqual(t, h1, h3)
}

func TestHashFileEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	h, err := HashFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, h)
}

func TestHashFileNotExist(t *testing.T) {
	_, err := HashFile("/nonexistent/file")
	assert.Error(t, err)
}

func TestSameContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src", "payload")
	writeFile(t, dir, "same", "payload")
	writeFile(t, dir, "other", "tampered")

	ok, _, _, err := sameContent(filepath.Join(dir, "src"), filepath.Join(dir, "same"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, srcSum, dstSum, err := sameContent(filepath.Join(dir, "src"), filepath.Join(dir, "other"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NotEqual(t, srcSum, dstSum)

	_, _, _, err = sameContent(filepath.Join(dir, "src"), filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
