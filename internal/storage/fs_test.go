package storage

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStoreOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>marking</h1>"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "style.css"), []byte("body{}"), 0o644))

	s, err := NewFSStore(dir)
	require.NoError(t, err)

	f, fi, err := s.Open("css/style.css")
	require.NoError(t, err)
	defer f.Close()
	b, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(b))
	assert.Equal(t, "style.css", fi.Name())

	_, _, err = s.Open("css")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, _, err = s.Open("missing.js")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFSStoreStaysInsideBase(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "web")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.env"), []byte("DATABASEURL=x"), 0o600))

	s, err := NewFSStore(dir)
	require.NoError(t, err)

	_, _, err = s.Open("../secret.env")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestNewFSStoreMissingDirIsAllowed(t *testing.T) {
	s, err := NewFSStore(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	_, _, err = s.Open("index.html")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestNewFSStoreRejectsFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(p, nil, 0o644))
	_, err := NewFSStore(p)
	assert.Error(t, err)
}
