package storage

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// FSStore serves read-only assets (the front-end bundle) from a directory.
type FSStore struct{ base string }

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./web"
	}
	fi, err := os.Stat(base)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// nothing to serve yet; every lookup will miss
	case err != nil:
		return nil, err
	case !fi.IsDir():
		return nil, errors.New("asset path is not a directory: " + base)
	}
	return &FSStore{base: base}, nil
}

func (s *FSStore) Base() string { return s.base }

// Open resolves key below the base directory. Keys cannot escape the base,
// and directories are reported as missing.
func (s *FSStore) Open(key string) (*os.File, fs.FileInfo, error) {
	clean := path.Clean("/" + key)
	if clean == "/" {
		return nil, nil, fs.ErrNotExist
	}
	f, err := os.Open(filepath.Join(s.base, filepath.FromSlash(clean)))
	if err != nil {
		return nil, nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if fi.IsDir() {
		f.Close()
		return nil, nil, fs.ErrNotExist
	}
	return f, fi, nil
}
