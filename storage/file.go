package storage

import (
	"errors"
	"os"
	"path/filepath"
)

// File is a directory-backed Plugin: every key becomes one file under Dir,
// for the cmd/verifier CLI to persist a TrustState across invocations
// without requiring an external database. Grounded the same way Memory is
// (the teacher's BeaconCache never crosses a storage boundary itself), just
// with a filesystem instead of a map as the backing store.
type File struct {
	Dir string
}

// NewFile returns a Plugin backed by dir, creating it if necessary.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &File{Dir: dir}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.Dir, filepath.Base(key))
}

func (f *File) Get(key string) ([]byte, error) {
	buf, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return buf, err
}

func (f *File) Set(key string, value []byte) error {
	return os.WriteFile(f.path(key), value, 0o644)
}

func (f *File) Delete(key string) error {
	err := os.Remove(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
