package kvstore

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const DefaultFileDir = "wce-data"

// FileStore keeps one file per key under a directory. Writes go through a
// temporary file and a rename so a reader never sees a partial value.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = DefaultFileDir
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// path hashes the key so any key maps to a safe filename.
func (f *FileStore) path(key string) string {
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(f.dir, fmt.Sprintf("%x.json", hash[:12]))
}

func (f *FileStore) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("error reading key %s: %w", key, err)
	}
	return string(data), true, nil
}

func (f *FileStore) Set(key, value string) error {
	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("error writing key %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("error writing key %s: %w", key, err)
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("error saving key %s: %w", key, err)
	}
	return nil
}

func (f *FileStore) Delete(key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error deleting key %s: %w", key, err)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }
