package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileKV persists each collection blob as one JSON file under a base
// directory. It is the default backend for single-machine use, playing
// the role the browser's local storage played in the original tool.
type FileKV struct {
	dir string
}

// NewFileKV ensures the data directory exists and returns the backend.
func NewFileKV(dir string) (*FileKV, error) {
	if dir == "" {
		dir = "./data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

// Get reads the blob file for key.
func (f *FileKV) Get(_ context.Context, key Key) (string, error) {
	raw, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("read blob %s: %w", key, err)
	}
	return string(raw), nil
}

// Set writes the blob file for key atomically via a temp file rename.
func (f *FileKV) Set(_ context.Context, key Key, value string) error {
	tmp, err := os.CreateTemp(f.dir, string(key)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp blob %s: %w", key, err)
	}
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close() //nolint:errcheck
		os.Remove(tmp.Name())
		return fmt.Errorf("write blob %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close blob %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace blob %s: %w", key, err)
	}
	return nil
}

// Delete removes the blob file for key.
func (f *FileKV) Delete(_ context.Context, key Key) error {
	if err := os.Remove(f.path(key)); err != nil {
		if os.IsNotExist(err) {
			return ErrKeyNotFound
		}
		return fmt.Errorf("delete blob %s: %w", key, err)
	}
	return nil
}

func (f *FileKV) path(key Key) string {
	return filepath.Join(f.dir, string(key)+".json")
}
