package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// FileDocument stores a value as an indented JSON file.
type FileDocument[T any] struct {
	path string
}

// NewFileDocument returns a document backed by the JSON file at path.
func NewFileDocument[T any](path string) *FileDocument[T] {
	return &FileDocument[T]{path: path}
}

// Path returns the file backing the document.
func (d *FileDocument[T]) Path() string {
	return d.path
}

// Load implements Document. A missing or blank file counts as not stored.
func (d *FileDocument[T]) Load(ctx context.Context) (T, bool, error) {
	var v T
	if err := ctx.Err(); err != nil {
		return v, false, err
	}

	data, err := os.ReadFile(d.path) //nolint:gosec // path from config
	if err != nil {
		if os.IsNotExist(err) {
			return v, false, nil
		}
		return v, false, fmt.Errorf("reading %s: %w", filepath.Base(d.path), err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return v, false, nil
	}

	if err := json.Unmarshal(data, &v); err != nil {
		return v, false, corrupt(filepath.Base(d.path), err)
	}
	return v, true, nil
}

// Save implements Document. The file is written next to its destination
// and renamed over it, so readers see either the old or the new document.
func (d *FileDocument[T]) Save(ctx context.Context, v T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(d.path), err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(d.path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", filepath.Base(d.path), err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("setting mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, d.path); err != nil {
		return fmt.Errorf("replacing %s: %w", filepath.Base(d.path), err)
	}
	return nil
}
