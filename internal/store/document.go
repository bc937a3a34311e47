// Package store persists the calendar's two documents, the task list and the
// pointer to the pinned planning message. Every mutation rewrites a whole
// document; there is no partial update.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/twiced-technology-gmbh/weekplan/internal/clierr"
)

// ErrCorrupt is wrapped by every error caused by a document that exists
// but cannot be decoded.
var ErrCorrupt = errors.New("document is corrupt")

// Document loads and saves a single typed value as a whole.
type Document[T any] interface {
	// Load returns the stored value. ok is false when nothing has been
	// stored yet, which is not an error.
	Load(ctx context.Context) (v T, ok bool, err error)
	// Save replaces the stored value.
	Save(ctx context.Context, v T) error
}

// corrupt builds the STORAGE_CORRUPT error for a document that failed to decode.
func corrupt(name string, err error) error {
	return clierr.Wrap(clierr.StorageCorrupt, fmt.Errorf("%w: %w", ErrCorrupt, err), "parsing "+name).
		WithDetails(map[string]any{"document": name})
}
