package store

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryDocument keeps a value in memory. Values round-trip through JSON so
// callers get the same decoding behaviour as with the persistent backends.
type MemoryDocument[T any] struct {
	mu   sync.Mutex
	name string
	data []byte
}

// NewMemoryDocument returns an empty in-memory document.
func NewMemoryDocument[T any](name string) *MemoryDocument[T] {
	return &MemoryDocument[T]{name: name}
}

// Load implements Document.
func (d *MemoryDocument[T]) Load(ctx context.Context) (T, bool, error) {
	var v T
	if err := ctx.Err(); err != nil {
		return v, false, err
	}

	d.mu.Lock()
	data := d.data
	d.mu.Unlock()

	if data == nil {
		return v, false, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false, corrupt(d.name, err)
	}
	return v, true, nil
}

// Save implements Document.
func (d *MemoryDocument[T]) Save(ctx context.Context, v T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	d.SetRaw(data)
	return nil
}

// SetRaw replaces the stored bytes verbatim; nil means nothing stored.
func (d *MemoryDocument[T]) SetRaw(data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data = data
}

// Raw returns the stored bytes.
func (d *MemoryDocument[T]) Raw() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.data
}
