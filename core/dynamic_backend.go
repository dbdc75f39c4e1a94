package core

import (
	"context"
	"sync"
)

// DynamicBackend is a thread-safe wrapper for the Backend interface
// that allows for hot-swapping the underlying implementation. Callers
// hold the wrapper; swaps never invalidate their handle.
type DynamicBackend struct {
	mu      sync.RWMutex
	backend Backend
}

func NewDynamicBackend(initial Backend) *DynamicBackend {
	return &DynamicBackend{backend: initial}
}

// Swap replaces the underlying backend and returns the previous one so
// the caller can close it.
func (d *DynamicBackend) Swap(next Backend) Backend {
	d.mu.Lock()
	defer d.mu.Unlock()
	prev := d.backend
	d.backend = next
	return prev
}

// Save forwards the call to the underlying implementation.
func (d *DynamicBackend) Save(ctx context.Context, s Storable) (int64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.backend.Save(ctx, s)
}

// Load forwards the call to the underlying implementation.
func (d *DynamicBackend) Load(ctx context.Context, id int64) (Storable, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.backend.Load(ctx, id)
}

// Close closes the underlying implementation.
func (d *DynamicBackend) Close() error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.backend.Close()
}
