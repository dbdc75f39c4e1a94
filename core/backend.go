package core

import (
	"context"
	"fmt"
)

// Backend defines the persistence contract any storage mechanism must
// satisfy, abstracting the underlying implementation (memory, JSON files,
// SQLite). Entities never persist themselves; all persistence goes
// through a Backend.
type Backend interface {
	// Save persists s and returns its identifier. A fresh entity (id 0)
	// receives a newly assigned id, which is also written back into the
	// entity. Re-saving an entity that already has an id overwrites the
	// stored record and never creates a duplicate.
	Save(ctx context.Context, s Storable) (int64, error)

	// Load fetches the record for id and decodes it into its stored
	// variant. Fails with ErrNotFound when no record exists.
	Load(ctx context.Context, id int64) (Storable, error)

	// Close releases any resources held by the backend.
	Close() error
}

// LoadAs fetches the record for id and requires its stored variant to be
// T. Fails with ErrTypeMismatch when the stored variant is anything else;
// it never coerces or returns a zero-valued entity.
func LoadAs[T Storable](ctx context.Context, b Backend, id int64) (T, error) {
	var zero T
	s, err := b.Load(ctx, id)
	if err != nil {
		return zero, err
	}
	typed, ok := s.(T)
	if !ok {
		return zero, fmt.Errorf("%w: stored %q, requested %T", ErrTypeMismatch, s.Kind(), zero)
	}
	return typed, nil
}
