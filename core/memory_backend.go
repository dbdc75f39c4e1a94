package core

import (
	"context"
	"fmt"
	"sync"
)

// MemoryBackend keeps records in process memory. It is the default
// backend for tests and never touches the filesystem.
type MemoryBackend struct {
	mu      sync.RWMutex
	records map[int64][]byte
	nextID  int64
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		records: make(map[int64][]byte),
		nextID:  1,
	}
}

func (b *MemoryBackend) Save(ctx context.Context, s Storable) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	id := s.ObjectID()
	if id == 0 {
		id = b.nextID
		b.nextID++
		s.SetObjectID(id)
	} else if id >= b.nextID {
		b.nextID = id + 1
	}

	data, err := EncodeRecord(s)
	if err != nil {
		return 0, err
	}
	b.records[id] = data
	return id, nil
}

func (b *MemoryBackend) Load(ctx context.Context, id int64) (Storable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.RLock()
	data, ok := b.records[id]
	b.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return DecodeRecord(data)
}

func (b *MemoryBackend) Close() error { return nil }
