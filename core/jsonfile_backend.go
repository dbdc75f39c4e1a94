package core

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

const recordsFileName = "records.json"

// storedRecord is the on-disk structure kept per object in records.json.
// The rev tag changes on every save so overwrites are observable.
type storedRecord struct {
	Kind Kind            `json:"kind"`
	Rev  string          `json:"rev"`
	Data json.RawMessage `json:"data"`
}

// JSONFileBackend implements Backend using a JSON file for persistence,
// with an in-memory cache of all records flushed to disk on every write.
type JSONFileBackend struct {
	dataPath string
	mu       sync.RWMutex
	cache    map[int64]*storedRecord
	nextID   int64
}

func NewJSONFileBackend(dataPath string) (*JSONFileBackend, error) {
	if err := os.MkdirAll(dataPath, 0755); err != nil {
		return nil, fmt.Errorf("%w: unable to create data directory: %v", ErrUnavailable, err)
	}
	b := &JSONFileBackend{
		dataPath: dataPath,
		cache:    make(map[int64]*storedRecord),
	}
	if err := b.load(); err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
	b.nextID = 1
	for id := range b.cache {
		if id >= b.nextID {
			b.nextID = id + 1
		}
	}
	return b, nil
}

func (b *JSONFileBackend) load() error {
	path := filepath.Join(b.dataPath, recordsFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil // File not existing is normal situation
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrUnavailable, recordsFileName, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &b.cache); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrDeserialization, recordsFileName, err)
	}
	return nil
}

// flush writes the whole cache back to records.json. Caller holds the lock.
func (b *JSONFileBackend) flush() error {
	data, err := json.MarshalIndent(b.cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(b.dataPath, recordsFileName), data, 0644)
}

func (b *JSONFileBackend) Save(ctx context.Context, s Storable) (int64, error) {
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
	b.cache[id] = &storedRecord{
		Kind: s.Kind(),
		Rev:  uuid.NewString(),
		Data: data,
	}
	if err := b.flush(); err != nil {
		return 0, fmt.Errorf("%w: flush records: %v", ErrUnavailable, err)
	}
	return id, nil
}

func (b *JSONFileBackend) Load(ctx context.Context, id int64) (Storable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.RLock()
	rec, ok := b.cache[id]
	b.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return DecodeRecord(rec.Data)
}

// Close is a no-op; every save already flushes to disk.
func (b *JSONFileBackend) Close() error { return nil }
