package gallery

import (
	"context"
	"fmt"
	"sync"
)

// CollectionName names the persisted image collection.
const CollectionName = "images"

// SchemaVersion is the on-disk layout version written by every backend.
const SchemaVersion = 1

// Store persists the whole gallery collection. SaveAll replaces the stored
// collection; it is not incremental.
type Store interface {
	SaveAll(ctx context.Context, images []Image) error
	LoadAll(ctx context.Context) ([]Image, error)
	SizeInBytes(ctx context.Context) (int64, error)
	Close() error
}

// Backend names accepted by Open.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the store for backend rooted at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendBadger:
		return NewBadgerStore(path)
	case BackendSQLite:
		return NewSQLiteStore(path)
	case BackendMemory, "":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown gallery backend %q", backend)
	}
}

// MemoryStore keeps the collection in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	images []Image
	saves  int
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) SaveAll(_ context.Context, images []Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images = cloneImages(images)
	m.saves++
	return nil
}

func (m *MemoryStore) LoadAll(_ context.Context) ([]Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneImages(m.images), nil
}

func (m *MemoryStore) SizeInBytes(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return SerializedSize(m.images)
}

// Saves reports how many SaveAll calls completed.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *MemoryStore) Close() error { return nil }
