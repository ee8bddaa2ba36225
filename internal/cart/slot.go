package cart

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrSlotNotFound = errors.New("cart slot not found")
)

// SlotStore is the persistence port for cart snapshots: a durable key-value
// slot holding the JSON-serialized CartState. Writes are last-write-wins;
// there is no merge policy across concurrent writers.
type SlotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, snapshot []byte) error
	Delete(ctx context.Context, key string) error
}

// MemorySlotStore is an in-process SlotStore, used in tests and as the
// fallback backend when no database is configured.
type MemorySlotStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemorySlotStore() *MemorySlotStore {
	return &MemorySlotStore{slots: make(map[string][]byte)}
}

func (s *MemorySlotStore) Load(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.slots[key]
	if !ok {
		return nil, ErrSlotNotFound
	}

	out := make([]byte, len(snapshot))
	copy(out, snapshot)
	return out, nil
}

func (s *MemorySlotStore) Save(ctx context.Context, key string, snapshot []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(snapshot))
	copy(stored, snapshot)
	s.slots[key] = stored
	return nil
}

func (s *MemorySlotStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slots, key)
	return nil
}
