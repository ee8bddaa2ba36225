package cart

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Manager hands out one Store per cart session. Stores are created lazily,
// restoring from the slot store on first access, and cached for the life of
// the process.
type Manager struct {
	mu        sync.Mutex
	stores    map[string]*Store
	slots     SlotStore
	keyPrefix string
	logger    *zap.Logger
}

// NewManager creates a Manager. keyPrefix is the fixed slot key prefix
// (default "kam-cart"); the full slot key is "<prefix>:<sessionID>".
func NewManager(slots SlotStore, keyPrefix string, logger *zap.Logger) *Manager {
	return &Manager{
		stores:    make(map[string]*Store),
		slots:     slots,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

// Store returns the cart store for the session, creating it if needed
func (m *Manager) Store(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[sessionID]; ok {
		return store
	}

	key := fmt.Sprintf("%s:%s", m.keyPrefix, sessionID)
	store := NewStore(ctx, key, m.slots, m.logger)
	m.stores[sessionID] = store
	return store
}

// Evict drops the cached store for the session. The persisted slot is left
// alone; the next access restores from it.
func (m *Manager) Evict(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, sessionID)
}
