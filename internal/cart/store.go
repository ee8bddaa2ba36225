package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"kam-store/internal/domain"

	"go.uber.org/zap"
)

// Subscriber is notified with a snapshot of the new state after every
// transition
type Subscriber func(domain.CartState)

// Store owns the cart state for one slot key. Intents are applied through
// the pure reducer, the resulting state is persisted through the SlotStore
// port, and subscribers are notified. Each intent is atomic relative to the
// store's mutex.
//
// Persistence failures are logged and swallowed: the in-memory state stays
// authoritative for the session and the next successful save catches up.
type Store struct {
	mu    sync.Mutex
	key   string
	state domain.CartState
	slots SlotStore
	subs  map[int]Subscriber
	nextSub int
	logger *zap.Logger
}

// NewStore creates a store for the given slot key, restoring the persisted
// snapshot. A missing or corrupt snapshot falls back to an empty closed
// cart; restore failures are never fatal.
func NewStore(ctx context.Context, key string, slots SlotStore, logger *zap.Logger) *Store {
	s := &Store{
		key:    key,
		state:  domain.EmptyCart(),
		slots:  slots,
		subs:   make(map[int]Subscriber),
		logger: logger,
	}

	snapshot, err := slots.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrSlotNotFound) {
			logger.Warn("Failed to load cart snapshot, starting empty",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return s
	}

	var restored domain.CartState
	if err := json.Unmarshal(snapshot, &restored); err != nil {
		logger.Warn("Corrupt cart snapshot, starting empty",
			zap.String("key", key),
			zap.Error(err),
		)
		return s
	}

	if restored.Lines == nil {
		restored.Lines = []domain.CartLine{}
	}
	s.state = sanitize(restored)
	return s
}

// sanitize drops snapshot lines that violate the cart invariants: quantity
// must be positive, product ids non-empty and unique.
func sanitize(state domain.CartState) domain.CartState {
	lines := make([]domain.CartLine, 0, len(state.Lines))
	seen := make(map[string]bool, len(state.Lines))
	for _, line := range state.Lines {
		if line.Quantity <= 0 || line.Product.ID == "" || seen[line.Product.ID] {
			continue
		}
		seen[line.Product.ID] = true
		lines = append(lines, line)
	}
	state.Lines = lines
	return state
}

// Dispatch applies the intent, persists the new state and notifies
// subscribers. The returned snapshot is safe to retain.
func (s *Store) Dispatch(ctx context.Context, intent Intent) domain.CartState {
	s.mu.Lock()
	s.state = Apply(s.state, intent)
	snapshot := s.state.Clone()
	subs := make([]Subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	s.persist(ctx, snapshot)

	for _, sub := range subs {
		sub(snapshot.Clone())
	}

	return snapshot
}

func (s *Store) persist(ctx context.Context, state domain.CartState) {
	data, err := json.Marshal(state)
	if err != nil {
		s.logger.Error("Failed to serialize cart state", zap.String("key", s.key), zap.Error(err))
		return
	}

	if err := s.slots.Save(ctx, s.key, data); err != nil {
		s.logger.Error("Failed to persist cart state", zap.String("key", s.key), zap.Error(err))
	}
}

// State returns a snapshot of the current state
func (s *Store) State() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Total returns the current cart total
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Total()
}

// Count returns the current cart item count
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Count()
}

// Subscribe registers a subscriber and returns an unsubscribe function
func (s *Store) Subscribe(sub Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = sub

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
