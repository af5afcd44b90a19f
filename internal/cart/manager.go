package cart

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Manager owns the session carts. A cart is created on first access
// and discarded by the eviction job once idle beyond the TTL.
type Manager struct {
	mu    sync.RWMutex
	carts map[string]*Cart
	ttl   time.Duration
}

func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Manager{
		carts: make(map[string]*Cart),
		ttl:   ttl,
	}
}

// Get returns the cart bound to a session, creating it on demand.
func (m *Manager) Get(sessionID string) *Cart {
	m.mu.RLock()
	c, ok := m.carts[sessionID]
	m.mu.RUnlock()
	if ok {
		return c
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.carts[sessionID]; ok {
		return c
	}
	c = New()
	m.carts[sessionID] = c
	return c
}

// Size reports the number of live session carts.
func (m *Manager) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.carts)
}

// EvictIdle discards carts idle beyond the TTL and returns how many
// were removed. Run periodically by the scheduler.
func (m *Manager) EvictIdle() int {
	deadline := time.Now().Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	var evicted int
	for id, c := range m.carts {
		if c.LastTouched().Before(deadline) {
			delete(m.carts, id)
			evicted++
		}
	}
	if evicted > 0 {
		zap.L().Info("evicted idle session carts", zap.Int("count", evicted))
	}
	return evicted
}
