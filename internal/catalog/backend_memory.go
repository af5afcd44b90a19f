package catalog

import (
	"context"
	"sync"
)

// MemoryBackend keeps the slot in process memory. Used by tests and by
// ephemeral runs that do not need durability.
type MemoryBackend struct {
	mu    sync.RWMutex
	value []byte
	set   bool
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Get(ctx context.Context) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.set {
		return nil, false, nil
	}
	out := make([]byte, len(b.value))
	copy(out, b.value)
	return out, true, nil
}

func (b *MemoryBackend) Put(ctx context.Context, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = make([]byte, len(value))
	copy(b.value, value)
	b.set = true
	return nil
}
