package orders

import (
	"context"
	"sync"
	"time"

	"github.com/tilazone/tilazone/internal/domain"
)

// MemoryStore is the test journal.
type MemoryStore struct {
	mu      sync.Mutex
	records []domain.OrderRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(ctx context.Context, record domain.OrderRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, from, to time.Time) ([]domain.OrderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.OrderRecord
	for _, rec := range s.records {
		if inRange(rec.OrderDate, from, to) {
			out = append(out, rec)
		}
	}
	return out, nil
}
