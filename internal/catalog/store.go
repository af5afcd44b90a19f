package catalog

import (
	"context"

	"github.com/asaskevich/EventBus"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tilazone/tilazone/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Subscriber receives the full new product list after every save.
type Subscriber func(products []domain.Product)

// Repository is the single source of truth for the product catalog.
// Writers read the current list, compute the new list and Save the
// whole of it; the last save wins. Save notifies every subscriber,
// including the writer's own view, exactly once per write.
type Repository interface {
	Load(ctx context.Context) ([]domain.Product, error)
	Save(ctx context.Context, products []domain.Product) error
	Subscribe(fn Subscriber) error
	Unsubscribe(fn Subscriber) error
}

const topicCatalogUpdated = "catalog:updated"

// Store implements Repository over a slot Backend with an internal
// event bus for change notification.
type Store struct {
	backend Backend
	bus     EventBus.Bus
}

func NewStore(backend Backend) *Store {
	return &Store{
		backend: backend,
		bus:     EventBus.New(),
	}
}

// Load returns the persisted product list. When the slot has never
// been written it is seeded with the built-in defaults first, so the
// slot always exists after the first access. A slot that exists but
// cannot be decoded is surfaced as an error rather than silently
// reseeded, so a corrupt catalog is never overwritten.
func (s *Store) Load(ctx context.Context) ([]domain.Product, error) {
	raw, found, err := s.backend.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !found {
		seeds := DefaultProducts()
		if err := s.Save(ctx, seeds); err != nil {
			return nil, err
		}
		zap.L().Info("seeded catalog with default products", zap.Int("count", len(seeds)))
		return seeds, nil
	}
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, errors.Wrap(err, "catalog: decode slot")
	}
	return products, nil
}

// Save serializes the full product list, overwrites the slot
// unconditionally and publishes the new list to all subscribers.
func (s *Store) Save(ctx context.Context, products []domain.Product) error {
	if products == nil {
		products = []domain.Product{}
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return errors.Wrap(err, "catalog: encode slot")
	}
	if err := s.backend.Put(ctx, raw); err != nil {
		return err
	}
	s.bus.Publish(topicCatalogUpdated, products)
	return nil
}

// Subscribe registers a change listener. Delivery is synchronous and
// best effort; across rapid writes only "last received wins" holds.
func (s *Store) Subscribe(fn Subscriber) error {
	return s.bus.Subscribe(topicCatalogUpdated, fn)
}

func (s *Store) Unsubscribe(fn Subscriber) error {
	return s.bus.Unsubscribe(topicCatalogUpdated, fn)
}
