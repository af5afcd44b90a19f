package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilazone/tilazone/internal/domain"
)

func TestLoadSeedsEmptySlot(t *testing.T) {
	backend := NewMemoryBackend()
	store := NewStore(backend)

	products, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "iPhone 14 Pro", products[0].Name)
	assert.Equal(t, int64(2), products[1].ID)

	// the slot must exist now with the two seeds serialized
	raw, found, err := backend.Get(context.Background())
	require.NoError(t, err)
	require.True(t, found)

	var persisted []domain.Product
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Equal(t, products, persisted)
}

func TestSaveLoadRoundTripIdempotent(t *testing.T) {
	backend := NewMemoryBackend()
	store := NewStore(backend)
	ctx := context.Background()

	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	before, _, err := backend.Get(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, loaded))

	after, _, err := backend.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSaveNotifiesSubscribersOnce(t *testing.T) {
	store := NewStore(NewMemoryBackend())
	ctx := context.Background()

	var calls int
	var last []domain.Product
	fn := func(products []domain.Product) {
		calls++
		last = products
	}
	require.NoError(t, store.Subscribe(fn))

	update := []domain.Product{{ID: 7, Name: "Test", Price: 10}}
	require.NoError(t, store.Save(ctx, update))

	assert.Equal(t, 1, calls)
	assert.Equal(t, update, last)

	require.NoError(t, store.Unsubscribe(fn))
	require.NoError(t, store.Save(ctx, update))
	assert.Equal(t, 1, calls)
}

func TestLoadSurfacesCorruptSlot(t *testing.T) {
	backend := NewMemoryBackend()
	require.NoError(t, backend.Put(context.Background(), []byte("{not json")))

	store := NewStore(backend)
	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode slot")
}

func TestNextProductID(t *testing.T) {
	products := []domain.Product{{ID: 1}, {ID: 2}, {ID: 5}}
	assert.Equal(t, int64(6), NextProductID(products))

	assert.Equal(t, int64(1), NextProductID(nil))
}

func TestNextProductIDAfterDelete(t *testing.T) {
	products := []domain.Product{{ID: 2}, {ID: 5}}

	// deleting product 5 then creating yields max(remaining)+1, not 5
	var remaining []domain.Product
	for _, p := range products {
		if p.ID != 5 {
			remaining = append(remaining, p)
		}
	}
	assert.Equal(t, int64(3), NextProductID(remaining))
}
