package catalog

import "context"

// SlotKey is the fixed key the serialized catalog lives under in every
// backend.
const SlotKey = "products"

// Backend persists the catalog slot: one opaque serialized value under
// one fixed key, fully replaced on every write.
type Backend interface {
	// Get returns the current slot value. found is false when the slot
	// has never been written.
	Get(ctx context.Context) (value []byte, found bool, err error)
	// Put overwrites the slot unconditionally.
	Put(ctx context.Context, value []byte) error
}
