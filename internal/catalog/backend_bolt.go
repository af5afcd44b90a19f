package catalog

import (
	"context"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var boltBucket = []byte("catalog")

// BoltBackend stores the slot in a bbolt bucket. The *bolt.DB handle is
// shared with the other node-local stores and owned by the caller.
type BoltBackend struct {
	db *bolt.DB
}

func NewBoltBackend(db *bolt.DB) (*BoltBackend, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "catalog: create bolt bucket")
	}
	return &BoltBackend{db: db}, nil
}

func (b *BoltBackend) Get(ctx context.Context) ([]byte, bool, error) {
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(boltBucket).Get([]byte(SlotKey))
		if v != nil {
			value = make([]byte, len(v))
			copy(value, v)
		}
		return nil
	})
	if err != nil {
		return nil, false, errors.Wrap(err, "catalog: read slot")
	}
	return value, value != nil, nil
}

func (b *BoltBackend) Put(ctx context.Context, value []byte) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(SlotKey), value)
	})
	return errors.Wrap(err, "catalog: write slot")
}
