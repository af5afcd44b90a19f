package orders

import (
	"context"
	"encoding/binary"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/tilazone/tilazone/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var boltBucket = []byte("orders")

// BoltStore journals orders in a bbolt bucket shared with the other
// node-local buckets.
type BoltStore struct {
	db *bolt.DB
}

func NewBoltStore(db *bolt.DB) (*BoltStore, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "orders: create bucket")
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Append(ctx context.Context, record domain.OrderRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "orders: encode record")
	}
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(record.ID))
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put(key, raw)
	})
	return errors.Wrap(err, "orders: append record")
}

func (s *BoltStore) List(ctx context.Context, from, to time.Time) ([]domain.OrderRecord, error) {
	var out []domain.OrderRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).ForEach(func(k, v []byte) error {
			var rec domain.OrderRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return errors.Wrap(err, "orders: decode record")
			}
			if inRange(rec.OrderDate, from, to) {
				out = append(out, rec)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
