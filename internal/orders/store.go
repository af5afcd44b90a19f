// Package orders keeps a node-local journal of successfully submitted
// orders, read by the admin listing and export endpoints. The external
// order sink stays the system of record; this journal is bookkeeping.
package orders

import (
	"context"
	"time"

	"github.com/tilazone/tilazone/internal/domain"
)

// Store appends and reads order journal entries. Entries are keyed by
// the snowflake order ID, which sorts by submission time.
type Store interface {
	Append(ctx context.Context, record domain.OrderRecord) error
	// List returns entries with OrderDate in [from, to). Zero times
	// disable the respective bound.
	List(ctx context.Context, from, to time.Time) ([]domain.OrderRecord, error)
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}
