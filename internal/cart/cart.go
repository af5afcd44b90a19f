// Package cart implements the in-memory shopping cart reducer and the
// session-scoped cart manager. Carts are private per browsing session
// and never shared between sessions.
package cart

import (
	"sync"
	"time"

	"github.com/tilazone/tilazone/internal/domain"
)

// Cart holds the line items of one browsing session. Every operation
// is atomic with respect to the item collection.
type Cart struct {
	mu      sync.Mutex
	items   []domain.CartItem
	touched time.Time
}

func New() *Cart {
	return &Cart{touched: time.Now()}
}

// AddToCart merges a product into the cart. An existing entry only has
// its quantity incremented; the stored snapshot is left untouched even
// if the product fields have changed since. A new entry is created with
// quantity 1 from a value copy of the product.
func (c *Cart) AddToCart(p domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touched = time.Now()
	for i := range c.items {
		if c.items[i].ID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, domain.CartItem{Product: p.Clone(), Quantity: 1})
}

// UpdateQuantity replaces the quantity of the matching entry. Updates
// below 1 and unknown identifiers are ignored and the prior state kept.
func (c *Cart) UpdateQuantity(id int64, quantity int) {
	if quantity < 1 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touched = time.Now()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem deletes the matching entry. Unknown identifiers are a
// no-op.
func (c *Cart) RemoveItem(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touched = time.Now()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Items returns value copies of the cart lines in insertion order.
func (c *Cart) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.CartItem, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, domain.CartItem{Product: it.Product.Clone(), Quantity: it.Quantity})
	}
	return out
}

// ItemCount is the sum of all quantities, recomputed on every read.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Total is the sum of price times quantity over all entries.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, it := range c.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// LastTouched reports when the cart was last mutated.
func (c *Cart) LastTouched() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.touched
}
