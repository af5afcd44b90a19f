package catalog

import "github.com/tilazone/tilazone/internal/domain"

// NextProductID returns the identifier for a new product: one greater
// than the current maximum, or 1 for an empty catalog. Identifiers of
// deleted products are reused only when they were the maximum.
func NextProductID(products []domain.Product) int64 {
	var max int64
	for _, p := range products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

// FindByID returns the product with the given identifier, or false.
func FindByID(products []domain.Product, id int64) (domain.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}
