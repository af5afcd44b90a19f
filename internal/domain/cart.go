package domain

// CartItem is a shopping-cart line: a product snapshot taken at add time
// plus a quantity. The identifier is inherited from the embedded product
// and the snapshot is never refreshed from later catalog edits.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal returns price multiplied by quantity for this line.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}
