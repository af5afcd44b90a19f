package domain

// Product represents a catalog entry. The identifier is assigned by the
// catalog on creation and is immutable afterwards.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	// Image mirrors the first entry of Images and exists only for
	// clients that predate the media gallery.
	Image          string            `json:"image,omitempty"`
	Images         []string          `json:"images"`
	Videos         []string          `json:"videos,omitempty"`
	Details        string            `json:"details"`
	Category       string            `json:"category"`
	Specs          map[string]string `json:"specs"`
	LandingPageURL string            `json:"landingPageUrl"`
}

// Clone returns a value copy of the product with its own backing slices
// and specs map. Cart entries hold clones so later catalog edits never
// leak into an existing cart.
func (p Product) Clone() Product {
	c := p
	if p.Images != nil {
		c.Images = make([]string, len(p.Images))
		copy(c.Images, p.Images)
	}
	if p.Videos != nil {
		c.Videos = make([]string, len(p.Videos))
		copy(c.Videos, p.Videos)
	}
	if p.Specs != nil {
		c.Specs = make(map[string]string, len(p.Specs))
		for k, v := range p.Specs {
			c.Specs[k] = v
		}
	}
	return c
}
