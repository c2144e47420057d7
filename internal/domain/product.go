package domain

import "math"

// Product is an immutable snapshot of a catalog entry. The JSON field names
// are camelCase because they mirror the external products.json resource; the
// same shape is embedded into persisted cart line items and wishlist entries.
type Product struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	Image         string   `json:"image"`
	Images        []string `json:"images,omitempty"`
	Badge         string   `json:"badge,omitempty"`
	Description   string   `json:"description,omitempty"`
	Features      []string `json:"features,omitempty"`
	InStock       bool     `json:"inStock"`
}

// DiscountPercent returns the discount relative to the original price as a
// whole percentage. An original price of zero means "no discount".
func (p Product) DiscountPercent() int {
	if p.OriginalPrice <= 0 {
		return 0
	}
	return int(math.Round((p.OriginalPrice - p.Price) / p.OriginalPrice * 100))
}

// HasDiscount reports whether the product is sold below its original price.
func (p Product) HasDiscount() bool {
	return p.OriginalPrice > 0 && p.Price < p.OriginalPrice
}
