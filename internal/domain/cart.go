package domain

import "math"

// Summary constants. Shipping is a flat rate charged on any non-empty cart;
// tax applies to the subtotal only.
const (
	ShippingFlatRate = 10.0
	TaxRate          = 0.10
)

// Cart represents the shopping cart of one browser session. Items keep
// insertion order; there is at most one line item per product id.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []LineItem `json:"items"`
}

// LineItem is a product snapshot plus a quantity. The product fields are
// inlined in JSON, so the persisted shape is the product object with a
// "quantity" field added.
type LineItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal returns the line's price times quantity.
func (li LineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}

// NewCart creates an empty cart for the given session.
func NewCart(sessionID string) *Cart {
	return &Cart{
		SessionID: sessionID,
		Items:     []LineItem{},
	}
}

// FindItem returns the index of the line item holding the given product id,
// or -1 when the cart does not contain it.
func (c *Cart) FindItem(productID int) int {
	for i := range c.Items {
		if c.Items[i].ID == productID {
			return i
		}
	}
	return -1
}

// ItemCount returns the total quantity across all line items. This is the
// badge count shown by the storefront UI.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Summary is the subtotal/shipping/tax/total breakdown for a cart. Values
// are exact; call Rounded before presenting them.
type Summary struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Summary derives the current totals. No rounding happens here, so repeated
// recomputation cannot compound rounding error.
func (c *Cart) Summary() Summary {
	var subtotal float64
	for _, item := range c.Items {
		subtotal += item.Subtotal()
	}

	var shipping float64
	if subtotal > 0 {
		shipping = ShippingFlatRate
	}
	tax := subtotal * TaxRate

	return Summary{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

// Rounded returns the summary with every value rounded to two decimal
// places, for the presentation edge only.
func (s Summary) Rounded() Summary {
	return Summary{
		Subtotal: round2(s.Subtotal),
		Shipping: round2(s.Shipping),
		Tax:      round2(s.Tax),
		Total:    round2(s.Total),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
