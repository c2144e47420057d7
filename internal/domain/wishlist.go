package domain

// Wishlist holds the products a session has saved for later. It has set
// semantics on product id (adding a product twice is a no-op) while keeping
// insertion order for display.
type Wishlist struct {
	SessionID string    `json:"session_id"`
	Items     []Product `json:"items"`
}

// NewWishlist creates an empty wishlist for the given session.
func NewWishlist(sessionID string) *Wishlist {
	return &Wishlist{
		SessionID: sessionID,
		Items:     []Product{},
	}
}

// IndexOf returns the position of the given product id, or -1 when absent.
func (w *Wishlist) IndexOf(productID int) int {
	for i := range w.Items {
		if w.Items[i].ID == productID {
			return i
		}
	}
	return -1
}

// Contains reports whether the wishlist holds the given product id.
func (w *Wishlist) Contains(productID int) bool {
	return w.IndexOf(productID) >= 0
}
