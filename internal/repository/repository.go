package repository

import (
	"context"

	"github.com/shopverse/storefront/internal/domain"
)

// CartRepository defines the interface for cart persistence operations.
// Implementations must treat a missing or unreadable stored cart as an empty
// cart, never as an error: the stored state is a cache of the session's
// choices, and losing it degrades to an empty cart rather than a failure.
type CartRepository interface {
	// Get retrieves the cart for a session. A missing or malformed stored
	// value yields an empty cart and a nil error.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists the whole cart, replacing any existing value for the
	// session. Failures are reported but leave the stored state untouched.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the stored cart for a session. Deleting an absent cart
	// is not an error.
	Delete(ctx context.Context, sessionID string) error
}

// WishlistRepository defines the interface for wishlist persistence, with
// the same tolerance rules as CartRepository.
type WishlistRepository interface {
	Get(ctx context.Context, sessionID string) (*domain.Wishlist, error)
	Save(ctx context.Context, wishlist *domain.Wishlist) error
	Delete(ctx context.Context, sessionID string) error
}
