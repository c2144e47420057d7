package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopverse/storefront/internal/domain"
	apperrors "github.com/shopverse/storefront/pkg/errors"
)

const wishlistKeyPrefix = "wishlist:"

// WishlistRepository implements repository.WishlistRepository on Redis. A
// wishlist is stored as a JSON array of product snapshots under
// wishlist:<sessionID>, with the same tolerance rules as the cart.
type WishlistRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewWishlistRepository creates a Redis-backed wishlist repository.
func NewWishlistRepository(client *redis.Client, ttl time.Duration, logger *slog.Logger) *WishlistRepository {
	return &WishlistRepository{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get retrieves the wishlist for a session; missing or malformed stored
// values yield an empty wishlist.
func (r *WishlistRepository) Get(ctx context.Context, sessionID string) (*domain.Wishlist, error) {
	key := wishlistKeyPrefix + sessionID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return domain.NewWishlist(sessionID), nil
		}
		return nil, fmt.Errorf("redis get wishlist: %w", err)
	}

	var items []domain.Product
	if err := json.Unmarshal(data, &items); err != nil {
		r.logger.WarnContext(ctx, "discarding malformed stored wishlist",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		return domain.NewWishlist(sessionID), nil
	}

	return &domain.Wishlist{SessionID: sessionID, Items: items}, nil
}

// Save persists the wishlist's product snapshots with the configured TTL.
func (r *WishlistRepository) Save(ctx context.Context, wishlist *domain.Wishlist) error {
	key := wishlistKeyPrefix + wishlist.SessionID

	data, err := json.Marshal(wishlist.Items)
	if err != nil {
		return apperrors.StorageWrite("marshal wishlist", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return apperrors.StorageWrite("redis set wishlist", err)
	}

	return nil
}

// Delete removes the stored wishlist for a session.
func (r *WishlistRepository) Delete(ctx context.Context, sessionID string) error {
	key := wishlistKeyPrefix + sessionID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return apperrors.StorageWrite("redis del wishlist", err)
	}

	return nil
}
