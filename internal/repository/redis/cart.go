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

const cartKeyPrefix = "cart:"

// CartRepository implements repository.CartRepository on Redis. Each cart is
// stored as a JSON array of line items under cart:<sessionID>, replaced as a
// whole on every write.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCartRepository creates a Redis-backed cart repository.
func NewCartRepository(client *redis.Client, ttl time.Duration, logger *slog.Logger) *CartRepository {
	return &CartRepository{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get retrieves the cart for a session. A missing key or a stored value that
// no longer parses yields an empty cart: stale or corrupt state must never
// block the session from shopping.
func (r *CartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	key := cartKeyPrefix + sessionID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return domain.NewCart(sessionID), nil
		}
		return nil, fmt.Errorf("redis get cart: %w", err)
	}

	var items []domain.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		r.logger.WarnContext(ctx, "discarding malformed stored cart",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		return domain.NewCart(sessionID), nil
	}

	return &domain.Cart{SessionID: sessionID, Items: items}, nil
}

// Save persists the cart's line items with the configured TTL.
func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	key := cartKeyPrefix + cart.SessionID

	data, err := json.Marshal(cart.Items)
	if err != nil {
		return apperrors.StorageWrite("marshal cart", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return apperrors.StorageWrite("redis set cart", err)
	}

	return nil
}

// Delete removes the stored cart for a session.
func (r *CartRepository) Delete(ctx context.Context, sessionID string) error {
	key := cartKeyPrefix + sessionID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return apperrors.StorageWrite("redis del cart", err)
	}

	return nil
}
