package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopverse/storefront/internal/catalog"
	"github.com/shopverse/storefront/internal/domain"
	"github.com/shopverse/storefront/internal/event"
	"github.com/shopverse/storefront/internal/repository"
	apperrors "github.com/shopverse/storefront/pkg/errors"
)

// MaxQuantityPerItem is the maximum quantity allowed for a single cart line.
const MaxQuantityPerItem = 100

// CartService implements the business logic for cart operations. All reads
// and writes go through the session's stored cart; the catalog is the only
// source of product data, so a line item always carries a snapshot of the
// product as it was when added.
type CartService struct {
	repo     repository.CartRepository
	catalog  *catalog.Catalog
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, cat *catalog.Catalog, producer *event.Producer, logger *slog.Logger) *CartService {
	return &CartService{
		repo:     repo,
		catalog:  cat,
		producer: producer,
		logger:   logger,
	}
}

// GetCart retrieves the cart for a session. If no cart exists, returns an
// empty cart.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// AddItem adds one unit of the given product to the session's cart. If the
// product is already in the cart its quantity is incremented. An unknown
// product ID is ignored and the cart is returned unchanged.
func (s *CartService) AddItem(ctx context.Context, sessionID string, productID int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get cart for add: %w", err)
	}

	product, ok := s.catalog.Get(productID)
	if !ok {
		s.logger.DebugContext(ctx, "add to cart ignored, product not in catalog",
			slog.String("session_id", sessionID),
			slog.Int("product_id", productID),
		)
		return cart, nil
	}

	if idx := cart.FindItem(productID); idx >= 0 {
		if cart.Items[idx].Quantity >= MaxQuantityPerItem {
			return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
		}
		cart.Items[idx].Quantity++
	} else {
		cart.Items = append(cart.Items, domain.LineItem{Product: product, Quantity: 1})
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sessionID),
		slog.Int("product_id", productID),
	)

	return cart, nil
}

// UpdateQuantity adjusts the quantity of a cart line by delta. A resulting
// quantity of zero or less removes the line. Adjusting a product that is not
// in the cart leaves the cart unchanged.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, productID, delta int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get cart for update: %w", err)
	}

	idx := cart.FindItem(productID)
	if idx < 0 {
		return cart, nil
	}

	newQty := cart.Items[idx].Quantity + delta
	switch {
	case newQty <= 0:
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	case newQty > MaxQuantityPerItem:
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	default:
		cart.Items[idx].Quantity = newQty
	}

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "cart quantity updated",
		slog.String("session_id", sessionID),
		slog.Int("product_id", productID),
		slog.Int("delta", delta),
	)

	return cart, nil
}

// RemoveItem removes a product's line from the cart. Removing a product that
// is not in the cart leaves the cart unchanged.
func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get cart for remove: %w", err)
	}

	idx := cart.FindItem(productID)
	if idx < 0 {
		return cart, nil
	}
	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_id", sessionID),
		slog.Int("product_id", productID),
	)

	return cart, nil
}

// Clear removes all items from the session's cart.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return err
	}

	if s.producer != nil {
		if err := s.producer.PublishCartCleared(ctx, sessionID); err != nil {
			s.logger.WarnContext(ctx, "failed to publish cart.cleared event",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("session_id", sessionID),
	)

	return nil
}

// publishCartUpdated publishes the cart.updated event best effort. Event
// delivery never fails the originating request.
func (s *CartService) publishCartUpdated(ctx context.Context, cart *domain.Cart) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.WarnContext(ctx, "failed to publish cart.updated event",
			slog.String("session_id", cart.SessionID),
			slog.String("error", err.Error()),
		)
	}
}
