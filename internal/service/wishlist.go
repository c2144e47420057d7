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

// WishlistService implements the business logic for wishlist operations.
// The wishlist behaves as an ordered set of products keyed by product ID:
// adding a product twice keeps a single entry, and insertion order is
// preserved across saves.
type WishlistService struct {
	repo     repository.WishlistRepository
	catalog  *catalog.Catalog
	producer *event.Producer
	logger   *slog.Logger
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(repo repository.WishlistRepository, cat *catalog.Catalog, producer *event.Producer, logger *slog.Logger) *WishlistService {
	return &WishlistService{
		repo:     repo,
		catalog:  cat,
		producer: producer,
		logger:   logger,
	}
}

// Get retrieves the wishlist for a session. If none exists, returns an empty
// wishlist.
func (s *WishlistService) Get(ctx context.Context, sessionID string) (*domain.Wishlist, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	wl, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get wishlist: %w", err)
	}

	return wl, nil
}

// Add puts the given product on the session's wishlist. A product already on
// the list, or a product ID not in the catalog, leaves the list unchanged.
func (s *WishlistService) Add(ctx context.Context, sessionID string, productID int) (*domain.Wishlist, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	wl, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get wishlist for add: %w", err)
	}

	if wl.Contains(productID) {
		return wl, nil
	}

	product, ok := s.catalog.Get(productID)
	if !ok {
		s.logger.DebugContext(ctx, "add to wishlist ignored, product not in catalog",
			slog.String("session_id", sessionID),
			slog.Int("product_id", productID),
		)
		return wl, nil
	}

	wl.Items = append(wl.Items, product)

	if err := s.repo.Save(ctx, wl); err != nil {
		return nil, err
	}

	s.publishWishlistUpdated(ctx, wl)

	s.logger.InfoContext(ctx, "item added to wishlist",
		slog.String("session_id", sessionID),
		slog.Int("product_id", productID),
	)

	return wl, nil
}

// Remove takes the given product off the session's wishlist. Removing a
// product that is not on the list leaves the list unchanged.
func (s *WishlistService) Remove(ctx context.Context, sessionID string, productID int) (*domain.Wishlist, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	wl, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get wishlist for remove: %w", err)
	}

	idx := wl.IndexOf(productID)
	if idx < 0 {
		return wl, nil
	}
	wl.Items = append(wl.Items[:idx], wl.Items[idx+1:]...)

	if err := s.repo.Save(ctx, wl); err != nil {
		return nil, err
	}

	s.publishWishlistUpdated(ctx, wl)

	s.logger.InfoContext(ctx, "item removed from wishlist",
		slog.String("session_id", sessionID),
		slog.Int("product_id", productID),
	)

	return wl, nil
}

// Toggle flips the membership of the given product: present becomes absent
// and absent becomes present. The membership check happens exactly once, so
// a toggle is a single add or a single remove, never both. The returned bool
// reports whether the product is on the list after the toggle.
func (s *WishlistService) Toggle(ctx context.Context, sessionID string, productID int) (*domain.Wishlist, bool, error) {
	if sessionID == "" {
		return nil, false, apperrors.InvalidInput("session id is required")
	}

	wl, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, false, fmt.Errorf("get wishlist for toggle: %w", err)
	}

	idx := wl.IndexOf(productID)
	if idx >= 0 {
		wl.Items = append(wl.Items[:idx], wl.Items[idx+1:]...)

		if err := s.repo.Save(ctx, wl); err != nil {
			return nil, false, err
		}

		s.publishWishlistUpdated(ctx, wl)

		s.logger.InfoContext(ctx, "wishlist toggle removed item",
			slog.String("session_id", sessionID),
			slog.Int("product_id", productID),
		)

		return wl, false, nil
	}

	product, ok := s.catalog.Get(productID)
	if !ok {
		s.logger.DebugContext(ctx, "wishlist toggle ignored, product not in catalog",
			slog.String("session_id", sessionID),
			slog.Int("product_id", productID),
		)
		return wl, false, nil
	}

	wl.Items = append(wl.Items, product)

	if err := s.repo.Save(ctx, wl); err != nil {
		return nil, false, err
	}

	s.publishWishlistUpdated(ctx, wl)

	s.logger.InfoContext(ctx, "wishlist toggle added item",
		slog.String("session_id", sessionID),
		slog.Int("product_id", productID),
	)

	return wl, true, nil
}

// Contains reports whether the given product is on the session's wishlist.
func (s *WishlistService) Contains(ctx context.Context, sessionID string, productID int) (bool, error) {
	if sessionID == "" {
		return false, apperrors.InvalidInput("session id is required")
	}

	wl, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return false, fmt.Errorf("get wishlist for contains: %w", err)
	}

	return wl.Contains(productID), nil
}

// Clear removes all items from the session's wishlist.
func (s *WishlistService) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return err
	}

	if s.producer != nil {
		if err := s.producer.PublishWishlistCleared(ctx, sessionID); err != nil {
			s.logger.WarnContext(ctx, "failed to publish wishlist.cleared event",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "wishlist cleared",
		slog.String("session_id", sessionID),
	)

	return nil
}

func (s *WishlistService) publishWishlistUpdated(ctx context.Context, wl *domain.Wishlist) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishWishlistUpdated(ctx, wl); err != nil {
		s.logger.WarnContext(ctx, "failed to publish wishlist.updated event",
			slog.String("session_id", wl.SessionID),
			slog.String("error", err.Error()),
		)
	}
}
