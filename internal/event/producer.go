package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopverse/storefront/internal/domain"
	pkgkafka "github.com/shopverse/storefront/pkg/kafka"
)

// Kafka topics for cart and wishlist domain events.
var (
	TopicCartUpdated     = pkgkafka.Topic("cart", "updated")
	TopicCartCleared     = pkgkafka.Topic("cart", "cleared")
	TopicWishlistUpdated = pkgkafka.Topic("wishlist", "updated")
	TopicWishlistCleared = pkgkafka.Topic("wishlist", "cleared")
)

// Aggregate type constants.
const (
	AggregateTypeCart     = "cart"
	AggregateTypeWishlist = "wishlist"
)

// Source identifier for events originating from this service.
const SourceStorefront = "storefront"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID string         `json:"session_id"`
	Items     []CartItemData `json:"items"`
	ItemCount int            `json:"item_count"`
	Subtotal  float64        `json:"subtotal"`
	Total     float64        `json:"total"`
}

// CartItemData is the item payload within cart events.
type CartItemData struct {
	ProductID int     `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

// WishlistUpdatedData is the payload for a wishlist.updated event.
type WishlistUpdatedData struct {
	SessionID  string `json:"session_id"`
	ProductIDs []int  `json:"product_ids"`
	ItemCount  int    `json:"item_count"`
}

// WishlistClearedData is the payload for a wishlist.cleared event.
type WishlistClearedData struct {
	SessionID string `json:"session_id"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	items := make([]CartItemData, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = CartItemData{
			ProductID: item.ID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
	}

	summary := cart.Summary().Rounded()
	data := CartUpdatedData{
		SessionID: cart.SessionID,
		Items:     items,
		ItemCount: cart.ItemCount(),
		Subtotal:  summary.Subtotal,
		Total:     summary.Total,
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.SessionID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("session_id", cart.SessionID),
		slog.Int("item_count", cart.ItemCount()),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, sessionID string) error {
	data := CartClearedData{SessionID: sessionID}

	event, err := pkgkafka.NewEvent(TopicCartCleared, sessionID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("session_id", sessionID),
	)

	return nil
}

// PublishWishlistUpdated publishes a wishlist.updated event.
func (p *Producer) PublishWishlistUpdated(ctx context.Context, wl *domain.Wishlist) error {
	ids := make([]int, len(wl.Items))
	for i, item := range wl.Items {
		ids[i] = item.ID
	}

	data := WishlistUpdatedData{
		SessionID:  wl.SessionID,
		ProductIDs: ids,
		ItemCount:  len(wl.Items),
	}

	event, err := pkgkafka.NewEvent(TopicWishlistUpdated, wl.SessionID, AggregateTypeWishlist, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create wishlist.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicWishlistUpdated, event); err != nil {
		return fmt.Errorf("publish wishlist.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published wishlist.updated event",
		slog.String("session_id", wl.SessionID),
		slog.Int("item_count", len(wl.Items)),
	)

	return nil
}

// PublishWishlistCleared publishes a wishlist.cleared event.
func (p *Producer) PublishWishlistCleared(ctx context.Context, sessionID string) error {
	data := WishlistClearedData{SessionID: sessionID}

	event, err := pkgkafka.NewEvent(TopicWishlistCleared, sessionID, AggregateTypeWishlist, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create wishlist.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicWishlistCleared, event); err != nil {
		return fmt.Errorf("publish wishlist.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published wishlist.cleared event",
		slog.String("session_id", sessionID),
	)

	return nil
}
