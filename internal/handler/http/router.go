package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopverse/storefront/internal/catalog"
	"github.com/shopverse/storefront/internal/service"
	"github.com/shopverse/storefront/pkg/health"
	"github.com/shopverse/storefront/pkg/middleware"
)

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	cat *catalog.Catalog,
	cartService *service.CartService,
	wishlistService *service.WishlistService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	pprofCIDRs []string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, pprofCIDRs, logger)

	catalogHandler := NewCatalogHandler(cat, logger)
	cartHandler := NewCartHandler(cartService, logger)
	wishlistHandler := NewWishlistHandler(wishlistService, logger)

	// Catalog endpoints are session free.
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", catalogHandler.ListProducts)
		r.Get("/featured", catalogHandler.FeaturedProducts)
		r.Get("/{productID}", catalogHandler.GetProduct)
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionFromHeader)

		r.Get("/", cartHandler.GetCart)
		r.Delete("/", cartHandler.ClearCart)

		r.Post("/items", cartHandler.AddItem)
		r.Put("/items/{productID}", cartHandler.UpdateQuantity)
		r.Delete("/items/{productID}", cartHandler.RemoveItem)
	})

	r.Route("/api/v1/wishlist", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionFromHeader)

		r.Get("/", wishlistHandler.GetWishlist)
		r.Delete("/", wishlistHandler.ClearWishlist)

		r.Post("/items", wishlistHandler.AddItem)
		r.Get("/items/{productID}", wishlistHandler.ContainsItem)
		r.Delete("/items/{productID}", wishlistHandler.RemoveItem)
		r.Post("/items/{productID}/toggle", wishlistHandler.ToggleItem)
	})

	return r
}
