package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shopverse/storefront/internal/catalog"
	"github.com/shopverse/storefront/internal/domain"
	apperrors "github.com/shopverse/storefront/pkg/errors"
	"github.com/shopverse/storefront/pkg/httputil"
)

// defaultFeaturedLimit bounds the home-page product slice.
const defaultFeaturedLimit = 4

// CatalogHandler handles HTTP requests for product catalog endpoints. The
// catalog is read only; listing supports search, category filtering, and
// sorting through query parameters.
type CatalogHandler struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(cat *catalog.Catalog, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: cat,
		logger:  logger,
	}
}

// ProductListResponse is the filtered listing payload. Total counts the
// matches, which equals len(Products) since listing is not paginated.
type ProductListResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	if !h.catalog.Loaded() {
		httputil.WriteError(w, r, apperrors.CatalogUnavailable("product catalog is not loaded"), h.logger)
		return
	}

	q := r.URL.Query()

	sortKey, ok := catalog.ParseSortKey(q.Get("sort"))
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "unknown sort key: " + q.Get("sort")},
		})
		return
	}

	result := catalog.Filter(h.catalog.Products(), catalog.Criteria{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Sort:     sortKey,
	})

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ProductListResponse{
		Products: result.Products,
		Total:    result.Total,
	}})
}

// FeaturedProducts handles GET /api/v1/products/featured
func (h *CatalogHandler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	if !h.catalog.Loaded() {
		httputil.WriteError(w, r, apperrors.CatalogUnavailable("product catalog is not loaded"), h.logger)
		return
	}

	limit := defaultFeaturedLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "invalid limit: " + raw},
			})
			return
		}
		limit = n
	}

	products := h.catalog.Featured(limit)

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ProductListResponse{
		Products: products,
		Total:    len(products),
	}})
}

// GetProduct handles GET /api/v1/products/{productID}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	if !h.catalog.Loaded() {
		httputil.WriteError(w, r, apperrors.CatalogUnavailable("product catalog is not loaded"), h.logger)
		return
	}

	productID, ok := httputil.ParseProductID(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}

	product, found := h.catalog.Get(productID)
	if !found {
		httputil.WriteError(w, r, apperrors.NotFound("product", strconv.Itoa(productID)), h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}
