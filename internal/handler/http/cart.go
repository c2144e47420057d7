package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopverse/storefront/internal/domain"
	"github.com/shopverse/storefront/internal/service"
	"github.com/shopverse/storefront/pkg/httputil"
	"github.com/shopverse/storefront/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding an item to the cart.
type AddItemRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
}

// UpdateQuantityRequest is the JSON request body for adjusting a line's
// quantity. Delta may be negative; a delta that takes the quantity to zero
// or below removes the line.
type UpdateQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// --- Response DTOs ---

// CartResponse is the cart payload returned by every cart endpoint: the
// line items plus the derived badge count and totals, rounded for display.
type CartResponse struct {
	SessionID string            `json:"session_id"`
	Items     []domain.LineItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Summary   domain.Summary    `json:"summary"`
}

func newCartResponse(cart *domain.Cart) CartResponse {
	items := cart.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	return CartResponse{
		SessionID: cart.SessionID,
		Items:     items,
		ItemCount: cart.ItemCount(),
		Summary:   cart.Summary().Rounded(),
	}
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	cart, err := h.service.GetCart(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartResponse(cart)})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.service.AddItem(r.Context(), sessionID, req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartResponse(cart)})
}

// UpdateQuantity handles PUT /api/v1/cart/items/{productID}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	productID, ok := httputil.ParseProductID(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.service.UpdateQuantity(r.Context(), sessionID, productID, req.Delta)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartResponse(cart)})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	productID, ok := httputil.ParseProductID(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}

	cart, err := h.service.RemoveItem(r.Context(), sessionID, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartResponse(cart)})
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	if err := h.service.Clear(r.Context(), sessionID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "cleared"}})
}
