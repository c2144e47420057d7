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

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	service *service.WishlistService
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(svc *service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		service: svc,
		logger:  logger,
	}
}

// AddWishlistItemRequest is the JSON request body for adding a product to
// the wishlist.
type AddWishlistItemRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
}

// WishlistResponse is the wishlist payload returned by every wishlist
// endpoint.
type WishlistResponse struct {
	SessionID string           `json:"session_id"`
	Items     []domain.Product `json:"items"`
	ItemCount int              `json:"item_count"`
}

// ToggleResponse reports the wishlist state after a toggle.
type ToggleResponse struct {
	WishlistResponse
	InWishlist bool `json:"in_wishlist"`
}

func newWishlistResponse(wl *domain.Wishlist) WishlistResponse {
	items := wl.Items
	if items == nil {
		items = []domain.Product{}
	}
	return WishlistResponse{
		SessionID: wl.SessionID,
		Items:     items,
		ItemCount: len(items),
	}
}

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	wl, err := h.service.Get(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newWishlistResponse(wl)})
}

// AddItem handles POST /api/v1/wishlist/items
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	var req AddWishlistItemRequest
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

	wl, err := h.service.Add(r.Context(), sessionID, req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newWishlistResponse(wl)})
}

// RemoveItem handles DELETE /api/v1/wishlist/items/{productID}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	productID, ok := httputil.ParseProductID(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}

	wl, err := h.service.Remove(r.Context(), sessionID, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newWishlistResponse(wl)})
}

// ToggleItem handles POST /api/v1/wishlist/items/{productID}/toggle
func (h *WishlistHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	productID, ok := httputil.ParseProductID(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}

	wl, present, err := h.service.Toggle(r.Context(), sessionID, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: ToggleResponse{
		WishlistResponse: newWishlistResponse(wl),
		InWishlist:       present,
	}})
}

// ContainsItem handles GET /api/v1/wishlist/items/{productID}
func (h *WishlistHandler) ContainsItem(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	productID, ok := httputil.ParseProductID(w, chi.URLParam(r, "productID"))
	if !ok {
		return
	}

	present, err := h.service.Contains(r.Context(), sessionID, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]bool{"in_wishlist": present}})
}

// ClearWishlist handles DELETE /api/v1/wishlist
func (h *WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	if err := h.service.Clear(r.Context(), sessionID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "cleared"}})
}
