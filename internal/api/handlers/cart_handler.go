package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yourusername/shop-backend/internal/api/middleware"
	"github.com/yourusername/shop-backend/internal/models"
	"github.com/yourusername/shop-backend/internal/service"
)

// --- Request / Response DTOs ---

type createCartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type cartResponse struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	TotalPrice string `json:"total_price"`
}

type cartLineResponse struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

func toCartResponse(c *models.Cart) cartResponse {
	return cartResponse{
		ID:         c.ID,
		UserID:     c.UserID,
		TotalPrice: c.TotalPrice.StringFixed(2),
	}
}

type CartHandler struct {
	carts *service.CartService
}

func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// GetCart handles GET /cart. 404 means "no active cart".
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, models.ErrInvalidCredentials)
		return
	}

	cart, err := h.carts.GetCart(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(cart))
}

// CreateCart handles POST /cart, opening a cart with one initial item.
func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, models.ErrInvalidCredentials)
		return
	}

	var req createCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, models.ValidationError("invalid request body"))
		return
	}
	if req.ProductID <= 0 {
		writeError(w, models.ValidationError("product_id is required"))
		return
	}

	cart, err := h.carts.CreateCart(r.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCartResponse(cart))
}

// SetItem handles POST and PUT /cart/items/{productID}, setting the
// quantity of one line item and adjusting the cart total.
func (h *CartHandler) SetItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, models.ErrInvalidCredentials)
		return
	}

	productID, err := pathID(r, "productID")
	if err != nil {
		writeError(w, models.ValidationError("invalid product id"))
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, models.ValidationError("invalid request body"))
		return
	}

	cart, err := h.carts.GetCart(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	cart, err = h.carts.AddOrUpdateItem(r.Context(), cart.ID, productID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(cart))
}

// RemoveItem handles DELETE /cart/items/{productID}. Removing the last
// item deletes the cart itself, answered with 204.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, models.ErrInvalidCredentials)
		return
	}

	productID, err := pathID(r, "productID")
	if err != nil {
		writeError(w, models.ValidationError("invalid product id"))
		return
	}

	cart, err := h.carts.GetCart(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	cart, err = h.carts.RemoveItem(r.Context(), cart.ID, productID)
	if err != nil {
		writeError(w, err)
		return
	}
	if cart == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(cart))
}

// ListItems handles GET /cart/items.
func (h *CartHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, models.ErrInvalidCredentials)
		return
	}

	cart, err := h.carts.GetCart(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	lines, err := h.carts.ListItems(r.Context(), cart.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]cartLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, cartLineResponse{ProductName: l.ProductName, Quantity: l.Quantity})
	}
	writeJSON(w, http.StatusOK, out)
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
