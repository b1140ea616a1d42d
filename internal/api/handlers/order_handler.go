package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/yourusername/shop-backend/internal/api/middleware"
	"github.com/yourusername/shop-backend/internal/models"
	"github.com/yourusername/shop-backend/internal/service"
)

type orderResponse struct {
	ID          int64               `json:"id"`
	OrderNumber string              `json:"order_number"`
	Status      string              `json:"status"`
	TotalPrice  string              `json:"total_price"`
	Items       []orderItemResponse `json:"items,omitempty"`
}

type orderItemResponse struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
}

func toOrderResponse(o *models.Order) orderResponse {
	out := orderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber.String(),
		Status:      o.Status,
		TotalPrice:  o.TotalPrice.StringFixed(2),
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, orderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice.StringFixed(2),
			Quantity:    it.Quantity,
		})
	}
	return out
}

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Checkout handles POST /cart/checkout. A missing product behind a
// line item is a store integrity problem, not a client error, so it
// maps to 500 here rather than the usual 404.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, models.ErrInvalidCredentials)
		return
	}

	order, err := h.orders.Checkout(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrCartNotFound) {
			writeError(w, err)
			return
		}
		zap.S().Errorw("checkout failed", "user_id", userID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, models.ErrInvalidCredentials)
		return
	}

	orders, err := h.orders.ListOrders(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]orderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, models.ErrInvalidCredentials)
		return
	}

	orderID, err := pathID(r, "orderID")
	if err != nil {
		writeError(w, models.ValidationError("invalid order id"))
		return
	}

	order, err := h.orders.GetOrder(r.Context(), userID, orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}
