package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/yourusername/shop-backend/internal/models"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto status codes. Store and
// other unexpected errors are logged and collapsed into a generic 500
// so internals never leak to the client.
func writeError(w http.ResponseWriter, err error) {
	var vErr models.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Error()})
	case models.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: notFoundMessage(err)})
	case models.IsConflict(err):
		writeJSON(w, http.StatusConflict, errorResponse{Error: conflictMessage(err)})
	case errors.Is(err, models.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	default:
		zap.S().Errorw("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrCartNotFound):
		return "cart not found"
	case errors.Is(err, models.ErrProductNotFound):
		return "product not found"
	case errors.Is(err, models.ErrLineItemNotFound):
		return "item not in cart"
	case errors.Is(err, models.ErrUserNotFound):
		return "user not found"
	case errors.Is(err, models.ErrOrderNotFound):
		return "order not found"
	}
	return "not found"
}

func conflictMessage(err error) string {
	if errors.Is(err, models.ErrEmailExists) {
		return "email already registered"
	}
	return "user already has an active cart"
}
