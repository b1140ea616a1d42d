package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/yourusername/shop-backend/internal/api/middleware"
	"github.com/yourusername/shop-backend/internal/models"
	"github.com/yourusername/shop-backend/internal/service"
)

type updateUserRequest struct {
	Name string `json:"name"`
}

type UserHandler struct {
	auth *service.AuthService
}

func NewUserHandler(auth *service.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

// GetUser handles GET /users/{userID}. Users see only themselves;
// anyone else's profile reads as absent.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	authedID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, models.ErrInvalidCredentials)
		return
	}

	requestedID, err := pathID(r, "userID")
	if err != nil || requestedID != authedID {
		writeError(w, models.ErrUserNotFound)
		return
	}

	user, err := h.auth.GetUser(r.Context(), authedID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// UpdateUser handles PUT /users/{userID}. Only the name is mutable.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	authedID, ok := middleware.UserID(r)
	if !ok {
		writeError(w, models.ErrInvalidCredentials)
		return
	}

	requestedID, err := pathID(r, "userID")
	if err != nil || requestedID != authedID {
		writeError(w, models.ErrUserNotFound)
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, models.ValidationError("invalid request body"))
		return
	}

	user, err := h.auth.UpdateUser(r.Context(), authedID, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(user))
}
