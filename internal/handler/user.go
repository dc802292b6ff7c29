package handler

import (
	"errors"
	"net/http"

	"github.com/msomdec/taskboard/internal/domain"
	"github.com/msomdec/taskboard/internal/store"
)

// UserHandler handles the per-user onboarding tour flag.
type UserHandler struct {
	store *store.Store
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(store *store.Store) *UserHandler {
	return &UserHandler{store: store}
}

// HandleGetTourStatus reads the caller's tour flag.
// GET /api/user/tour-status
func (h *UserHandler) HandleGetTourStatus(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	completed, err := h.store.UserTourStatus(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"tourCompleted": completed})
}

// HandleSetTourStatus writes the caller's tour flag.
// PUT /api/user/tour-status
// Request: {"tourCompleted":bool}
func (h *UserHandler) HandleSetTourStatus(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		TourCompleted *bool `json:"tourCompleted"`
	}
	if err := readJSON(r, &req); err != nil || req.TourCompleted == nil {
		writeError(w, http.StatusBadRequest, "tourCompleted must be a boolean")
		return
	}

	completed, err := h.store.SetUserTourStatus(r.Context(), user.ID, *req.TourCompleted)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"tourCompleted": completed})
}
