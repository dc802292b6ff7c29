package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/msomdec/taskboard/internal/domain"
	"github.com/msomdec/taskboard/internal/store"
	"github.com/msomdec/taskboard/internal/validation"
)

// BoardHandler handles board CRUD and reordering.
type BoardHandler struct {
	store *store.Store
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(store *store.Store) *BoardHandler {
	return &BoardHandler{store: store}
}

// HandleList returns the caller's boards in display order.
// GET /api/boards
func (h *BoardHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	boards := h.store.BoardsByUser(r.Context(), user.ID)
	writeData(w, http.StatusOK, boards)
}

// HandleCreate appends a new board at the end of the caller's order.
// POST /api/boards
// Request: {"title":"..."}
func (h *BoardHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		Title string `json:"title"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validation.BoardTitle(req.Title) {
		writeError(w, http.StatusBadRequest, "Board title is required and must be less than 100 characters")
		return
	}

	board, err := h.store.CreateBoard(r.Context(), user.ID, strings.TrimSpace(req.Title))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeData(w, http.StatusCreated, board)
}

// HandleGet returns a single owned board.
// GET /api/boards/{id}
func (h *BoardHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	board, err := h.store.BoardByID(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Board not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeData(w, http.StatusOK, board)
}

// HandleUpdate renames an owned board.
// PUT /api/boards/{id}
// Request: {"title":"..."}
func (h *BoardHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		Title string `json:"title"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validation.BoardTitle(req.Title) {
		writeError(w, http.StatusBadRequest, "Board title is required and must be less than 100 characters")
		return
	}

	board, err := h.store.UpdateBoard(r.Context(), r.PathValue("id"), user.ID, strings.TrimSpace(req.Title))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Board not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeData(w, http.StatusOK, board)
}

// HandleReorder applies a caller-supplied full board sequence.
// PUT /api/boards/reorder
// Request: {"boardIds":["...", ...]}
func (h *BoardHandler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		BoardIDs []string `json:"boardIds"`
	}
	if err := readJSON(r, &req); err != nil || req.BoardIDs == nil {
		writeError(w, http.StatusBadRequest, "Board IDs array is required")
		return
	}

	boards := h.store.ReorderBoards(r.Context(), user.ID, req.BoardIDs)
	writeData(w, http.StatusOK, boards)
}

// HandleDelete removes an owned board and all of its tasks.
// DELETE /api/boards/{id}
func (h *BoardHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	if !h.store.DeleteBoard(r.Context(), r.PathValue("id"), user.ID) {
		writeError(w, http.StatusNotFound, "Board not found")
		return
	}
	writeData(w, http.StatusOK, map[string]string{"message": "Board deleted successfully"})
}
