package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/msomdec/taskboard/internal/domain"
	"github.com/msomdec/taskboard/internal/store"
	"github.com/msomdec/taskboard/internal/validation"
)

// TaskHandler handles task CRUD and reordering.
type TaskHandler struct {
	store *store.Store
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(store *store.Store) *TaskHandler {
	return &TaskHandler{store: store}
}

// HandleList returns a board's tasks in display order.
// GET /api/tasks?boardId=...
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	boardID := r.URL.Query().Get("boardId")
	if boardID == "" {
		writeError(w, http.StatusBadRequest, "Board ID is required")
		return
	}

	tasks := h.store.TasksByBoard(r.Context(), boardID, user.ID)
	writeData(w, http.StatusOK, tasks)
}

// HandleCreate creates a task at the end of a board's order.
// POST /api/tasks
// Request: {"boardId":"...","title":"...","description":"...","dueDate":"..."}
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		BoardID     string `json:"boardId"`
		Title       string `json:"title"`
		Description string `json:"description"`
		DueDate     string `json:"dueDate"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.BoardID == "" || !validation.TaskTitle(req.Title) {
		writeError(w, http.StatusBadRequest, "Board ID and task title are required (title must be less than 200 characters)")
		return
	}
	if !validation.DueDate(req.DueDate) {
		writeError(w, http.StatusBadRequest, "Invalid due date format")
		return
	}

	task, err := h.store.CreateTask(r.Context(), req.BoardID, user.ID,
		strings.TrimSpace(req.Title), strings.TrimSpace(req.Description), req.DueDate)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Board not found or access denied")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeData(w, http.StatusCreated, task)
}

// HandleGet returns a single owned task.
// GET /api/tasks/{id}
func (h *TaskHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	task, err := h.store.TaskByID(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Task not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeData(w, http.StatusOK, task)
}

// HandleUpdate applies a partial update to an owned task. Only the
// fields present in the body are touched.
// PUT /api/tasks/{id}
// Request: {"title"?,"description"?,"status"?,"dueDate"?}
func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
		DueDate     *string `json:"dueDate"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var update domain.TaskUpdate

	if req.Title != nil {
		if !validation.TaskTitle(*req.Title) {
			writeError(w, http.StatusBadRequest, "Task title must be less than 200 characters and not empty")
			return
		}
		trimmed := strings.TrimSpace(*req.Title)
		update.Title = &trimmed
	}
	if req.Description != nil {
		trimmed := strings.TrimSpace(*req.Description)
		update.Description = &trimmed
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		if status != domain.TaskStatusPending && status != domain.TaskStatusCompleted {
			writeError(w, http.StatusBadRequest, `Status must be either "pending" or "completed"`)
			return
		}
		update.Status = &status
	}
	if req.DueDate != nil {
		if !validation.DueDate(*req.DueDate) {
			writeError(w, http.StatusBadRequest, "Invalid due date format")
			return
		}
		update.DueDate = req.DueDate
	}

	task, err := h.store.UpdateTask(r.Context(), r.PathValue("id"), user.ID, update)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Task not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeData(w, http.StatusOK, task)
}

// HandleReorder applies a caller-supplied full task sequence for one board.
// PUT /api/tasks/reorder
// Request: {"boardId":"...","taskIds":["...", ...]}
func (h *TaskHandler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var req struct {
		BoardID string   `json:"boardId"`
		TaskIDs []string `json:"taskIds"`
	}
	if err := readJSON(r, &req); err != nil || req.BoardID == "" || req.TaskIDs == nil {
		writeError(w, http.StatusBadRequest, "Task IDs array and board ID are required")
		return
	}

	tasks, err := h.store.ReorderTasks(r.Context(), req.BoardID, user.ID, req.TaskIDs)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Board not found or access denied")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeData(w, http.StatusOK, tasks)
}

// HandleDelete removes an owned task.
// DELETE /api/tasks/{id}
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	if !h.store.DeleteTask(r.Context(), r.PathValue("id"), user.ID) {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}
	writeData(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}
