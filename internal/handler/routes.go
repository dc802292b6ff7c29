package handler

import (
	"net/http"

	"github.com/msomdec/taskboard/internal/service"
	"github.com/msomdec/taskboard/internal/store"
)

// RegisterRoutes sets up all HTTP routes on the given mux. The reorder
// routes are literal patterns, so they take precedence over the {id}
// wildcards.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, st *store.Store, limiter *service.LoginLimiter) {
	authHandler := NewAuthHandler(auth, st)
	boardHandler := NewBoardHandler(st)
	taskHandler := NewTaskHandler(st)
	userHandler := NewUserHandler(st)

	protect := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, h)
	}
	throttle := func(h http.HandlerFunc) http.Handler {
		if limiter == nil {
			return h
		}
		return RateLimit(limiter, h)
	}

	mux.Handle("POST /api/auth/register", throttle(authHandler.HandleRegister))
	mux.Handle("POST /api/auth/login", throttle(authHandler.HandleLogin))

	mux.Handle("GET /api/boards", protect(boardHandler.HandleList))
	mux.Handle("POST /api/boards", protect(boardHandler.HandleCreate))
	mux.Handle("PUT /api/boards/reorder", protect(boardHandler.HandleReorder))
	mux.Handle("GET /api/boards/{id}", protect(boardHandler.HandleGet))
	mux.Handle("PUT /api/boards/{id}", protect(boardHandler.HandleUpdate))
	mux.Handle("DELETE /api/boards/{id}", protect(boardHandler.HandleDelete))

	mux.Handle("GET /api/tasks", protect(taskHandler.HandleList))
	mux.Handle("POST /api/tasks", protect(taskHandler.HandleCreate))
	mux.Handle("PUT /api/tasks/reorder", protect(taskHandler.HandleReorder))
	mux.Handle("GET /api/tasks/{id}", protect(taskHandler.HandleGet))
	mux.Handle("PUT /api/tasks/{id}", protect(taskHandler.HandleUpdate))
	mux.Handle("DELETE /api/tasks/{id}", protect(taskHandler.HandleDelete))

	mux.Handle("GET /api/user/tour-status", protect(userHandler.HandleGetTourStatus))
	mux.Handle("PUT /api/user/tour-status", protect(userHandler.HandleSetTourStatus))

	mux.HandleFunc("GET /healthz", HandleHealthz)
}
