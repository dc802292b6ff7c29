package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/taskboard/internal/domain"
	"github.com/msomdec/taskboard/internal/service"
	"github.com/msomdec/taskboard/internal/store"
	"github.com/msomdec/taskboard/internal/validation"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	auth  *service.AuthService
	store *store.Store
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, store *store.Store) *AuthHandler {
	return &AuthHandler{auth: auth, store: store}
}

// HandleRegister creates a new account and returns a fresh token.
// POST /api/auth/register
// Request:  {"email":"...","password":"...","name":"..."}
// Response: 201 {token, user{id,email,name}}
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "Email, password, and name are required")
		return
	}
	if !validation.Email(req.Email) {
		writeError(w, http.StatusBadRequest, "Invalid email format")
		return
	}
	if ok, msg := validation.Password(req.Password); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	user, err := h.store.CreateUser(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "User already exists with this email")
			return
		}
		slog.Error("register user", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := h.auth.GenerateToken(user.ID)
	if err != nil {
		slog.Error("generate token after register", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeData(w, http.StatusCreated, AuthResponse{Token: token, User: toUserDTO(user)})
}

// HandleLogin verifies credentials and returns a fresh token.
// POST /api/auth/login
// Request:  {"email":"...","password":"..."}
// Response: 200 {token, user{id,email,name}}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if !validation.Email(req.Email) {
		writeError(w, http.StatusBadRequest, "Invalid email format")
		return
	}

	// Unknown email and wrong password answer identically so the
	// endpoint does not confirm which accounts exist.
	user, err := h.store.FindUserByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !h.store.CheckPassword(req.Password, user.Password) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.auth.GenerateToken(user.ID)
	if err != nil {
		slog.Error("generate token after login", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeData(w, http.StatusOK, AuthResponse{Token: token, User: toUserDTO(user)})
}
