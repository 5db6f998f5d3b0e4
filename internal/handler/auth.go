package handler

import (
	"net/http"

	"cosmetics-store-api/internal/middleware"
	"cosmetics-store-api/internal/service"
	"cosmetics-store-api/pkg/apierror"
	"cosmetics-store-api/pkg/response"
)

// AuthHandler handles registration, login and sessions.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Username string `json:"username" validate:"required,alphanum,min=3,max=32"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if apiErr := decodeJSON(r, &req, false); apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	res, err := h.auth.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Created(w, res)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if apiErr := decodeJSON(r, &req, false); apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.OK(w, res)
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(middleware.SessionTokenHeader)
	if token == "" {
		response.Error(w, apierror.BadRequest(middleware.SessionTokenHeader+" header required"))
		return
	}

	if err := h.auth.Logout(r.Context(), token); err != nil {
		writeError(w, r, err)
		return
	}
	response.OK(w, map[string]string{"status": "logged_out"})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id := middleware.UserID(r.Context())
	if id == nil {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	user, err := h.auth.User(r.Context(), *id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.OK(w, user)
}
