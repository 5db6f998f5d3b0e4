package handler

import (
	"net/http"

	"cosmetics-store-api/internal/service"
	"cosmetics-store-api/pkg/apierror"
	"cosmetics-store-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// UsersHandler serves public user profiles.
type UsersHandler struct {
	auth   *service.AuthService
	ledger *service.LedgerService
}

// NewUsersHandler creates a users handler.
func NewUsersHandler(auth *service.AuthService, ledger *service.LedgerService) *UsersHandler {
	return &UsersHandler{auth: auth, ledger: ledger}
}

// List handles GET /api/v1/users
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize, apiErr := parsePagination(r)
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	users, total, err := h.auth.ListUsers(r.Context(), pageSize, pageOffset(page, pageSize))
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.JSONWithMeta(w, http.StatusOK, users, page, pageSize, total)
}

// Get handles GET /api/v1/users/{id}
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.Error(w, apierror.BadRequest("id must be a positive integer"))
		return
	}

	user, err := h.auth.User(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.OK(w, user)
}

// Cosmetics handles GET /api/v1/users/{id}/cosmetics
func (h *UsersHandler) Cosmetics(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		response.Error(w, apierror.BadRequest("id must be a positive integer"))
		return
	}
	page, pageSize, apiErr := parsePagination(r)
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	if _, err := h.auth.User(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	items, total, err := h.ledger.Inventory(r.Context(), id, pageSize, pageOffset(page, pageSize))
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.JSONWithMeta(w, http.StatusOK, items, page, pageSize, total)
}
