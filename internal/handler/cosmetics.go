package handler

import (
	"net/http"

	"cosmetics-store-api/internal/middleware"
	"cosmetics-store-api/internal/service"
	"cosmetics-store-api/pkg/response"
)

// CosmeticsHandler serves the enriched catalog.
type CosmeticsHandler struct {
	catalog *service.CatalogService
}

// NewCosmeticsHandler creates a cosmetics handler.
func NewCosmeticsHandler(catalog *service.CatalogService) *CosmeticsHandler {
	return &CosmeticsHandler{catalog: catalog}
}

// List handles GET /api/v1/cosmetics
func (h *CosmeticsHandler) List(w http.ResponseWriter, r *http.Request) {
	page, pageSize, apiErr := parsePagination(r)
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	res, err := h.catalog.List(r.Context(), middleware.UserID(r.Context()), r.URL.Query().Get("sortBy"), page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.JSONWithMeta(w, http.StatusOK, res.Cosmetics, res.Page, res.PageSize, res.TotalCount)
}

// Search handles GET /api/v1/cosmetics/search
func (h *CosmeticsHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, pageSize, apiErr := parsePagination(r)
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}
	filter, apiErr := parseSearchFilter(r)
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	res, err := h.catalog.Search(r.Context(), middleware.UserID(r.Context()), filter, page, pageSize)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.JSONWithMeta(w, http.StatusOK, res.Cosmetics, res.Page, res.PageSize, res.TotalCount)
}

// FilterOptions handles GET /api/v1/cosmetics/filter-options
func (h *CosmeticsHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	filter, apiErr := parseSearchFilter(r)
	if apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	opts, err := h.catalog.FilterOptions(r.Context(), middleware.UserID(r.Context()), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.OK(w, opts)
}

// New handles GET /api/v1/cosmetics/new
func (h *CosmeticsHandler) New(w http.ResponseWriter, r *http.Request) {
	doc, err := h.catalog.NewItems(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.OK(w, doc)
}

// Shop handles GET /api/v1/cosmetics/shop
func (h *CosmeticsHandler) Shop(w http.ResponseWriter, r *http.Request) {
	doc, err := h.catalog.Shop(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.OK(w, doc)
}
