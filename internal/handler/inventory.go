package handler

import (
	"net/http"

	"cosmetics-store-api/internal/middleware"
	"cosmetics-store-api/internal/model"
	"cosmetics-store-api/internal/service"
	"cosmetics-store-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// InventoryHandler handles the caller's balance and owned cosmetics.
// Every route requires an identity.
type InventoryHandler struct {
	ledger *service.LedgerService
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(ledger *service.LedgerService) *InventoryHandler {
	return &InventoryHandler{ledger: ledger}
}

// PurchaseRequest is the body of a single purchase.
type PurchaseRequest struct {
	Price        int64  `json:"price" validate:"gt=0,lte=1000000"`
	CosmeticName string `json:"cosmeticName" validate:"max=255"`
}

// RefundRequest is the optional body of a refund.
type RefundRequest struct {
	CosmeticName string `json:"cosmeticName" validate:"max=255"`
}

// BundleItemRequest is one bundle member.
type BundleItemRequest struct {
	CosmeticID   string `json:"cosmeticId" validate:"required,max=255"`
	CosmeticName string `json:"cosmeticName" validate:"max=255"`
	Price        int64  `json:"price" validate:"gte=0,lte=1000000"`
}

// BundleRequest is the body of a bundle purchase.
type BundleRequest struct {
	Items []BundleItemRequest `json:"items" validate:"dive"`
}

// InventoryResponse is the caller's owned cosmetics with the balance.
type InventoryResponse struct {
	OwnedCosmetics []model.OwnedCosmetic `json:"ownedCosmetics"`
	Balance        int64                 `json:"vbucks"`
}

func callerID(r *http.Request) int64 {
	if id := middleware.UserID(r.Context()); id != nil {
		return *id
	}
	return 0
}

// Purchase handles POST /api/v1/inventory/purchase/{cosmeticId}
func (h *InventoryHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	cosmeticID := chi.URLParam(r, "cosmeticId")

	var req PurchaseRequest
	if apiErr := decodeJSON(r, &req, false); apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	res, err := h.ledger.Purchase(r.Context(), callerID(r), cosmeticID, req.CosmeticName, req.Price)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeLedgerResult(w, res)
}

// Refund handles POST /api/v1/inventory/refund/{cosmeticId}
func (h *InventoryHandler) Refund(w http.ResponseWriter, r *http.Request) {
	cosmeticID := chi.URLParam(r, "cosmeticId")

	var req RefundRequest
	if apiErr := decodeJSON(r, &req, true); apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	res, err := h.ledger.Refund(r.Context(), callerID(r), cosmeticID, req.CosmeticName)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeLedgerResult(w, res)
}

// Bundle handles POST /api/v1/inventory/bundle
func (h *InventoryHandler) Bundle(w http.ResponseWriter, r *http.Request) {
	var req BundleRequest
	if apiErr := decodeJSON(r, &req, false); apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	lines := make([]model.BundleLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = model.BundleLine{CosmeticID: item.CosmeticID, CosmeticName: item.CosmeticName, Price: item.Price}
	}

	res, err := h.ledger.PurchaseBundle(r.Context(), callerID(r), lines)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeLedgerResult(w, res)
}

// List handles GET /api/v1/inventory
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := callerID(r)

	bal, err := h.ledger.Balance(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !bal.Success {
		writeLedgerResult(w, bal)
		return
	}

	items, _, err := h.ledger.Inventory(r.Context(), userID, 0, 0)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.OK(w, InventoryResponse{OwnedCosmetics: items, Balance: bal.Balance})
}

// Balance handles GET /api/v1/inventory/balance
func (h *InventoryHandler) Balance(w http.ResponseWriter, r *http.Request) {
	res, err := h.ledger.Balance(r.Context(), callerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeLedgerResult(w, res)
}

// History handles GET /api/v1/inventory/history
func (h *InventoryHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := callerID(r)

	bal, err := h.ledger.Balance(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !bal.Success {
		writeLedgerResult(w, bal)
		return
	}

	txs, err := h.ledger.History(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.OK(w, txs)
}
