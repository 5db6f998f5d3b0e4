package model

import "time"

// TransactionType distinguishes debits from credits in the ledger.
type TransactionType string

const (
	TransactionPurchase TransactionType = "Purchase"
	TransactionRefund   TransactionType = "Refund"
)

// Transaction is an append-only ledger entry. Amount is negative for purchases.
type Transaction struct {
	ID           int64           `db:"id" json:"id"`
	UserID       int64           `db:"user_id" json:"userId"`
	CosmeticID   string          `db:"cosmetic_id" json:"cosmeticId"`
	CosmeticName string          `db:"cosmetic_name" json:"cosmeticName"`
	Type         TransactionType `db:"type" json:"type"`
	Amount       int64           `db:"amount" json:"amount"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
}

// OwnedCosmetic is an ownership record.
type OwnedCosmetic struct {
	ID            int64     `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"userId"`
	CosmeticID    string    `db:"cosmetic_id" json:"cosmeticId"`
	AcquiredAt    time.Time `db:"acquired_at" json:"acquiredAt"`
	PurchasePrice int64     `db:"purchase_price" json:"purchasePrice"`
}

// MaxPrice is the largest price accepted for a single cosmetic.
const MaxPrice = 1_000_000

// BundleLine is one item of a bundle purchase.
type BundleLine struct {
	CosmeticID   string `json:"cosmeticId"`
	CosmeticName string `json:"cosmeticName"`
	Price        int64  `json:"price"`
}

// LedgerReason names why a ledger operation was refused.
type LedgerReason string

const (
	ReasonNone                LedgerReason = ""
	ReasonUserNotFound        LedgerReason = "user_not_found"
	ReasonAlreadyOwned        LedgerReason = "already_owned"
	ReasonInsufficientBalance LedgerReason = "insufficient_balance"
	ReasonNotOwned            LedgerReason = "not_owned"
	ReasonEmptyBundle         LedgerReason = "empty_bundle"
	ReasonDuplicateItem       LedgerReason = "duplicate_bundle_item"
	ReasonInvalidPrice        LedgerReason = "invalid_price"
)

// LedgerResult reports the outcome of a ledger operation.
// Balance is the balance after the operation when Success is true.
type LedgerResult struct {
	Success bool         `json:"success"`
	Reason  LedgerReason `json:"reason,omitempty"`
	Message string       `json:"message,omitempty"`
	Balance int64        `json:"vbucks"`
}
