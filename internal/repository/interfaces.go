package repository

import (
	"context"

	"cosmetics-store-api/internal/model"
)

// UserRepository defines account data access methods.
type UserRepository interface {
	// CreateUser inserts a user and returns it with its id set.
	// Returns ErrEmailTaken or ErrUsernameTaken on duplicates.
	CreateUser(ctx context.Context, user model.User) (*model.User, error)

	// GetUserByID returns ErrUserNotFound when missing.
	GetUserByID(ctx context.Context, id int64) (*model.User, error)

	// GetUserByEmail returns ErrUserNotFound when missing.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// GetUserByUsername returns ErrUserNotFound when missing.
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// ListUsers returns a page of users ordered by id with ownership and transaction counts.
	ListUsers(ctx context.Context, limit, offset int) ([]model.UserSummary, int, error)
}

// LedgerRepository defines the balance, ownership and transaction log operations.
// Business refusals are returned as the sentinel errors in errors.go.
type LedgerRepository interface {
	// Purchase debits price, records ownership and appends a purchase entry.
	// Returns the new balance.
	Purchase(ctx context.Context, userID int64, cosmeticID, cosmeticName string, price int64) (int64, error)

	// Refund credits the recorded purchase price, removes ownership and appends a refund entry.
	// Returns the new balance.
	Refund(ctx context.Context, userID int64, cosmeticID, cosmeticName string) (int64, error)

	// PurchaseBundle debits the bundle total once and records every item.
	// Returns the new balance.
	PurchaseBundle(ctx context.Context, userID int64, items []model.BundleLine) (int64, error)

	// Balance returns the current balance.
	Balance(ctx context.Context, userID int64) (int64, error)

	// OwnedIDs returns the cosmetic ids the user owns.
	OwnedIDs(ctx context.Context, userID int64) ([]string, error)

	// Inventory returns ownership records, newest first, with the total count.
	Inventory(ctx context.Context, userID int64, limit, offset int) ([]model.OwnedCosmetic, int, error)

	// History returns the user's transactions, newest first.
	History(ctx context.Context, userID int64) ([]model.Transaction, error)
}

var (
	_ UserRepository   = (*Store)(nil)
	_ LedgerRepository = (*Store)(nil)
)
