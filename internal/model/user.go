package model

import "time"

// User is a storefront account with its credit balance.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Balance      int64     `db:"balance" json:"vbucks"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// UserSummary is a user row with aggregate counts for listings.
type UserSummary struct {
	User
	TotalCosmetics    int `db:"total_cosmetics" json:"totalCosmetics"`
	TotalTransactions int `db:"total_transactions" json:"totalTransactions"`
}

// SessionData is stored with a session token.
type SessionData struct {
	UserID    int64     `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
