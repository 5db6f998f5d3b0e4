package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"cosmetics-store-api/internal/model"

	"github.com/jmoiron/sqlx"
)

// Purchase buys a single cosmetic.
func (s *Store) Purchase(ctx context.Context, userID int64, cosmeticID, cosmeticName string, price int64) (int64, error) {
	if price <= 0 || price > model.MaxPrice {
		return 0, ErrInvalidPrice
	}

	var balance int64

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		current, err := s.lockUser(ctx, tx, userID)
		if err != nil {
			return err
		}

		owned, err := s.ownedAmong(ctx, tx, userID, []string{cosmeticID})
		if err != nil {
			return err
		}
		if len(owned) > 0 {
			return ErrAlreadyOwned
		}

		if current < price {
			return ErrInsufficientBalance
		}
		if err := s.debit(ctx, tx, userID, price); err != nil {
			return err
		}

		now := s.now().UTC()
		if err := s.insertOwnership(ctx, tx, userID, cosmeticID, price, now); err != nil {
			return err
		}
		if err := s.appendTransaction(ctx, tx, userID, cosmeticID, cosmeticName, model.TransactionPurchase, -price, now); err != nil {
			return err
		}

		balance = current - price
		return nil
	})

	return balance, err
}

// Refund returns a cosmetic for its recorded purchase price.
func (s *Store) Refund(ctx context.Context, userID int64, cosmeticID, cosmeticName string) (int64, error) {
	var balance int64

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		current, err := s.lockUser(ctx, tx, userID)
		if err != nil {
			return err
		}

		var ownership model.OwnedCosmetic
		query := tx.Rebind(`SELECT id, user_id, cosmetic_id, acquired_at, purchase_price FROM user_cosmetics WHERE user_id = ? AND cosmetic_id = ?`)
		if err := tx.GetContext(ctx, &ownership, query, userID, cosmeticID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotOwned
			}
			return fmt.Errorf("failed to get ownership: %w", err)
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind(`UPDATE users SET balance = balance + ? WHERE id = ?`), ownership.PurchasePrice, userID); err != nil {
			return fmt.Errorf("failed to credit balance: %w", err)
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM user_cosmetics WHERE id = ?`), ownership.ID); err != nil {
			return fmt.Errorf("failed to delete ownership: %w", err)
		}

		now := s.now().UTC()
		if err := s.appendTransaction(ctx, tx, userID, cosmeticID, cosmeticName, model.TransactionRefund, ownership.PurchasePrice, now); err != nil {
			return err
		}

		balance = current + ownership.PurchasePrice
		return nil
	})

	return balance, err
}

// PurchaseBundle buys every item of a bundle or none of them.
func (s *Store) PurchaseBundle(ctx context.Context, userID int64, items []model.BundleLine) (int64, error) {
	if len(items) == 0 {
		return 0, ErrEmptyBundle
	}

	ids := make([]string, len(items))
	seen := make(map[string]struct{}, len(items))
	var total int64
	for i, item := range items {
		if _, dup := seen[item.CosmeticID]; dup {
			return 0, ErrDuplicateBundleItem
		}
		if item.Price < 0 || item.Price > model.MaxPrice || item.Price > math.MaxInt64-total {
			return 0, ErrInvalidPrice
		}
		seen[item.CosmeticID] = struct{}{}
		ids[i] = item.CosmeticID
		total += item.Price
	}

	var balance int64

	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		current, err := s.lockUser(ctx, tx, userID)
		if err != nil {
			return err
		}

		if current < total {
			return ErrInsufficientBalance
		}

		owned, err := s.ownedAmong(ctx, tx, userID, ids)
		if err != nil {
			return err
		}
		if len(owned) > 0 {
			return ErrAlreadyOwned
		}

		if err := s.debit(ctx, tx, userID, total); err != nil {
			return err
		}

		now := s.now().UTC()
		for _, item := range items {
			if err := s.insertOwnership(ctx, tx, userID, item.CosmeticID, item.Price, now); err != nil {
				return err
			}
			if err := s.appendTransaction(ctx, tx, userID, item.CosmeticID, item.CosmeticName, model.TransactionPurchase, -item.Price, now); err != nil {
				return err
			}
		}

		balance = current - total
		return nil
	})

	return balance, err
}

// Balance returns the user's balance.
func (s *Store) Balance(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	if err := s.db.GetContext(ctx, &balance, s.db.Rebind(`SELECT balance FROM users WHERE id = ?`), userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// OwnedIDs returns the ids of every owned cosmetic.
func (s *Store) OwnedIDs(ctx context.Context, userID int64) ([]string, error) {
	ids := []string{}
	if err := s.db.SelectContext(ctx, &ids, s.db.Rebind(`SELECT cosmetic_id FROM user_cosmetics WHERE user_id = ?`), userID); err != nil {
		return nil, fmt.Errorf("failed to get owned cosmetics: %w", err)
	}
	return ids, nil
}

// Inventory returns a page of ownership records, newest first. A limit <= 0 returns all.
func (s *Store) Inventory(ctx context.Context, userID int64, limit, offset int) ([]model.OwnedCosmetic, int, error) {
	var total int
	if err := s.db.GetContext(ctx, &total, s.db.Rebind(`SELECT COUNT(*) FROM user_cosmetics WHERE user_id = ?`), userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count inventory: %w", err)
	}

	query := `SELECT id, user_id, cosmetic_id, acquired_at, purchase_price FROM user_cosmetics WHERE user_id = ? ORDER BY acquired_at DESC, id DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, limit, offset)
	}

	items := []model.OwnedCosmetic{}
	if err := s.db.SelectContext(ctx, &items, s.db.Rebind(query), args...); err != nil {
		return nil, 0, fmt.Errorf("failed to get inventory: %w", err)
	}
	return items, total, nil
}

// History returns every transaction of the user, newest first.
func (s *Store) History(ctx context.Context, userID int64) ([]model.Transaction, error) {
	query := s.db.Rebind(`SELECT id, user_id, cosmetic_id, cosmetic_name, type, amount, created_at FROM transactions WHERE user_id = ? ORDER BY created_at DESC, id DESC`)

	txs := []model.Transaction{}
	if err := s.db.SelectContext(ctx, &txs, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	return txs, nil
}

// lockUser reads the balance under a row lock and reports missing users.
func (s *Store) lockUser(ctx context.Context, tx *sqlx.Tx, userID int64) (int64, error) {
	var balance int64
	query := tx.Rebind(`SELECT balance FROM users WHERE id = ?` + s.dialect.lockSuffix())
	if err := tx.GetContext(ctx, &balance, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("failed to lock user: %w", err)
	}
	return balance, nil
}

func (s *Store) ownedAmong(ctx context.Context, tx *sqlx.Tx, userID int64, ids []string) ([]string, error) {
	query, args, err := sqlx.In(`SELECT cosmetic_id FROM user_cosmetics WHERE user_id = ? AND cosmetic_id IN (?)`, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build ownership query: %w", err)
	}

	owned := []string{}
	if err := tx.SelectContext(ctx, &owned, tx.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to check ownership: %w", err)
	}
	return owned, nil
}

// debit subtracts amount only while the balance covers it.
func (s *Store) debit(ctx context.Context, tx *sqlx.Tx, userID, amount int64) error {
	if amount < 0 {
		return ErrInvalidPrice
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(`UPDATE users SET balance = balance - ? WHERE id = ? AND balance >= ?`), amount, userID, amount)
	if err != nil {
		return fmt.Errorf("failed to debit balance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to debit balance: %w", err)
	}
	if n == 0 {
		return ErrInsufficientBalance
	}
	return nil
}

func (s *Store) insertOwnership(ctx context.Context, tx *sqlx.Tx, userID int64, cosmeticID string, price int64, at time.Time) error {
	query := tx.Rebind(`INSERT INTO user_cosmetics (user_id, cosmetic_id, acquired_at, purchase_price) VALUES (?, ?, ?, ?)`)
	if _, err := tx.ExecContext(ctx, query, userID, cosmeticID, at, price); err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyOwned
		}
		return fmt.Errorf("failed to insert ownership: %w", err)
	}
	return nil
}

func (s *Store) appendTransaction(ctx context.Context, tx *sqlx.Tx, userID int64, cosmeticID, cosmeticName string, typ model.TransactionType, amount int64, at time.Time) error {
	query := tx.Rebind(`INSERT INTO transactions (user_id, cosmetic_id, cosmetic_name, type, amount, created_at) VALUES (?, ?, ?, ?, ?, ?)`)
	if _, err := tx.ExecContext(ctx, query, userID, cosmeticID, cosmeticName, string(typ), amount, at); err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}
	return nil
}
