package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"cosmetics-store-api/internal/model"
)

const userColumns = "id, email, username, password_hash, balance, created_at"

// CreateUser inserts a user.
func (s *Store) CreateUser(ctx context.Context, user model.User) (*model.User, error) {
	user.CreatedAt = s.now().UTC()

	const insert = `INSERT INTO users (email, username, password_hash, balance, created_at) VALUES (?, ?, ?, ?, ?)`
	args := []interface{}{user.Email, user.Username, user.PasswordHash, user.Balance, user.CreatedAt}

	var err error
	if s.dialect.supportsReturning() {
		err = s.db.QueryRowxContext(ctx, s.db.Rebind(insert+" RETURNING id"), args...).Scan(&user.ID)
	} else {
		var res sql.Result
		res, err = s.db.ExecContext(ctx, s.db.Rebind(insert), args...)
		if err == nil {
			user.ID, err = res.LastInsertId()
		}
	}

	if err != nil {
		if isUniqueViolation(err) {
			if strings.Contains(strings.ToLower(err.Error()), "email") {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// GetUserByID retrieves a user by id.
func (s *Store) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return s.getUser(ctx, "id = ?", id)
}

// GetUserByEmail retrieves a user by email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getUser(ctx, "email = ?", email)
}

// GetUserByUsername retrieves a user by username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.getUser(ctx, "username = ?", username)
}

func (s *Store) getUser(ctx context.Context, where string, arg interface{}) (*model.User, error) {
	var user model.User
	query := s.db.Rebind("SELECT " + userColumns + " FROM users WHERE " + where)

	if err := s.db.GetContext(ctx, &user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// ListUsers returns a page of users with their aggregate counts.
func (s *Store) ListUsers(ctx context.Context, limit, offset int) ([]model.UserSummary, int, error) {
	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM users"); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := s.db.Rebind(`
		SELECT u.id, u.email, u.username, u.password_hash, u.balance, u.created_at,
			(SELECT COUNT(*) FROM user_cosmetics uc WHERE uc.user_id = u.id) AS total_cosmetics,
			(SELECT COUNT(*) FROM transactions t WHERE t.user_id = u.id) AS total_transactions
		FROM users u
		ORDER BY u.id
		LIMIT ? OFFSET ?`)

	users := []model.UserSummary{}
	if err := s.db.SelectContext(ctx, &users, query, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}
