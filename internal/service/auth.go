package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cosmetics-store-api/internal/logger"
	"cosmetics-store-api/internal/model"
	"cosmetics-store-api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when login fails for any reason.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthResult is a user with a freshly issued session token.
type AuthResult struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// AuthService registers and logs in users.
type AuthService struct {
	users          repository.UserRepository
	sessions       *SessionService
	initialBalance int64
	cost           int
}

// NewAuthService creates an auth service. New accounts start with initialBalance.
func NewAuthService(users repository.UserRepository, sessions *SessionService, initialBalance int64) *AuthService {
	return &AuthService{
		users:          users,
		sessions:       sessions,
		initialBalance: initialBalance,
		cost:           bcrypt.DefaultCost,
	}
}

// Register creates an account and opens a session for it.
// Returns repository.ErrEmailTaken or repository.ErrUsernameTaken on duplicates.
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, model.User{
		Email:        normalizeEmail(email),
		Username:     strings.TrimSpace(username),
		PasswordHash: string(hash),
		Balance:      s.initialBalance,
	})
	if err != nil {
		return nil, err
	}

	logger.Component("AuthService").WithField("user_id", user.ID).Info("User registered")
	return s.open(ctx, user)
}

// Login checks the password and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.open(ctx, user)
}

// Logout revokes token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// User returns the account with id.
func (s *AuthService) User(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// ListUsers returns a page of users with their aggregate counts.
func (s *AuthService) ListUsers(ctx context.Context, limit, offset int) ([]model.UserSummary, int, error) {
	return s.users.ListUsers(ctx, limit, offset)
}

func (s *AuthService) open(ctx context.Context, user *model.User) (*AuthResult, error) {
	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
