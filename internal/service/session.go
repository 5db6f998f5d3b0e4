package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cosmetics-store-api/internal/cache"
	"cosmetics-store-api/internal/logger"
	"cosmetics-store-api/internal/model"
	"cosmetics-store-api/pkg/uid"
)

const (
	// SessionTokenPrefix is the prefix of every session token.
	SessionTokenPrefix = "cst_"

	sessionKeyPrefix = "session:"
)

// ErrInvalidSession is returned for unknown, expired or malformed tokens.
var ErrInvalidSession = errors.New("invalid or expired session")

// SessionService issues and resolves session tokens.
type SessionService struct {
	store cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewSessionService creates a session service storing tokens in store.
func NewSessionService(store cache.Cache, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{store: store, ttl: ttl, now: time.Now}
}

// Create issues a token for userID.
func (s *SessionService) Create(ctx context.Context, userID int64) (string, error) {
	token, err := uid.NewToken(SessionTokenPrefix)
	if err != nil {
		return "", err
	}

	now := s.now()
	data, err := json.Marshal(model.SessionData{UserID: userID, CreatedAt: now, ExpiresAt: now.Add(s.ttl)})
	if err != nil {
		return "", fmt.Errorf("failed to serialize session: %w", err)
	}

	if err := s.store.Set(ctx, sessionKeyPrefix+token, data, s.ttl); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	logger.Component("SessionService").WithField("user_id", userID).Debug("Session created")
	return token, nil
}

// Resolve returns the session stored under token.
func (s *SessionService) Resolve(ctx context.Context, token string) (*model.SessionData, error) {
	if !uid.HasPrefix(token, SessionTokenPrefix) {
		return nil, ErrInvalidSession
	}

	raw, err := s.store.Get(ctx, sessionKeyPrefix+token)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var data model.SessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}

	if s.now().After(data.ExpiresAt) {
		_ = s.store.Delete(ctx, sessionKeyPrefix+token)
		return nil, ErrInvalidSession
	}

	return &data, nil
}

// Revoke deletes token. Unknown tokens are ignored.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	return s.store.Delete(ctx, sessionKeyPrefix+token)
}
