package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"cosmetics-store-api/internal/model"
	"cosmetics-store-api/internal/service"
	"cosmetics-store-api/pkg/apierror"
	"cosmetics-store-api/pkg/response"

	log "github.com/sirupsen/logrus"
)

// Identity headers.
const (
	SessionTokenHeader = "X-Session-Token"
	UserIDHeader       = "X-User-Id"
)

// UserIDKey is the context key for the caller's user id.
const UserIDKey contextKey = "user_id"

// SessionResolver resolves session tokens.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*model.SessionData, error)
}

// Identity resolves the caller from X-Session-Token, falling back to
// X-User-Id. Requests without either pass through anonymously.
// A rejected token is 401, a non-numeric X-User-Id is 400.
func Identity(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := r.Header.Get(SessionTokenHeader); token != "" && sessions != nil {
				sess, err := sessions.Resolve(r.Context(), token)
				if err != nil {
					if errors.Is(err, service.ErrInvalidSession) {
						response.Error(w, apierror.Unauthorized("Invalid or expired session"))
						return
					}
					log.WithError(err).WithField("request_id", GetRequestID(r.Context())).Error("Session lookup failed")
					response.Error(w, apierror.ServiceUnavailable("Session store unavailable"))
					return
				}
				next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), sess.UserID)))
				return
			}

			if raw := r.Header.Get(UserIDHeader); raw != "" {
				id, err := strconv.ParseInt(raw, 10, 64)
				if err != nil || id <= 0 {
					response.Error(w, apierror.BadRequest("X-User-Id must be a positive integer"))
					return
				}
				next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireIdentity rejects anonymous requests with 401.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserID(r.Context()) == nil {
			response.Error(w, apierror.Unauthorized("Provide X-Session-Token or X-User-Id"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithUserID returns ctx carrying id.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, UserIDKey, id)
}

// UserID returns the caller's user id, or nil for anonymous requests.
func UserID(ctx context.Context) *int64 {
	if id, ok := ctx.Value(UserIDKey).(int64); ok {
		return &id
	}
	return nil
}
