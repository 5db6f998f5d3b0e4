package middleware

import (
	"net/http"
	"runtime/debug"

	"cosmetics-store-api/pkg/apierror"
	"cosmetics-store-api/pkg/response"

	log "github.com/sirupsen/logrus"
)

// Recovery turns a panic into a 500 response.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.WithFields(log.Fields{
					"panic":      rec,
					"path":       r.URL.Path,
					"request_id": GetRequestID(r.Context()),
					"stack":      string(debug.Stack()),
				}).Error("Recovered from panic")

				response.Error(w, apierror.InternalError("internal server error"))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
