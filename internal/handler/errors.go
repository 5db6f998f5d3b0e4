package handler

import (
	"errors"
	"net/http"
	"strings"

	"cosmetics-store-api/internal/middleware"
	"cosmetics-store-api/internal/model"
	"cosmetics-store-api/internal/repository"
	"cosmetics-store-api/internal/service"
	"cosmetics-store-api/pkg/apierror"
	"cosmetics-store-api/pkg/response"

	log "github.com/sirupsen/logrus"
)

// writeError maps service and repository errors onto API errors.
// Anything unrecognised is logged and reported as 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *apierror.Error
	switch {
	case errors.As(err, &apiErr):
	case errors.Is(err, service.ErrUpstreamUnavailable):
		apiErr = apierror.UpstreamUnavailable("")
	case errors.Is(err, repository.ErrUserNotFound):
		apiErr = apierror.NotFound("User not found")
	case errors.Is(err, repository.ErrEmailTaken), errors.Is(err, repository.ErrUsernameTaken):
		apiErr = apierror.Conflict(capitalize(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		apiErr = apierror.Unauthorized("Invalid email or password")
	default:
		log.WithError(err).WithFields(log.Fields{
			"path":       r.URL.Path,
			"request_id": middleware.GetRequestID(r.Context()),
		}).Error("Request failed")
		apiErr = apierror.InternalError("")
	}
	response.Error(w, apiErr)
}

var reasonStatus = map[model.LedgerReason]int{
	model.ReasonUserNotFound:        http.StatusNotFound,
	model.ReasonNotOwned:            http.StatusNotFound,
	model.ReasonAlreadyOwned:        http.StatusConflict,
	model.ReasonInsufficientBalance: http.StatusUnprocessableEntity,
	model.ReasonEmptyBundle:         http.StatusBadRequest,
	model.ReasonDuplicateItem:       http.StatusBadRequest,
	model.ReasonInvalidPrice:        http.StatusBadRequest,
}

// writeLedgerResult sends a successful result as 200 and a refusal as the
// status matching its reason.
func writeLedgerResult(w http.ResponseWriter, res model.LedgerResult) {
	if res.Success {
		response.OK(w, res)
		return
	}

	status, ok := reasonStatus[res.Reason]
	if !ok {
		status = http.StatusBadRequest
	}
	response.Error(w, &apierror.Error{
		StatusCode: status,
		Code:       strings.ToUpper(string(res.Reason)),
		Message:    res.Message,
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
