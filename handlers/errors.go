package handlers

import (
	"errors"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"freightcalc/services"
)

var errBadRequest = errors.New("malformed request")

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

func writeError(e *core.RequestEvent, status int, code, message string, details any) error {
	return e.JSON(status, errorEnvelope{Error: apiError{Code: code, Message: message, Details: details}})
}

// respondError maps an error from the quote pipeline to its HTTP response.
func respondError(e *core.RequestEvent, log *zap.Logger, err error) error {
	var batchErr *services.BatchError
	switch {
	case errors.As(err, &batchErr):
		return writeError(e, http.StatusBadRequest, "invalid_items", "One or more line items are invalid.", batchErr.Errors)
	case errors.Is(err, errBadRequest):
		return writeError(e, http.StatusBadRequest, "bad_request", err.Error(), nil)
	case errors.Is(err, services.ErrNoItems):
		return writeError(e, http.StatusBadRequest, "no_items", "Add at least one line item.", nil)
	case errors.Is(err, errUnauthenticated):
		return writeError(e, http.StatusUnauthorized, "unauthenticated", "Sign in to request freight quotes.", nil)
	case errors.Is(err, services.ErrInvalidRole):
		return writeError(e, http.StatusForbidden, "invalid_role", "Your account has no valid quote role.", nil)
	case errors.Is(err, services.ErrNoRateTable):
		log.Error("quote: rates unavailable", zap.Error(err))
		return writeError(e, http.StatusServiceUnavailable, "rates_unavailable", "Freight rates are temporarily unavailable.", nil)
	}
	log.Error("quote: unexpected error", zap.Error(err))
	return writeError(e, http.StatusInternalServerError, "internal", "Something went wrong.", nil)
}
