// Package handlers implements the REST API endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"toolshare-backend/internal/api/middleware"
	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/logger"
	"toolshare-backend/internal/service"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// ListResponse wraps paginated collections.
type ListResponse struct {
	Items    any   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// HandleError maps service errors to HTTP status codes. Business-rule
// failures keep their specific message; anything unrecognized is treated as
// a transient backend failure and surfaced generically.
func HandleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		middleware.WriteError(w, http.StatusUnauthorized, middleware.ErrUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrOwnItem):
		middleware.WriteError(w, http.StatusForbidden, middleware.ErrForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, err.Error())
	case errors.Is(err, domain.ErrDateConflict),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrInactiveItem),
		errors.Is(err, service.ErrDuplicateReview):
		middleware.WriteError(w, http.StatusConflict, middleware.ErrConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidDuration), errors.Is(err, domain.ErrInvalidRange):
		middleware.WriteError(w, http.StatusUnprocessableEntity, middleware.ErrValidation, err.Error())
	case errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrReasonRequired),
		errors.Is(err, service.ErrResolutionRequired):
		middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, err.Error())
	default:
		logger.Error("request failed", "error", err)
		middleware.WriteError(w, http.StatusServiceUnavailable, middleware.ErrUnavailable, "service temporarily unavailable")
	}
}

// DecodeJSON decodes a request body into dst, rejecting unknown fields.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
