package scans

import (
	"errors"
	"net/http"
)

// Sentinel errors for scan session operations.
var (
	ErrSessionNotFound  = errors.New("scan session not found")
	ErrEmptyBatch       = errors.New("batch contains no items")
	ErrIndexUnavailable = errors.New("catalog index unavailable")
)

// MapHTTPStatus maps scan errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmptyBatch):
		return http.StatusBadRequest
	case errors.Is(err, ErrIndexUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
