package catalog

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/menucatch/pkg/repository"
)

// ErrNotFound reports a category and name with no catalog entry.
var ErrNotFound = errors.New("food not found")

// MapHTTPStatus maps catalog errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
