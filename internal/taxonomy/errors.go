package taxonomy

import (
	"errors"
	"net/http"
)

// ErrCategoryNotFound indicates a lookup for an unregistered category code.
var ErrCategoryNotFound = errors.New("category not found")

// MapHTTPStatus maps taxonomy domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrCategoryNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
