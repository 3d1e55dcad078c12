package narratives

import (
	"errors"
	"net/http"
)

// Domain errors for narrative operations.
var (
	ErrNotFound     = errors.New("narrative not found")
	ErrDuplicate    = errors.New("narrative already exists")
	ErrEmptyText    = errors.New("narrative text is empty")
	ErrInvalidBatch = errors.New("invalid batch file")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
)

// MapHTTPStatus maps narrative domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrEmptyText) || errors.Is(err, ErrInvalidBatch) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
