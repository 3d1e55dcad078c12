package cases

import (
	"errors"
	"net/http"

	"github.com/skyhook-labs/talon/internal/classifier"
)

// Domain errors for case operations.
var (
	ErrNotFound            = errors.New("case not found")
	ErrDuplicate           = errors.New("case already exists")
	ErrIncompleteRecordSet = errors.New("record set does not cover the registry")
	ErrInvalidStatus       = errors.New("narrative is not in review status")
	ErrUnknownRecord       = errors.New("override references a category not in the case")
	ErrInvalidOverride     = errors.New("invalid override")
)

// MapHTTPStatus maps case domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrInvalidStatus):
		return http.StatusConflict
	case errors.Is(err, ErrUnknownRecord), errors.Is(err, ErrInvalidOverride):
		return http.StatusBadRequest
	case errors.Is(err, classifier.ErrInvalidNarrative):
		return http.StatusBadRequest
	case errors.Is(err, classifier.ErrClassificationUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
