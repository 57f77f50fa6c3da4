package api

import (
	"errors"
	"net/http"

	"github.com/sstepanov/recall-api/internal/domain"
	"github.com/sstepanov/recall-api/internal/service/auth"
	"github.com/sstepanov/recall-api/internal/service/deck"
	"github.com/sstepanov/recall-api/internal/service/review"
	"github.com/sstepanov/recall-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes.
//
// review.ErrNotDeckOwner deliberately maps to 404, not 403: a caller
// probing another user's card IDs gets the same response as for IDs
// that don't exist, so ownership checks never leak card existence.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Not found errors (including foreign ownership)
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, review.ErrCardNotFound),
		errors.Is(err, review.ErrDeckNotFound),
		errors.Is(err, review.ErrNotDeckOwner),
		errors.Is(err, deck.ErrDeckNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict

	// Transient concurrency failures
	case errors.Is(err, review.ErrTransactionConflict):
		return http.StatusServiceUnavailable

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	// Not-owned resources use the same message as missing ones.
	case errors.Is(err, review.ErrCardNotFound),
		errors.Is(err, review.ErrNotDeckOwner):
		return "Card or deck not found"

	case errors.Is(err, review.ErrDeckNotFound),
		errors.Is(err, deck.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, review.ErrTransactionConflict):
		return "Temporary conflict, please retry"

	case errors.Is(err, domain.ErrInvalidRating):
		return "Rating must be one of: again, good, easy"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}
