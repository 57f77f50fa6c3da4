package review

import (
	"errors"
	"fmt"

	"github.com/sstepanov/recall-api/internal/domain"
	"github.com/sstepanov/recall-api/internal/store"
)

// Common sentinel errors for the review service.
var (
	// ErrCardNotFound indicates that the card does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrDeckNotFound indicates that the deck does not exist.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrNotDeckOwner indicates that the caller does not own the deck
	// containing the card. Kept distinct from ErrCardNotFound for
	// logging; the HTTP layer presents both identically so card
	// existence is never leaked to other users.
	ErrNotDeckOwner = errors.New("caller does not own the deck")

	// ErrTransactionConflict indicates that the operation lost a
	// concurrency conflict after the bounded retries were exhausted.
	// Transient; the caller may retry the whole request.
	ErrTransactionConflict = errors.New("review transaction conflict")
)

// ReviewServiceError wraps errors from the review service with context.
type ReviewServiceError struct {
	// Operation is the operation that failed (e.g., "review_card", "create_card")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ReviewServiceError.
func (e *ReviewServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("review service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("review service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ReviewServiceError) Unwrap() error {
	return e.Err
}

// mapError translates store and domain errors into the service's
// sentinel taxonomy. Sentinels pass through unwrapped so callers can
// match them with errors.Is; anything else is wrapped with operation
// context.
func mapError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrCardNotFound),
		errors.Is(err, ErrDeckNotFound),
		errors.Is(err, ErrNotDeckOwner),
		errors.Is(err, ErrTransactionConflict),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrValidation):
		return err
	case errors.Is(err, store.ErrCardNotFound):
		return ErrCardNotFound
	case errors.Is(err, store.ErrDeckNotFound):
		return ErrDeckNotFound
	case errors.Is(err, store.ErrTransactionConflict):
		return fmt.Errorf("%w: %v", ErrTransactionConflict, err)
	}

	return &ReviewServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
