package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sstepanov/recall-api/internal/domain"
	"github.com/sstepanov/recall-api/internal/service/auth"
	"github.com/sstepanov/recall-api/internal/service/review"
	"github.com/sstepanov/recall-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"card not found", review.ErrCardNotFound, http.StatusNotFound},
		{"deck not found", review.ErrDeckNotFound, http.StatusNotFound},
		{"not deck owner", review.ErrNotDeckOwner, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"transaction conflict", review.ErrTransactionConflict, http.StatusServiceUnavailable},
		{"invalid rating", domain.ErrInvalidRating, http.StatusBadRequest},
		{"wrapped card not found", fmt.Errorf("outer: %w", review.ErrCardNotFound), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

// A caller probing foreign card IDs must get responses that are
// indistinguishable from probing IDs that don't exist.
func TestOwnershipFailureIsIndistinguishableFromMissing(t *testing.T) {
	assert.Equal(t,
		MapErrorToStatusCode(review.ErrCardNotFound),
		MapErrorToStatusCode(review.ErrNotDeckOwner))
	assert.Equal(t,
		GetSafeErrorMessage(review.ErrCardNotFound),
		GetSafeErrorMessage(review.ErrNotDeckOwner))
}

func TestGetSafeErrorMessageNeverEchoesInternals(t *testing.T) {
	internal := errors.New("pq: connection refused to host db.internal:5432")
	msg := GetSafeErrorMessage(internal)
	assert.NotContains(t, msg, "db.internal")
	assert.Equal(t, "An unexpected error occurred", msg)

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}
