// Package srs implements the spaced-repetition scheduling algorithm:
// a pure function from (scheduling state, rating, now) to the next
// scheduling state.
package srs

import (
	"time"

	"github.com/sstepanov/recall-api/internal/domain"
)

// Service defines the interface for scheduling operations.
type Service interface {
	// NextReview computes the scheduling state after a review.
	//
	// It is pure and total: it never reads the clock, never mutates
	// its input, and the only error it can return is
	// domain.ErrInvalidRating, raised before any computation.
	NextReview(
		state ReviewState,
		rating domain.ReviewRating,
		now time.Time,
	) (ReviewState, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduling service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new scheduling service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// NextReview implements the Service interface.
func (s *defaultService) NextReview(
	state ReviewState,
	rating domain.ReviewRating,
	now time.Time,
) (ReviewState, error) {
	if !rating.IsValid() {
		return ReviewState{}, domain.ErrInvalidRating
	}

	return nextState(state, rating, now, s.params), nil
}
