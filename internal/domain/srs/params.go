package srs

import (
	"github.com/sstepanov/recall-api/internal/domain"
)

// Params defines all configurable parameters for the scheduling algorithm.
type Params struct {
	// Core limits. Every state the algorithm emits is clamped into
	// these bounds, and incoming stored state is clamped before any
	// computation so out-of-range rows cannot propagate.
	MinInterval   float64
	MinEaseFactor float64
	MaxEaseFactor float64

	// AgainEasePenalty is subtracted from the ease factor on an
	// "again" rating.
	AgainEasePenalty float64

	// EasyEaseBonus is added to the ease factor on an "easy" rating.
	EasyEaseBonus float64

	// EasyIntervalBonus multiplies the interval growth on an "easy"
	// rating on top of the ease factor.
	EasyIntervalBonus float64

	// EasyDueFactor multiplies the current interval when computing the
	// next due time for an "easy" rating.
	EasyDueFactor float64

	// AgainRetryMinutes is the short retry horizon for "again" ratings.
	AgainRetryMinutes int
}

// NewDefaultParams creates a new Params instance with default values.
// The defaults are the canonical algorithm constants; the bounds come
// from the domain package so they always agree with entity validation
// and the database CHECK constraints.
func NewDefaultParams() *Params {
	return &Params{
		MinInterval:   domain.MinInterval,
		MinEaseFactor: domain.MinEaseFactor,
		MaxEaseFactor: domain.MaxEaseFactor,

		AgainEasePenalty:  0.20,
		EasyEaseBonus:     0.15,
		EasyIntervalBonus: 1.3,
		EasyDueFactor:     2.0,

		// Review again in 10 minutes
		AgainRetryMinutes: 10,
	}
}
