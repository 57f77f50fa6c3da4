package srs

import (
	"math"
	"time"

	"github.com/sstepanov/recall-api/internal/domain"
)

// ReviewState is the scheduling triple the algorithm operates on.
// It is a value type: the algorithm never mutates its input, it
// returns a new state.
type ReviewState struct {
	// Interval is the number of days until the next review, assuming
	// a non-"again" rating. Always >= Params.MinInterval.
	Interval float64

	// EaseFactor controls how fast the interval grows. Always within
	// [Params.MinEaseFactor, Params.MaxEaseFactor].
	EaseFactor float64

	// DueAt is when the card must next be shown.
	DueAt time.Time
}

// clampState forces stored state into the configured bounds before any
// computation. Rows written by older code or touched out of band must
// not be able to push the algorithm outside its invariants.
func clampState(state ReviewState, params *Params) ReviewState {
	if state.Interval < params.MinInterval {
		state.Interval = params.MinInterval
	}
	if state.EaseFactor < params.MinEaseFactor {
		state.EaseFactor = params.MinEaseFactor
	}
	if state.EaseFactor > params.MaxEaseFactor {
		state.EaseFactor = params.MaxEaseFactor
	}
	return state
}

// clampEaseFactor bounds a computed ease factor into the configured range.
func clampEaseFactor(ef float64, params *Params) float64 {
	if ef < params.MinEaseFactor {
		return params.MinEaseFactor
	}
	if ef > params.MaxEaseFactor {
		return params.MaxEaseFactor
	}
	return ef
}

// growInterval computes the next interval as floor(interval * modifier),
// never below the configured minimum.
func growInterval(interval, modifier float64, params *Params) float64 {
	next := math.Floor(interval * modifier)
	if next < params.MinInterval {
		next = params.MinInterval
	}
	return next
}

// daysFromNow converts a fractional number of days into an absolute
// time. Intervals are stored as real numbers, so this must not round
// to whole days.
func daysFromNow(now time.Time, days float64) time.Time {
	return now.Add(time.Duration(days * float64(24*time.Hour)))
}

// nextState computes the scheduling state after a single review.
//
// The three transitions are the whole algorithm:
//
//	again: due in AgainRetryMinutes, interval reset to the minimum,
//	       ease factor penalized
//	good:  due after the current interval, interval grown by the ease
//	       factor, ease factor unchanged
//	easy:  due after twice the current interval, interval grown by the
//	       ease factor with an extra bonus, ease factor rewarded
//
// "again" is a short-horizon retry that only penalizes ease; "good" is
// the classic geometric growth; "easy" models increasing confidence.
// The rating must already be validated by the caller. now is supplied
// by the caller so the function is deterministic.
func nextState(
	state ReviewState,
	rating domain.ReviewRating,
	now time.Time,
	params *Params,
) ReviewState {
	state = clampState(state, params)

	next := state

	switch rating {
	case domain.ReviewRatingAgain:
		next.DueAt = now.Add(time.Duration(params.AgainRetryMinutes) * time.Minute)
		next.Interval = params.MinInterval
		next.EaseFactor = clampEaseFactor(state.EaseFactor-params.AgainEasePenalty, params)

	case domain.ReviewRatingGood:
		// The due horizon uses the interval from before this review;
		// the grown interval only applies from the next review on.
		next.DueAt = daysFromNow(now, state.Interval)
		next.Interval = growInterval(state.Interval, state.EaseFactor, params)

	case domain.ReviewRatingEasy:
		next.DueAt = daysFromNow(now, state.Interval*params.EasyDueFactor)
		next.Interval = growInterval(state.Interval, state.EaseFactor*params.EasyIntervalBonus, params)
		next.EaseFactor = clampEaseFactor(state.EaseFactor+params.EasyEaseBonus, params)
	}

	return next
}
