package domain

import "time"

// ReviewRating represents the outcome a user selects after reviewing
// a card. Only three ratings exist; anything else must be rejected
// before any state is mutated.
type ReviewRating string

const (
	// ReviewRatingAgain means the card was not recalled and should be
	// retried on a short horizon (minutes, not days).
	ReviewRatingAgain ReviewRating = "again"

	// ReviewRatingGood means the card was recalled with normal effort.
	ReviewRatingGood ReviewRating = "good"

	// ReviewRatingEasy means the card was recalled without effort.
	ReviewRatingEasy ReviewRating = "easy"
)

// IsValid reports whether the rating is one of the three recognized values.
func (r ReviewRating) IsValid() bool {
	switch r {
	case ReviewRatingAgain, ReviewRatingGood, ReviewRatingEasy:
		return true
	default:
		return false
	}
}

// Review is the ephemeral input event for a single card review.
// Only its effect on Card and Deck state is durable; the event itself
// is not persisted.
type Review struct {
	CardID     string       `json:"card_id"`
	Rating     ReviewRating `json:"rating"`
	OccurredAt time.Time    `json:"occurred_at"`
}
