package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Scheduling bounds shared by the domain model, the SRS algorithm and
// the database CHECK constraints. A card must never be persisted with
// values outside these ranges.
const (
	// MinInterval is the smallest allowed review interval in days.
	MinInterval = 1.0

	// MinEaseFactor is the lower clamp for a card's ease factor.
	MinEaseFactor = 1.3

	// MaxEaseFactor is the upper clamp for a card's ease factor.
	MaxEaseFactor = 2.5

	// DefaultInterval is the interval assigned to a freshly created card.
	DefaultInterval = 1.0

	// DefaultEaseFactor is the ease factor assigned to a freshly created card.
	DefaultEaseFactor = 2.5
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardDeckIDEmpty is returned when a card's deck ID is empty or nil.
	ErrCardDeckIDEmpty = errors.New("card deck ID cannot be empty")

	// ErrCardFrontEmpty is returned when a card's front text is empty.
	ErrCardFrontEmpty = errors.New("card front text cannot be empty")

	// ErrCardBackEmpty is returned when a card's back text is empty.
	ErrCardBackEmpty = errors.New("card back text cannot be empty")

	// ErrCardIntervalRange is returned when a card's interval is below the minimum.
	ErrCardIntervalRange = errors.New("card interval must be at least 1 day")

	// ErrCardEaseFactorRange is returned when a card's ease factor is outside [1.3, 2.5].
	ErrCardEaseFactorRange = errors.New("card ease factor must be between 1.3 and 2.5")
)

// Card represents a single learnable front/back fact with its own
// review schedule. The scheduler only ever touches the scheduling
// triple (Interval, EaseFactor, DueAt); the content strings are owned
// by the content layer and treated as opaque.
type Card struct {
	ID         uuid.UUID `json:"id"`
	DeckID     uuid.UUID `json:"deck_id"`
	FrontText  string    `json:"front_text"`
	BackText   string    `json:"back_text"`
	Interval   float64   `json:"interval"`
	EaseFactor float64   `json:"ease_factor"`
	DueAt      time.Time `json:"due_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewCard creates a new Card in the given deck with default scheduling
// state: interval 1 day, ease factor 2.5, due immediately.
// Returns an error if validation fails.
func NewCard(deckID uuid.UUID, frontText, backText string, now time.Time) (*Card, error) {
	card := &Card{
		ID:         uuid.New(),
		DeckID:     deckID,
		FrontText:  frontText,
		BackText:   backText,
		Interval:   DefaultInterval,
		EaseFactor: DefaultEaseFactor,
		DueAt:      now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data, including the scheduling
// invariants enforced on every mutation.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.DeckID == uuid.Nil {
		return ErrCardDeckIDEmpty
	}

	if c.FrontText == "" {
		return ErrCardFrontEmpty
	}

	if c.BackText == "" {
		return ErrCardBackEmpty
	}

	if c.Interval < MinInterval {
		return ErrCardIntervalRange
	}

	if c.EaseFactor < MinEaseFactor || c.EaseFactor > MaxEaseFactor {
		return ErrCardEaseFactorRange
	}

	return nil
}

// IsDue reports whether the card is due for review at the given time.
// A card is due iff its DueAt is at or before now.
func (c *Card) IsDue(now time.Time) bool {
	return !c.DueAt.After(now)
}
