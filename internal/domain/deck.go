package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Deck-specific validation errors
var (
	// ErrDeckIDEmpty is returned when a deck ID is empty or nil.
	ErrDeckIDEmpty = errors.New("deck ID cannot be empty")

	// ErrDeckUserIDEmpty is returned when a deck's user ID is empty or nil.
	ErrDeckUserIDEmpty = errors.New("deck user ID cannot be empty")

	// ErrDeckNameEmpty is returned when a deck's name is empty.
	ErrDeckNameEmpty = errors.New("deck name cannot be empty")

	// ErrDeckNegativeCount is returned when a deck counter is negative.
	ErrDeckNegativeCount = errors.New("deck counters cannot be negative")
)

// Deck owns a collection of cards for one user.
//
// CardsCount is the cached number of live cards in the deck and must
// equal the number of non-deleted cards with this deck ID. DueCount is
// a soft invariant: it tracks due-status transitions applied at
// review/create/delete time and is allowed to go stale as real time
// passes a card's DueAt without any review happening. Readers that
// need an exact due count must query due_at <= now directly.
type Deck struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CardsCount  int       `json:"cards_count"`
	DueCount    int       `json:"due_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewDeck creates a new empty Deck owned by the given user.
// Returns an error if validation fails.
func NewDeck(userID uuid.UUID, name, description string) (*Deck, error) {
	now := time.Now().UTC()
	deck := &Deck{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: description,
		CardsCount:  0,
		DueCount:    0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
// Returns an error if any field fails validation.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDeckIDEmpty
	}

	if d.UserID == uuid.Nil {
		return ErrDeckUserIDEmpty
	}

	if d.Name == "" {
		return ErrDeckNameEmpty
	}

	if d.CardsCount < 0 || d.DueCount < 0 {
		return ErrDeckNegativeCount
	}

	return nil
}
