package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/sstepanov/recall-api/internal/domain"
)

// DeckStore defines the interface for deck data persistence.
type DeckStore interface {
	// Create saves a new deck to the store.
	Create(ctx context.Context, deck *domain.Deck) error

	// GetByID retrieves a deck by its unique ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// ListByUser retrieves all decks owned by the given user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error)

	// AdjustCounters applies deltas to a deck's cards_count and
	// due_count as a single atomic UPDATE at the storage layer. The
	// counters are a shared mutable resource across concurrent reviews
	// within one deck, so implementations must never read-modify-write
	// them in application code.
	// Returns ErrDeckNotFound if the deck does not exist.
	AdjustCounters(ctx context.Context, id uuid.UUID, cardsDelta, dueDelta int) error

	// WithTx returns a new DeckStore instance bound to the provided transaction.
	WithTx(tx *sql.Tx) DeckStore
}
