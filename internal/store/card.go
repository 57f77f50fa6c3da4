package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sstepanov/recall-api/internal/domain"
)

// CardStore defines the interface for card data persistence.
//
// Card rows are mutated only through the review service; no other code
// path may write interval, ease_factor or due_at. Mutating methods are
// expected to run inside a transaction obtained from a Runner;
// use WithTx to bind the store to it.
type CardStore interface {
	// Create saves a new card to the store.
	// The card must be valid according to domain validation rules.
	Create(ctx context.Context, card *domain.Card) error

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// GetForUpdate retrieves a card by ID and takes a row-level lock on
	// it for the duration of the surrounding transaction. This is the
	// serialization point for concurrent reviews of the same card: at
	// most one review transaction holds a given card row at a time.
	// Returns ErrCardNotFound if the card does not exist.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// UpdateSchedule writes the scheduling triple computed by the
	// scheduler back to the card row.
	// Returns ErrCardNotFound if the card does not exist.
	UpdateSchedule(
		ctx context.Context,
		id uuid.UUID,
		interval float64,
		easeFactor float64,
		dueAt time.Time,
		updatedAt time.Time,
	) error

	// GetDueByDeck retrieves up to limit cards in the deck that are due
	// at the given time, ordered by due_at ascending (most overdue
	// first). Read-only: counters are never touched.
	GetDueByDeck(ctx context.Context, deckID uuid.UUID, now time.Time, limit int) ([]*domain.Card, error)

	// Delete removes a card from the store by its ID.
	// Returns ErrCardNotFound if the card does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CardStore instance bound to the provided
	// transaction, so multiple operations can share one transaction.
	// The transaction is created and managed by the caller (typically
	// the review service via a Runner).
	WithTx(tx *sql.Tx) CardStore
}
