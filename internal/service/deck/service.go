// Package deck implements deck management: creation and retrieval of
// the collections that own cards. Deck counters are never written
// here; they belong to the review service's transactional write path.
package deck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sstepanov/recall-api/internal/domain"
	"github.com/sstepanov/recall-api/internal/platform/logger"
	"github.com/sstepanov/recall-api/internal/store"
)

// Common sentinel errors for the deck service.
var (
	// ErrDeckNotFound indicates that the deck does not exist. Also
	// returned when the deck exists but is owned by another user, so
	// deck existence is never leaked across accounts.
	ErrDeckNotFound = errors.New("deck not found")
)

// Service provides deck management operations.
type Service interface {
	// CreateDeck creates a new empty deck owned by userID.
	CreateDeck(ctx context.Context, userID uuid.UUID, name, description string) (*domain.Deck, error)

	// GetDeck retrieves a deck owned by userID.
	// Returns ErrDeckNotFound if the deck does not exist or belongs to
	// another user.
	GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error)

	// ListDecks retrieves all decks owned by userID, newest first.
	ListDecks(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error)
}

type deckService struct {
	deckStore store.DeckStore
	logger    *slog.Logger
}

// NewService creates a deck Service.
func NewService(deckStore store.DeckStore, log *slog.Logger) (Service, error) {
	if deckStore == nil {
		return nil, fmt.Errorf("deckStore cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &deckService{
		deckStore: deckStore,
		logger:    log.With(slog.String("component", "deck_service")),
	}, nil
}

// CreateDeck implements Service.CreateDeck.
func (s *deckService) CreateDeck(
	ctx context.Context,
	userID uuid.UUID,
	name, description string,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := domain.NewDeck(userID, name, description)
	if err != nil {
		log.Debug("deck construction failed",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	if err := s.deckStore.Create(ctx, deck); err != nil {
		return nil, fmt.Errorf("failed to create deck: %w", err)
	}

	log.Info("deck created",
		slog.String("deck_id", deck.ID.String()),
		slog.String("user_id", userID.String()))
	return deck, nil
}

// GetDeck implements Service.GetDeck.
func (s *deckService) GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error) {
	deck, err := s.deckStore.GetByID(ctx, deckID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrDeckNotFound
		}
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}

	if deck.UserID != userID {
		return nil, ErrDeckNotFound
	}

	return deck, nil
}

// ListDecks implements Service.ListDecks.
func (s *deckService) ListDecks(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	decks, err := s.deckStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list decks: %w", err)
	}
	return decks, nil
}
