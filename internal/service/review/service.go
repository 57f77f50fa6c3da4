// Package review implements the review session service: the single
// transactional write path for card scheduling state and the deck
// counters derived from it.
package review

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sstepanov/recall-api/internal/domain"
	"github.com/sstepanov/recall-api/internal/domain/srs"
	"github.com/sstepanov/recall-api/internal/platform/logger"
	"github.com/sstepanov/recall-api/internal/store"
)

// Service provides card review, creation, deletion and due-card
// retrieval. It is the only component allowed to write a card's
// scheduling triple or a deck's counters: every mutation runs inside
// one transaction so the card write and the counter delta commit or
// roll back together.
//
// now is always supplied by the caller so behavior is deterministic
// under test and so wasDue/isDueAfter are evaluated against the same
// instant.
type Service interface {
	// ReviewCard applies a rating to a card owned (via its deck) by
	// userID and returns the updated card.
	//
	// Returns domain.ErrInvalidRating for an unrecognized rating (no
	// state is touched), ErrCardNotFound, ErrNotDeckOwner, or
	// ErrTransactionConflict when concurrent writers exhausted the
	// bounded retries.
	ReviewCard(
		ctx context.Context,
		userID, cardID uuid.UUID,
		rating domain.ReviewRating,
		now time.Time,
	) (*domain.Card, error)

	// CreateCard creates a card in a deck owned by userID with default
	// scheduling state (due immediately) and adjusts the deck counters.
	CreateCard(
		ctx context.Context,
		userID, deckID uuid.UUID,
		frontText, backText string,
		now time.Time,
	) (*domain.Card, error)

	// DeleteCard removes a card owned (via its deck) by userID and
	// adjusts the deck counters.
	DeleteCard(ctx context.Context, userID, cardID uuid.UUID, now time.Time) error

	// GetDueCards returns up to limit cards due in the deck at now,
	// most overdue first. Read-only: due status is computed from due_at
	// directly and counters are never touched.
	GetDueCards(
		ctx context.Context,
		userID, deckID uuid.UUID,
		now time.Time,
		limit int,
	) ([]*domain.Card, error)
}

// reviewService is the standard implementation of the Service interface.
type reviewService struct {
	runner    store.Runner
	cardStore store.CardStore
	deckStore store.DeckStore
	scheduler srs.Service
	logger    *slog.Logger
}

// NewService creates a review Service. All dependencies except the
// logger are required.
func NewService(
	runner store.Runner,
	cardStore store.CardStore,
	deckStore store.DeckStore,
	scheduler srs.Service,
	log *slog.Logger,
) (Service, error) {
	if runner == nil {
		return nil, &ReviewServiceError{Operation: "create_service", Message: "runner cannot be nil"}
	}
	if cardStore == nil {
		return nil, &ReviewServiceError{Operation: "create_service", Message: "cardStore cannot be nil"}
	}
	if deckStore == nil {
		return nil, &ReviewServiceError{Operation: "create_service", Message: "deckStore cannot be nil"}
	}
	if scheduler == nil {
		return nil, &ReviewServiceError{Operation: "create_service", Message: "scheduler cannot be nil"}
	}

	if log == nil {
		log = slog.Default()
	}

	return &reviewService{
		runner:    runner,
		cardStore: cardStore,
		deckStore: deckStore,
		scheduler: scheduler,
		logger:    log.With(slog.String("component", "review_service")),
	}, nil
}

// ReviewCard implements Service.ReviewCard.
//
// The card row is locked for the duration of the transaction, so two
// reviews of the same card serialize; reviews of different cards in
// the same deck only meet at the atomic counter UPDATE.
func (s *reviewService) ReviewCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
	rating domain.ReviewRating,
	now time.Time,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Reject bad ratings before opening a transaction.
	if !rating.IsValid() {
		log.Debug("rejected invalid rating",
			slog.String("rating", string(rating)),
			slog.String("card_id", cardID.String()))
		return nil, domain.ErrInvalidRating
	}

	var updated *domain.Card
	err := s.runner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		// The runner may re-invoke this function on conflict; start
		// from a clean slate each attempt.
		updated = nil

		cards := s.cardStore.WithTx(tx)
		decks := s.deckStore.WithTx(tx)

		card, err := cards.GetForUpdate(ctx, cardID)
		if err != nil {
			return err
		}

		deck, err := decks.GetByID(ctx, card.DeckID)
		if err != nil {
			return err
		}
		if deck.UserID != userID {
			return ErrNotDeckOwner
		}

		wasDue := card.IsDue(now)

		next, err := s.scheduler.NextReview(srs.ReviewState{
			Interval:   card.Interval,
			EaseFactor: card.EaseFactor,
			DueAt:      card.DueAt,
		}, rating, now)
		if err != nil {
			return err
		}

		isDueAfter := !next.DueAt.After(now)

		if err := cards.UpdateSchedule(ctx, card.ID, next.Interval, next.EaseFactor, next.DueAt, now); err != nil {
			return err
		}

		if err := decks.AdjustCounters(ctx, deck.ID, 0, ReviewDelta(wasDue, isDueAfter)); err != nil {
			return err
		}

		card.Interval = next.Interval
		card.EaseFactor = next.EaseFactor
		card.DueAt = next.DueAt
		card.UpdatedAt = now
		updated = card
		return nil
	})
	if err != nil {
		return nil, mapError("review_card", "failed to review card", err)
	}

	log.Info("card reviewed",
		slog.String("card_id", cardID.String()),
		slog.String("rating", string(rating)),
		slog.Float64("interval", updated.Interval),
		slog.Time("due_at", updated.DueAt))
	return updated, nil
}

// CreateCard implements Service.CreateCard.
func (s *reviewService) CreateCard(
	ctx context.Context,
	userID, deckID uuid.UUID,
	frontText, backText string,
	now time.Time,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := domain.NewCard(deckID, frontText, backText, now)
	if err != nil {
		log.Debug("card construction failed",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, mapError("create_card", "invalid card", err)
	}

	err = s.runner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		cards := s.cardStore.WithTx(tx)
		decks := s.deckStore.WithTx(tx)

		deck, err := decks.GetByID(ctx, deckID)
		if err != nil {
			return err
		}
		if deck.UserID != userID {
			return ErrNotDeckOwner
		}

		if err := cards.Create(ctx, card); err != nil {
			return err
		}

		return decks.AdjustCounters(ctx, deckID, 1, CreationDelta(card.IsDue(now)))
	})
	if err != nil {
		return nil, mapError("create_card", "failed to create card", err)
	}

	log.Info("card created",
		slog.String("card_id", card.ID.String()),
		slog.String("deck_id", deckID.String()))
	return card, nil
}

// DeleteCard implements Service.DeleteCard.
func (s *reviewService) DeleteCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
	now time.Time,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.runner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		cards := s.cardStore.WithTx(tx)
		decks := s.deckStore.WithTx(tx)

		card, err := cards.GetForUpdate(ctx, cardID)
		if err != nil {
			return err
		}

		deck, err := decks.GetByID(ctx, card.DeckID)
		if err != nil {
			return err
		}
		if deck.UserID != userID {
			return ErrNotDeckOwner
		}

		if err := cards.Delete(ctx, cardID); err != nil {
			return err
		}

		return decks.AdjustCounters(ctx, deck.ID, -1, DeletionDelta(card.IsDue(now)))
	})
	if err != nil {
		return mapError("delete_card", "failed to delete card", err)
	}

	log.Info("card deleted", slog.String("card_id", cardID.String()))
	return nil
}

// GetDueCards implements Service.GetDueCards.
func (s *reviewService) GetDueCards(
	ctx context.Context,
	userID, deckID uuid.UUID,
	now time.Time,
	limit int,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.deckStore.GetByID(ctx, deckID)
	if err != nil {
		return nil, mapError("get_due_cards", "failed to load deck", err)
	}
	if deck.UserID != userID {
		return nil, ErrNotDeckOwner
	}

	cards, err := s.cardStore.GetDueByDeck(ctx, deckID, now, limit)
	if err != nil {
		return nil, mapError("get_due_cards", "failed to load due cards", err)
	}

	log.Debug("due cards retrieved",
		slog.String("deck_id", deckID.String()),
		slog.Int("count", len(cards)))
	return cards, nil
}
