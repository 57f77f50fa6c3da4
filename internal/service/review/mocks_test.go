package review

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sstepanov/recall-api/internal/domain"
	"github.com/sstepanov/recall-api/internal/store"
)

// fakeRunner satisfies store.Runner without a database: it invokes the
// function with a nil transaction (the fake stores ignore WithTx).
type fakeRunner struct {
	calls int
	err   error
}

func (r *fakeRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	r.calls++
	if r.err != nil {
		return r.err
	}
	return fn(ctx, nil)
}

// fakeCardStore implements store.CardStore with pluggable behavior.
type fakeCardStore struct {
	cards map[uuid.UUID]*domain.Card

	createErr error
	getErr    error
	updateErr error

	updateCalls []scheduleUpdate
	deleteCalls []uuid.UUID
}

type scheduleUpdate struct {
	id         uuid.UUID
	interval   float64
	easeFactor float64
	dueAt      time.Time
}

func newFakeCardStore(cards ...*domain.Card) *fakeCardStore {
	s := &fakeCardStore{cards: make(map[uuid.UUID]*domain.Card)}
	for _, c := range cards {
		s.cards[c.ID] = c
	}
	return s
}

func (s *fakeCardStore) Create(ctx context.Context, card *domain.Card) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.cards[card.ID] = card
	return nil
}

func (s *fakeCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	return s.GetForUpdate(ctx, id)
}

func (s *fakeCardStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	card, ok := s.cards[id]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	copied := *card
	return &copied, nil
}

func (s *fakeCardStore) UpdateSchedule(
	ctx context.Context,
	id uuid.UUID,
	interval, easeFactor float64,
	dueAt, updatedAt time.Time,
) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	card, ok := s.cards[id]
	if !ok {
		return store.ErrCardNotFound
	}
	card.Interval = interval
	card.EaseFactor = easeFactor
	card.DueAt = dueAt
	card.UpdatedAt = updatedAt
	s.updateCalls = append(s.updateCalls, scheduleUpdate{
		id:         id,
		interval:   interval,
		easeFactor: easeFactor,
		dueAt:      dueAt,
	})
	return nil
}

func (s *fakeCardStore) GetDueByDeck(
	ctx context.Context,
	deckID uuid.UUID,
	now time.Time,
	limit int,
) ([]*domain.Card, error) {
	due := []*domain.Card{}
	for _, card := range s.cards {
		if card.DeckID == deckID && card.IsDue(now) {
			due = append(due, card)
		}
	}
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (s *fakeCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.cards[id]; !ok {
		return store.ErrCardNotFound
	}
	delete(s.cards, id)
	s.deleteCalls = append(s.deleteCalls, id)
	return nil
}

func (s *fakeCardStore) WithTx(tx *sql.Tx) store.CardStore { return s }

// fakeDeckStore implements store.DeckStore, recording counter deltas.
type fakeDeckStore struct {
	decks map[uuid.UUID]*domain.Deck

	adjustErr   error
	adjustCalls []counterAdjustment
}

type counterAdjustment struct {
	deckID     uuid.UUID
	cardsDelta int
	dueDelta   int
}

func newFakeDeckStore(decks ...*domain.Deck) *fakeDeckStore {
	s := &fakeDeckStore{decks: make(map[uuid.UUID]*domain.Deck)}
	for _, d := range decks {
		s.decks[d.ID] = d
	}
	return s
}

func (s *fakeDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	s.decks[deck.ID] = deck
	return nil
}

func (s *fakeDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	deck, ok := s.decks[id]
	if !ok {
		return nil, store.ErrDeckNotFound
	}
	copied := *deck
	return &copied, nil
}

func (s *fakeDeckStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	decks := []*domain.Deck{}
	for _, deck := range s.decks {
		if deck.UserID == userID {
			decks = append(decks, deck)
		}
	}
	return decks, nil
}

func (s *fakeDeckStore) AdjustCounters(
	ctx context.Context,
	id uuid.UUID,
	cardsDelta, dueDelta int,
) error {
	if s.adjustErr != nil {
		return s.adjustErr
	}
	deck, ok := s.decks[id]
	if !ok {
		return store.ErrDeckNotFound
	}
	if cardsDelta == 0 && dueDelta == 0 {
		return nil
	}
	deck.CardsCount += cardsDelta
	deck.DueCount += dueDelta
	if deck.CardsCount < 0 {
		deck.CardsCount = 0
	}
	if deck.DueCount < 0 {
		deck.DueCount = 0
	}
	s.adjustCalls = append(s.adjustCalls, counterAdjustment{
		deckID:     id,
		cardsDelta: cardsDelta,
		dueDelta:   dueDelta,
	})
	return nil
}

func (s *fakeDeckStore) WithTx(tx *sql.Tx) store.DeckStore { return s }
