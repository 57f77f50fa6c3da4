package review

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sstepanov/recall-api/internal/domain"
	"github.com/sstepanov/recall-api/internal/domain/srs"
	"github.com/sstepanov/recall-api/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	svc    Service
	runner *fakeRunner
	cards  *fakeCardStore
	decks  *fakeDeckStore

	userID uuid.UUID
	deck   *domain.Deck
	card   *domain.Card
	now    time.Time
}

// newFixture builds a service around one user owning one deck with one
// card that has default scheduling state and was due yesterday.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	deck := &domain.Deck{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       "Spanish",
		CardsCount: 1,
		DueCount:   1,
		CreatedAt:  now.Add(-48 * time.Hour),
		UpdatedAt:  now.Add(-48 * time.Hour),
	}

	card := &domain.Card{
		ID:         uuid.New(),
		DeckID:     deck.ID,
		FrontText:  "hola",
		BackText:   "hello",
		Interval:   1.0,
		EaseFactor: 2.5,
		DueAt:      now.Add(-24 * time.Hour),
		CreatedAt:  now.Add(-48 * time.Hour),
		UpdatedAt:  now.Add(-48 * time.Hour),
	}

	runner := &fakeRunner{}
	cards := newFakeCardStore(card)
	decks := newFakeDeckStore(deck)

	svc, err := NewService(runner, cards, decks, srs.NewDefaultService(), testLogger())
	require.NoError(t, err)

	return &fixture{
		svc:    svc,
		runner: runner,
		cards:  cards,
		decks:  decks,
		userID: userID,
		deck:   deck,
		card:   card,
		now:    now,
	}
}

func TestReviewCardGood(t *testing.T) {
	f := newFixture(t)

	updated, err := f.svc.ReviewCard(context.Background(), f.userID, f.card.ID, domain.ReviewRatingGood, f.now)
	require.NoError(t, err)

	// interval 1.0 at ease 2.5 grows to floor(2.5) = 2; the due horizon
	// uses the interval from before the review.
	assert.Equal(t, 2.0, updated.Interval)
	assert.Equal(t, 2.5, updated.EaseFactor)
	assert.Equal(t, f.now.Add(24*time.Hour), updated.DueAt)
	assert.Equal(t, f.now, updated.UpdatedAt)

	// The card left the due set, so due_count drops by one and
	// cards_count is untouched.
	require.Len(t, f.decks.adjustCalls, 1)
	assert.Equal(t, 0, f.decks.adjustCalls[0].cardsDelta)
	assert.Equal(t, -1, f.decks.adjustCalls[0].dueDelta)
	assert.Equal(t, 0, f.decks.decks[f.deck.ID].DueCount)
	assert.Equal(t, 1, f.decks.decks[f.deck.ID].CardsCount)
}

func TestReviewCardAgainDecrementsDueCount(t *testing.T) {
	f := newFixture(t)

	updated, err := f.svc.ReviewCard(context.Background(), f.userID, f.card.ID, domain.ReviewRatingAgain, f.now)
	require.NoError(t, err)

	// A 10-minute retry horizon is in the future, so by the shared now
	// the card is no longer due.
	assert.Equal(t, 1.0, updated.Interval)
	assert.InDelta(t, 2.3, updated.EaseFactor, 1e-9)
	assert.Equal(t, f.now.Add(10*time.Minute), updated.DueAt)

	require.Len(t, f.decks.adjustCalls, 1)
	assert.Equal(t, -1, f.decks.adjustCalls[0].dueDelta)
}

func TestReviewCardNotDueProducesNoDelta(t *testing.T) {
	f := newFixture(t)
	f.card.DueAt = f.now.Add(24 * time.Hour)
	f.cards.cards[f.card.ID] = f.card

	_, err := f.svc.ReviewCard(context.Background(), f.userID, f.card.ID, domain.ReviewRatingGood, f.now)
	require.NoError(t, err)

	// Zero deltas never reach the store.
	assert.Empty(t, f.decks.adjustCalls)
	assert.Equal(t, 1, f.decks.decks[f.deck.ID].DueCount)
}

func TestReviewCardInvalidRating(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ReviewCard(context.Background(), f.userID, f.card.ID, domain.ReviewRating("perfect"), f.now)
	assert.ErrorIs(t, err, domain.ErrInvalidRating)

	// Rejected before any transaction was opened; nothing was written.
	assert.Equal(t, 0, f.runner.calls)
	assert.Empty(t, f.cards.updateCalls)
	assert.Empty(t, f.decks.adjustCalls)
}

func TestReviewCardNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ReviewCard(context.Background(), f.userID, uuid.New(), domain.ReviewRatingGood, f.now)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestReviewCardWrongOwner(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ReviewCard(context.Background(), uuid.New(), f.card.ID, domain.ReviewRatingGood, f.now)
	assert.ErrorIs(t, err, ErrNotDeckOwner)

	// Ownership failure aborts before any write.
	assert.Empty(t, f.cards.updateCalls)
	assert.Empty(t, f.decks.adjustCalls)
}

func TestReviewCardConflictSurfaced(t *testing.T) {
	f := newFixture(t)
	f.runner.err = store.ErrTransactionConflict

	_, err := f.svc.ReviewCard(context.Background(), f.userID, f.card.ID, domain.ReviewRatingGood, f.now)
	assert.ErrorIs(t, err, ErrTransactionConflict)
}

func TestReviewCardClampsStoredState(t *testing.T) {
	f := newFixture(t)
	f.card.Interval = 0.2
	f.card.EaseFactor = 9.0
	f.cards.cards[f.card.ID] = f.card

	updated, err := f.svc.ReviewCard(context.Background(), f.userID, f.card.ID, domain.ReviewRatingGood, f.now)
	require.NoError(t, err)

	// Out-of-range stored state is clamped before computing, so the
	// result still satisfies the invariants.
	assert.GreaterOrEqual(t, updated.Interval, domain.MinInterval)
	assert.LessOrEqual(t, updated.EaseFactor, domain.MaxEaseFactor)
}

func TestCreateCard(t *testing.T) {
	f := newFixture(t)

	card, err := f.svc.CreateCard(context.Background(), f.userID, f.deck.ID, "gato", "cat", f.now)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultInterval, card.Interval)
	assert.Equal(t, domain.DefaultEaseFactor, card.EaseFactor)
	assert.Equal(t, f.now, card.DueAt)

	// A fresh card is due immediately: both counters go up.
	require.Len(t, f.decks.adjustCalls, 1)
	assert.Equal(t, 1, f.decks.adjustCalls[0].cardsDelta)
	assert.Equal(t, 1, f.decks.adjustCalls[0].dueDelta)
}

func TestCreateCardEmptyFront(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateCard(context.Background(), f.userID, f.deck.ID, "", "cat", f.now)
	assert.ErrorIs(t, err, domain.ErrCardFrontEmpty)
	assert.Equal(t, 0, f.runner.calls)
}

func TestCreateCardWrongOwner(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateCard(context.Background(), uuid.New(), f.deck.ID, "gato", "cat", f.now)
	assert.ErrorIs(t, err, ErrNotDeckOwner)
	assert.Empty(t, f.decks.adjustCalls)
}

func TestCreateCardDeckNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateCard(context.Background(), f.userID, uuid.New(), "gato", "cat", f.now)
	assert.ErrorIs(t, err, ErrDeckNotFound)
}

func TestDeleteDueCard(t *testing.T) {
	f := newFixture(t)

	err := f.svc.DeleteCard(context.Background(), f.userID, f.card.ID, f.now)
	require.NoError(t, err)

	require.Len(t, f.decks.adjustCalls, 1)
	assert.Equal(t, -1, f.decks.adjustCalls[0].cardsDelta)
	assert.Equal(t, -1, f.decks.adjustCalls[0].dueDelta)
	assert.NotContains(t, f.cards.cards, f.card.ID)
}

func TestDeleteNotDueCard(t *testing.T) {
	f := newFixture(t)
	f.card.DueAt = f.now.Add(24 * time.Hour)
	f.cards.cards[f.card.ID] = f.card

	err := f.svc.DeleteCard(context.Background(), f.userID, f.card.ID, f.now)
	require.NoError(t, err)

	require.Len(t, f.decks.adjustCalls, 1)
	assert.Equal(t, -1, f.decks.adjustCalls[0].cardsDelta)
	assert.Equal(t, 0, f.decks.adjustCalls[0].dueDelta)
}

func TestDeleteCardWrongOwner(t *testing.T) {
	f := newFixture(t)

	err := f.svc.DeleteCard(context.Background(), uuid.New(), f.card.ID, f.now)
	assert.ErrorIs(t, err, ErrNotDeckOwner)
	assert.Contains(t, f.cards.cards, f.card.ID)
}

func TestGetDueCards(t *testing.T) {
	f := newFixture(t)

	cards, err := f.svc.GetDueCards(context.Background(), f.userID, f.deck.ID, f.now, 20)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, f.card.ID, cards[0].ID)

	// Read-only: no counter writes.
	assert.Empty(t, f.decks.adjustCalls)
}

func TestGetDueCardsWrongOwner(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetDueCards(context.Background(), uuid.New(), f.deck.ID, f.now, 20)
	assert.ErrorIs(t, err, ErrNotDeckOwner)
}
