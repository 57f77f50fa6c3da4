package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sstepanov/recall-api/internal/api/shared"
	"github.com/sstepanov/recall-api/internal/domain"
	"github.com/sstepanov/recall-api/internal/service/review"
)

// mockReviewService implements review.Service with pluggable functions.
type mockReviewService struct {
	reviewFn func(ctx context.Context, userID, cardID uuid.UUID, rating domain.ReviewRating, now time.Time) (*domain.Card, error)
	createFn func(ctx context.Context, userID, deckID uuid.UUID, front, back string, now time.Time) (*domain.Card, error)
	deleteFn func(ctx context.Context, userID, cardID uuid.UUID, now time.Time) error
	dueFn    func(ctx context.Context, userID, deckID uuid.UUID, now time.Time, limit int) ([]*domain.Card, error)
}

func (m *mockReviewService) ReviewCard(
	ctx context.Context,
	userID, cardID uuid.UUID,
	rating domain.ReviewRating,
	now time.Time,
) (*domain.Card, error) {
	return m.reviewFn(ctx, userID, cardID, rating, now)
}

func (m *mockReviewService) CreateCard(
	ctx context.Context,
	userID, deckID uuid.UUID,
	front, back string,
	now time.Time,
) (*domain.Card, error) {
	return m.createFn(ctx, userID, deckID, front, back, now)
}

func (m *mockReviewService) DeleteCard(ctx context.Context, userID, cardID uuid.UUID, now time.Time) error {
	return m.deleteFn(ctx, userID, cardID, now)
}

func (m *mockReviewService) GetDueCards(
	ctx context.Context,
	userID, deckID uuid.UUID,
	now time.Time,
	limit int,
) ([]*domain.Card, error) {
	return m.dueFn(ctx, userID, deckID, now, limit)
}

// newAuthedRequest builds a request carrying an authenticated user ID
// and a chi route parameter.
func newAuthedRequest(
	t *testing.T,
	method, target, body string,
	userID uuid.UUID,
	params map[string]string,
) *http.Request {
	t.Helper()

	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}

	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)

	return r.WithContext(ctx)
}

func TestReviewCardHandler(t *testing.T) {
	userID := uuid.New()
	cardID := uuid.New()

	svc := &mockReviewService{
		reviewFn: func(ctx context.Context, gotUser, gotCard uuid.UUID, rating domain.ReviewRating, now time.Time) (*domain.Card, error) {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, cardID, gotCard)
			assert.Equal(t, domain.ReviewRatingGood, rating)
			return &domain.Card{
				ID:         gotCard,
				DeckID:     uuid.New(),
				FrontText:  "front",
				BackText:   "back",
				Interval:   2.0,
				EaseFactor: 2.5,
				DueAt:      now.Add(24 * time.Hour),
			}, nil
		},
	}
	handler := NewCardHandler(svc)

	r := newAuthedRequest(t, http.MethodPost, "/api/cards/"+cardID.String()+"/review",
		`{"rating":"good"}`, userID, map[string]string{"id": cardID.String()})
	w := httptest.NewRecorder()

	handler.ReviewCard(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp CardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, cardID, resp.ID)
	assert.Equal(t, 2.0, resp.Interval)
}

func TestReviewCardHandlerInvalidRating(t *testing.T) {
	svc := &mockReviewService{
		reviewFn: func(ctx context.Context, userID, cardID uuid.UUID, rating domain.ReviewRating, now time.Time) (*domain.Card, error) {
			return nil, domain.ErrInvalidRating
		},
	}
	handler := NewCardHandler(svc)

	cardID := uuid.New()
	r := newAuthedRequest(t, http.MethodPost, "/api/cards/"+cardID.String()+"/review",
		`{"rating":"perfect"}`, uuid.New(), map[string]string{"id": cardID.String()})
	w := httptest.NewRecorder()

	handler.ReviewCard(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewCardHandlerForeignCardLooksMissing(t *testing.T) {
	svc := &mockReviewService{
		reviewFn: func(ctx context.Context, userID, cardID uuid.UUID, rating domain.ReviewRating, now time.Time) (*domain.Card, error) {
			return nil, review.ErrNotDeckOwner
		},
	}
	handler := NewCardHandler(svc)

	cardID := uuid.New()
	r := newAuthedRequest(t, http.MethodPost, "/api/cards/"+cardID.String()+"/review",
		`{"rating":"good"}`, uuid.New(), map[string]string{"id": cardID.String()})
	w := httptest.NewRecorder()

	handler.ReviewCard(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "own")
}

func TestReviewCardHandlerBadCardID(t *testing.T) {
	handler := NewCardHandler(&mockReviewService{})

	r := newAuthedRequest(t, http.MethodPost, "/api/cards/nope/review",
		`{"rating":"good"}`, uuid.New(), map[string]string{"id": "nope"})
	w := httptest.NewRecorder()

	handler.ReviewCard(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewCardHandlerUnauthenticated(t *testing.T) {
	handler := NewCardHandler(&mockReviewService{})

	// No user ID in context.
	r := httptest.NewRequest(http.MethodPost, "/api/cards/x/review", strings.NewReader(`{"rating":"good"}`))
	w := httptest.NewRecorder()

	handler.ReviewCard(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateCardHandler(t *testing.T) {
	userID := uuid.New()
	deckID := uuid.New()

	svc := &mockReviewService{
		createFn: func(ctx context.Context, gotUser, gotDeck uuid.UUID, front, back string, now time.Time) (*domain.Card, error) {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, deckID, gotDeck)
			return &domain.Card{
				ID:         uuid.New(),
				DeckID:     gotDeck,
				FrontText:  front,
				BackText:   back,
				Interval:   domain.DefaultInterval,
				EaseFactor: domain.DefaultEaseFactor,
				DueAt:      now,
			}, nil
		},
	}
	handler := NewCardHandler(svc)

	body := `{"deck_id":"` + deckID.String() + `","front_text":"hola","back_text":"hello"}`
	r := newAuthedRequest(t, http.MethodPost, "/api/cards", body, userID, nil)
	w := httptest.NewRecorder()

	handler.CreateCard(w, r)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp CardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "hola", resp.FrontText)
	assert.Equal(t, domain.DefaultInterval, resp.Interval)
}

func TestCreateCardHandlerMissingFields(t *testing.T) {
	handler := NewCardHandler(&mockReviewService{})

	r := newAuthedRequest(t, http.MethodPost, "/api/cards", `{"front_text":"hola"}`, uuid.New(), nil)
	w := httptest.NewRecorder()

	handler.CreateCard(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCardHandler(t *testing.T) {
	cardID := uuid.New()
	svc := &mockReviewService{
		deleteFn: func(ctx context.Context, userID, gotCard uuid.UUID, now time.Time) error {
			assert.Equal(t, cardID, gotCard)
			return nil
		},
	}
	handler := NewCardHandler(svc)

	r := newAuthedRequest(t, http.MethodDelete, "/api/cards/"+cardID.String(), "",
		uuid.New(), map[string]string{"id": cardID.String()})
	w := httptest.NewRecorder()

	handler.DeleteCard(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetDueCardsHandler(t *testing.T) {
	deckID := uuid.New()
	svc := &mockReviewService{
		dueFn: func(ctx context.Context, userID, gotDeck uuid.UUID, now time.Time, limit int) ([]*domain.Card, error) {
			assert.Equal(t, deckID, gotDeck)
			assert.Equal(t, 5, limit)
			return []*domain.Card{
				{ID: uuid.New(), DeckID: gotDeck, FrontText: "a", BackText: "b",
					Interval: 1.0, EaseFactor: 2.5, DueAt: now.Add(-time.Hour)},
			}, nil
		},
	}
	handler := NewCardHandler(svc)

	r := newAuthedRequest(t, http.MethodGet, "/api/decks/"+deckID.String()+"/due?limit=5", "",
		uuid.New(), map[string]string{"id": deckID.String()})
	w := httptest.NewRecorder()

	handler.GetDueCards(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp []CardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
}

func TestGetDueCardsHandlerBadLimit(t *testing.T) {
	handler := NewCardHandler(&mockReviewService{})

	deckID := uuid.New()
	r := newAuthedRequest(t, http.MethodGet, "/api/decks/"+deckID.String()+"/due?limit=zero", "",
		uuid.New(), map[string]string{"id": deckID.String()})
	w := httptest.NewRecorder()

	handler.GetDueCards(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
