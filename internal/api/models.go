package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/sstepanov/recall-api/internal/domain"
	"github.com/sstepanov/recall-api/internal/generation"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Token  string    `json:"token"`
}

// CreateDeckRequest defines the payload for deck creation.
type CreateDeckRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// DeckResponse is the wire representation of a deck.
type DeckResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CardsCount  int       `json:"cards_count"`
	DueCount    int       `json:"due_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewDeckResponse converts a domain deck into its wire representation.
func NewDeckResponse(deck *domain.Deck) DeckResponse {
	return DeckResponse{
		ID:          deck.ID,
		Name:        deck.Name,
		Description: deck.Description,
		CardsCount:  deck.CardsCount,
		DueCount:    deck.DueCount,
		CreatedAt:   deck.CreatedAt,
		UpdatedAt:   deck.UpdatedAt,
	}
}

// CreateCardRequest defines the payload for card creation.
type CreateCardRequest struct {
	DeckID    uuid.UUID `json:"deck_id"    validate:"required"`
	FrontText string    `json:"front_text" validate:"required,min=1,max=1000"`
	BackText  string    `json:"back_text"  validate:"required,min=1,max=1000"`
}

// ReviewCardRequest defines the payload for the review endpoint.
// Rating strings outside the three allowed values are rejected by the
// review service, not here, so the error taxonomy stays in one place.
type ReviewCardRequest struct {
	Rating string `json:"rating" validate:"required"`
}

// CardResponse is the wire representation of a card, including its
// scheduling state.
type CardResponse struct {
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

// NewCardResponse converts a domain card into its wire representation.
func NewCardResponse(card *domain.Card) CardResponse {
	return CardResponse{
		ID:         card.ID,
		DeckID:     card.DeckID,
		FrontText:  card.FrontText,
		BackText:   card.BackText,
		Interval:   card.Interval,
		EaseFactor: card.EaseFactor,
		DueAt:      card.DueAt,
		CreatedAt:  card.CreatedAt,
		UpdatedAt:  card.UpdatedAt,
	}
}

// NewCardListResponse converts a slice of domain cards.
func NewCardListResponse(cards []*domain.Card) []CardResponse {
	out := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		out = append(out, NewCardResponse(card))
	}
	return out
}

// GeneratePhrasesRequest defines the payload for the phrase suggestion
// endpoint.
type GeneratePhrasesRequest struct {
	Keyword        string `json:"keyword"         validate:"required,min=1,max=100"`
	Language       string `json:"language"        validate:"required,min=2,max=40"`
	TargetLanguage string `json:"target_language" validate:"required,min=2,max=40"`
	Count          int    `json:"count"           validate:"min=0,max=10"`
}

// GeneratePhrasesResponse carries the generated drafts. They are
// suggestions only; nothing is persisted by this endpoint.
type GeneratePhrasesResponse struct {
	Phrases []generation.Phrase `json:"phrases"`
}
