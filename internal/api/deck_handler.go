package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sstepanov/recall-api/internal/api/middleware"
	"github.com/sstepanov/recall-api/internal/api/shared"
	"github.com/sstepanov/recall-api/internal/generation"
	"github.com/sstepanov/recall-api/internal/service/deck"
)

// DeckHandler handles deck management API requests.
type DeckHandler struct {
	deckService deck.Service
	generator   generation.PhraseGenerator // nil when no LLM is configured
}

// NewDeckHandler creates a new DeckHandler. generator may be nil, in
// which case the phrase suggestion endpoint responds 503.
func NewDeckHandler(deckService deck.Service, generator generation.PhraseGenerator) *DeckHandler {
	return &DeckHandler{
		deckService: deckService,
		generator:   generator,
	}
}

// CreateDeck handles POST /api/decks.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateDeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid deck data")
		return
	}

	created, err := h.deckService.CreateDeck(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewDeckResponse(created))
}

// ListDecks handles GET /api/decks.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	decks, err := h.deckService.ListDecks(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	out := make([]DeckResponse, 0, len(decks))
	for _, d := range decks {
		out = append(out, NewDeckResponse(d))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// GetDeck handles GET /api/decks/{id}.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	deckID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid deck ID")
		return
	}

	found, err := h.deckService.GetDeck(r.Context(), userID, deckID)
	if err != nil {
		if errors.Is(err, deck.ErrDeckNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Deck not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewDeckResponse(found))
}

// GeneratePhrases handles POST /api/decks/{id}/generate. It returns
// phrase drafts for the caller to review; no cards are created and the
// scheduler is never involved.
func (h *DeckHandler) GeneratePhrases(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	if h.generator == nil {
		shared.RespondWithError(w, r, http.StatusServiceUnavailable, "Phrase generation is not configured")
		return
	}

	deckID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid deck ID")
		return
	}

	// Ownership gate only; generation itself does not touch the deck.
	if _, err := h.deckService.GetDeck(r.Context(), userID, deckID); err != nil {
		if errors.Is(err, deck.ErrDeckNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Deck not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	var req GeneratePhrasesRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid generation request")
		return
	}

	phrases, err := h.generator.GeneratePhrases(
		r.Context(), req.Keyword, req.Language, req.TargetLanguage, req.Count)
	if err != nil {
		switch {
		case errors.Is(err, generation.ErrContentBlocked):
			shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Content was blocked by safety filters")
		case errors.Is(err, generation.ErrTransientFailure):
			shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable,
				"Phrase generation is temporarily unavailable", err)
		default:
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"Failed to generate phrases", err)
		}
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GeneratePhrasesResponse{Phrases: phrases})
}
