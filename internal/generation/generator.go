package generation

import "context"

// Phrase is a generated front/back draft. It is plain content: the
// caller decides whether to turn it into a card.
type Phrase struct {
	// Front is the example sentence in the language being learned.
	Front string `json:"front"`

	// Back is the translation into the user's language.
	Back string `json:"back"`
}

// PhraseGenerator defines the interface for producing example phrases
// around a keyword. This interface is the boundary between the
// application core and external AI/LLM services.
type PhraseGenerator interface {
	// GeneratePhrases creates up to count front/back phrase drafts
	// using the keyword in the given language, translated into
	// targetLanguage.
	//
	// Returns ErrEmptyKeyword, ErrContentBlocked, ErrInvalidResponse,
	// or ErrTransientFailure (after bounded retries).
	GeneratePhrases(
		ctx context.Context,
		keyword, language, targetLanguage string,
		count int,
	) ([]Phrase, error)
}
