package gemini

// responseSchema represents the expected structure of the Gemini JSON response.
type responseSchema struct {
	// Phrases is the array of front/back drafts generated for the keyword
	Phrases []phraseSchema `json:"phrases"`
}

// phraseSchema represents a single phrase draft in the API response
type phraseSchema struct {
	// Sentence is the example sentence using the keyword
	Sentence string `json:"sentence"`

	// Translation is the sentence translated into the target language
	Translation string `json:"translation"`
}
