// Package gemini implements the generation.PhraseGenerator interface
// using Google's Gemini API.
package gemini
