// Package generation provides interfaces and error types for producing
// flashcard phrase drafts with external AI/LLM services. It abstracts
// the details of LLM API integration (Gemini), so the content-creation
// path can suggest example phrases without coupling to a specific
// provider. The scheduler never depends on this package.
package generation
