package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"google.golang.org/genai"

	"github.com/sstepanov/recall-api/internal/config"
	"github.com/sstepanov/recall-api/internal/generation"
)

// promptTemplate asks the model for short example sentences using the
// keyword, with translations, as strict JSON so the response can be
// parsed without heuristics.
const promptTemplate = `You are helping a language learner build flashcards.
For the word or phrase %q in %s, write %d short, natural example sentences
that use it in everyday contexts. Translate each sentence into %s.

Respond with JSON only, in exactly this shape:
{"phrases": [{"sentence": "...", "translation": "..."}]}`

const (
	maxRetries        = 3
	baseRetryDelaySec = 2
	defaultCount      = 3
	maxCount          = 10
)

// PhraseGenerator implements generation.PhraseGenerator using the
// Gemini API.
type PhraseGenerator struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// Ensure PhraseGenerator implements the interface
var _ generation.PhraseGenerator = (*PhraseGenerator)(nil)

// NewPhraseGenerator creates a PhraseGenerator from LLM configuration.
// Returns generation.ErrInvalidConfig if the API key or model name is missing.
func NewPhraseGenerator(
	ctx context.Context,
	log *slog.Logger,
	cfg config.LLMConfig,
) (*PhraseGenerator, error) {
	if log == nil {
		log = slog.Default()
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &PhraseGenerator{
		logger: log.With(slog.String("component", "phrase_generator")),
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// GeneratePhrases implements generation.PhraseGenerator.
func (g *PhraseGenerator) GeneratePhrases(
	ctx context.Context,
	keyword, language, targetLanguage string,
	count int,
) ([]generation.Phrase, error) {
	if keyword == "" {
		return nil, generation.ErrEmptyKeyword
	}
	if count <= 0 {
		count = defaultCount
	}
	if count > maxCount {
		count = maxCount
	}

	prompt := fmt.Sprintf(promptTemplate, keyword, language, count, targetLanguage)

	response, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	phrases := make([]generation.Phrase, 0, len(response.Phrases))
	for _, p := range response.Phrases {
		if p.Sentence == "" || p.Translation == "" {
			g.logger.WarnContext(ctx, "skipping incomplete phrase in response",
				slog.String("keyword", keyword))
			continue
		}
		phrases = append(phrases, generation.Phrase{
			Front: p.Sentence,
			Back:  p.Translation,
		})
	}

	if len(phrases) == 0 {
		return nil, fmt.Errorf("%w: no usable phrases in response", generation.ErrInvalidResponse)
	}

	g.logger.InfoContext(ctx, "phrases generated",
		slog.String("keyword", keyword),
		slog.Int("count", len(phrases)))
	return phrases, nil
}

// callWithRetry calls the Gemini API with exponential backoff and
// jitter on transient errors. Permanent errors (blocked content,
// unparseable responses) are returned immediately.
func (g *PhraseGenerator) callWithRetry(ctx context.Context, prompt string) (*responseSchema, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		response, err := g.callOnce(ctx, prompt)
		if err == nil {
			return response, nil
		}
		lastErr = err

		if errors.Is(err, generation.ErrContentBlocked) || errors.Is(err, generation.ErrInvalidResponse) {
			g.logger.WarnContext(ctx, "permanent generation error, not retrying",
				slog.String("error", err.Error()))
			return nil, err
		}

		if attempt >= maxRetries {
			break
		}

		// delay = baseDelay * 2^attempt * (0.5 + rand(0, 0.5))
		backoff := float64(baseRetryDelaySec) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rng.Float64()*0.5) * float64(time.Second))

		g.logger.InfoContext(ctx, "retrying Gemini call after delay",
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}

	return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
		generation.ErrTransientFailure, maxRetries, lastErr)
}

// callOnce makes a single Gemini API call and parses the JSON body.
func (g *PhraseGenerator) callOnce(ctx context.Context, prompt string) (*responseSchema, error) {
	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		// API-level failures are assumed transient; the retry loop
		// decides when to give up.
		return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("%w: response stopped by safety filters", generation.ErrContentBlocked)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: empty response text", generation.ErrInvalidResponse)
	}

	var parsed responseSchema
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
	}

	return &parsed, nil
}
