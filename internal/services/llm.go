package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Sandeep010-hub/promptcraft-fusion/config"
	"github.com/avast/retry-go/v4"
)

var ErrGeneratorNotConfigured = errors.New("text generation API key not configured")

// TextGenerator sends one instruction to a text generation provider and
// returns the first piece of text it answers with, or
// FallbackGeneratedPrompt when the answer carries none.
type TextGenerator interface {
	Generate(ctx context.Context, instruction string) (string, error)
}

// ProviderError is a non-success answer from a text generation provider.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s API error: status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// classifyStatus marks client errors other than 429 as not worth retrying.
func classifyStatus(err *ProviderError) error {
	if err.StatusCode == http.StatusTooManyRequests || err.StatusCode >= http.StatusInternalServerError {
		return err
	}
	return retry.Unrecoverable(err)
}

var generatorMu sync.RWMutex
var textGenerator TextGenerator
var generateTimeout = 60 * time.Second

// SetTextGenerator registers the provider used by GeneratePrompt. A nil
// generator disables generation.
func SetTextGenerator(g TextGenerator, timeout time.Duration) {
	generatorMu.Lock()
	textGenerator = g
	if timeout > 0 {
		generateTimeout = timeout
	}
	generatorMu.Unlock()
}

func getTextGenerator() (TextGenerator, time.Duration) {
	generatorMu.RLock()
	defer generatorMu.RUnlock()
	return textGenerator, generateTimeout
}

// NewTextGenerator builds the provider selected by LLM_PROVIDER.
func NewTextGenerator(cfg *config.Config) (TextGenerator, error) {
	switch cfg.LLMProvider {
	case "gemini", "":
		if cfg.GeminiAPIKey == "" {
			return nil, ErrGeneratorNotConfigured
		}
		return NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMTimeout), nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, ErrGeneratorNotConfigured
		}
		return NewOpenAIClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.LLMTimeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

// GeneratePrompt rewrites prompt for targetModel. The provider is called at
// most twice and the answer is stripped of markdown emphasis.
func GeneratePrompt(ctx context.Context, prompt, targetModel string) (string, error) {
	gen, timeout := getTextGenerator()
	if gen == nil {
		return "", ErrGeneratorNotConfigured
	}

	instruction := BuildInstruction(prompt, targetModel)

	var raw string
	err := withRetry(ctx, "generate_prompt", timeout, func(ctx context.Context) error {
		text, err := gen.Generate(ctx, instruction)
		if err != nil {
			return err
		}
		raw = text
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate prompt: %w", err)
	}

	return CleanGeneratedPrompt(raw), nil
}
