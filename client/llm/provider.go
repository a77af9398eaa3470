package llm

import (
	"context"
	"errors"
	"fmt"
)

var ErrLLMNotConfigured = errors.New("no LLM API key configured")

// LLMProvider generates a text response for a prompt.
type LLMProvider interface {
	GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error)
	GetProviderName() string
}

// NewLLMProvider picks the provider by name. An empty key yields a provider
// that fails every call with ErrLLMNotConfigured, so the service can still
// start and serve the endpoints that need no model.
func NewLLMProvider(name, model, geminiKey, openAIKey string) LLMProvider {
	switch name {
	case "openai":
		if openAIKey == "" {
			return unconfiguredProvider{name: "OpenAI"}
		}
		return NewOpenAIProvider(openAIKey, model, 0.3, 800)
	default:
		if geminiKey == "" {
			return unconfiguredProvider{name: "Google Gemini"}
		}
		return NewGeminiProvider(geminiKey, model, 0.3, 2048)
	}
}

type unconfiguredProvider struct {
	name string
}

func (p unconfiguredProvider) GetProviderName() string {
	return p.name
}

func (p unconfiguredProvider) GenerateResponse(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	return "", fmt.Errorf("%s: %w", p.name, ErrLLMNotConfigured)
}
