package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/Pranav-Anand04/TerpFit/internal"
	"github.com/Pranav-Anand04/TerpFit/internal/config"
)

// GenerationSettings are the sampling knobs sent with every request.
type GenerationSettings struct {
	Temperature     float32
	TopK            float32
	TopP            float32
	MaxOutputTokens int32
}

func SettingsFromConfig(cfg *config.Config) GenerationSettings {
	return GenerationSettings{
		Temperature:     cfg.Temperature,
		TopK:            cfg.TopK,
		TopP:            cfg.TopP,
		MaxOutputTokens: cfg.MaxOutputTokens,
	}
}

// GeminiBackend calls one Gemini model through the GenAI SDK.
type GeminiBackend struct {
	client *genai.Client
	model  string
	gen    *genai.GenerateContentConfig
}

// NewGeminiBackends builds one backend per model, all sharing a client. The
// order of models is the fallback order.
func NewGeminiBackends(ctx context.Context, apiKey string, models []string, settings GenerationSettings) ([]Backend, error) {
	if apiKey == "" {
		return nil, internal.ErrMissingCredential
	}
	if len(models) == 0 {
		return nil, errors.New("assistant: no models configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("assistant: creating GenAI client: %w", err)
	}

	gen := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(settings.Temperature),
		TopK:            genai.Ptr(settings.TopK),
		TopP:            genai.Ptr(settings.TopP),
		MaxOutputTokens: settings.MaxOutputTokens,
	}

	backends := make([]Backend, 0, len(models))
	for _, m := range models {
		backends = append(backends, &GeminiBackend{client: client, model: m, gen: gen})
	}
	return backends, nil
}

func (g *GeminiBackend) Name() string { return g.model }

func (g *GeminiBackend) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.gen)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", g.model, err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini %s: unexpected response format: no text candidates", g.model)
	}
	return text, nil
}
