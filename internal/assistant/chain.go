// Package assistant talks to the generative-language service: it builds the
// prompt, walks an ordered list of model backends, and pulls structured
// workout plans out of the replies.
package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/Pranav-Anand04/TerpFit/internal"
	"github.com/Pranav-Anand04/TerpFit/internal/config"
	"github.com/Pranav-Anand04/TerpFit/internal/observability"
)

// Backend is one model endpoint.
type Backend interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Chain tries its backends in order until one answers.
type Chain struct {
	backends []Backend
	timeout  time.Duration
	logger   internal.Logger
	// setupErr is returned from every Ask when the chain could not be built,
	// so a missing key shows up in chat instead of at startup.
	setupErr error
}

func NewChain(backends []Backend, timeout time.Duration, logger internal.Logger) *Chain {
	return &Chain{backends: backends, timeout: timeout, logger: logger}
}

// New builds the Gemini chain from configuration. It never fails: setup
// problems such as a missing API key are reported by Ask.
func New(ctx context.Context, cfg *config.Config, logger internal.Logger) *Chain {
	backends, err := NewGeminiBackends(ctx, cfg.GeminiAPIKey, cfg.GeminiModels, SettingsFromConfig(cfg))
	c := NewChain(backends, cfg.AssistantTimeout, logger)
	if err != nil {
		logger.Warnf("assistant: disabled: %v", err)
		c.setupErr = err
	}
	return c
}

// Ask renders the prompt for req and returns the first successful reply.
func (c *Chain) Ask(ctx context.Context, req Request) (string, error) {
	if c.setupErr != nil {
		return "", fmt.Errorf("%w: %w", internal.ErrAssistantUnavailable, c.setupErr)
	}
	if len(c.backends) == 0 {
		return "", fmt.Errorf("%w: no backends configured", internal.ErrAssistantUnavailable)
	}

	prompt, err := BuildPrompt(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", internal.ErrAssistantUnavailable, err)
	}

	var lastErr error
	for _, b := range c.backends {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", internal.ErrAssistantUnavailable, err)
		}
		reply, err := c.call(ctx, b, prompt)
		if err == nil {
			return reply, nil
		}
		c.logger.Warnf("assistant: %s failed, trying next model: %v", b.Name(), err)
		lastErr = err
	}
	return "", fmt.Errorf("%w: %w", internal.ErrAssistantUnavailable, lastErr)
}

func (c *Chain) call(ctx context.Context, b Backend, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	start := time.Now()
	reply, err := b.Generate(ctx, prompt)
	observability.RecordAssistantCall(b.Name(), time.Since(start), err)
	return reply, err
}
