// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate sends prompts to a hosted text-generation API and returns
// the reply text. Each call is a single request: no caching and no retry.
package generate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/draftwise/pkg/types"
)

// Default models per provider, used when no model is configured.
const (
	DefaultModel       = "gemini-2.5-flash-lite"
	DefaultClaudeModel = "claude-sonnet-4-5-20250929"
)

// DefaultModelFor returns the default model of provider. An empty or
// unknown provider gets the Gemini default.
func DefaultModelFor(p types.Provider) string {
	if p == types.ProviderClaude {
		return DefaultClaudeModel
	}
	return DefaultModel
}

// Generator abstracts the text-generation backend so tests can supply a stub.
type Generator interface {
	Generate(ctx context.Context, prompt, model string) (string, error)
}

// Func adapts a plain function to Generator.
type Func func(ctx context.Context, prompt, model string) (string, error)

// Generate calls f.
func (f Func) Generate(ctx context.Context, prompt, model string) (string, error) {
	return f(ctx, prompt, model)
}

// Error reports a failed generation call. The underlying cause is available
// through errors.Unwrap.
type Error struct {
	Provider types.Provider
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("text generation failed (%s): %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrEmptyReply is wrapped in an *Error when the backend returns no text.
var ErrEmptyReply = errors.New("empty reply")

// New returns the backend selected by cfg.Provider. An empty provider means
// Gemini. The API key is required.
func New(cfg types.AIConfig) (Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("no API key configured for provider %q", providerOrDefault(cfg.Provider))
	}
	client := &http.Client{Timeout: cfg.Timeout}

	switch providerOrDefault(cfg.Provider) {
	case types.ProviderGemini:
		return &Gemini{APIKey: cfg.APIKey, Client: client}, nil
	case types.ProviderClaude:
		return &Claude{APIKey: cfg.APIKey, Client: client}, nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want gemini or claude)", cfg.Provider)
	}
}

func providerOrDefault(p types.Provider) types.Provider {
	if p == "" {
		return types.ProviderGemini
	}
	return p
}

// finish trims reply text and wraps failures in *Error.
func finish(provider types.Provider, text string, err error) (string, error) {
	if err != nil {
		return "", &Error{Provider: provider, Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &Error{Provider: provider, Err: ErrEmptyReply}
	}
	return text, nil
}
