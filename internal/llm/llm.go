// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm wraps the external text-generation services behind one
// Generator interface. The model itself is out of process; every call may
// fail or time out and callers degrade instead of aborting.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/omnimind/pkg/types"
)

// ErrorPrefix marks generated text that is really an error report. Some
// local model servers answer 200 with such text instead of failing.
const ErrorPrefix = "[Error]"

// ErrEmptyOutput is returned when the service answered with no text.
var ErrEmptyOutput = errors.New("generator returned empty output")

// Generator produces text from a system and a user prompt.
type Generator interface {
	Generate(ctx context.Context, system, user string, opts ...Option) (string, error)
}

// Options are per-call generation settings.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// Option mutates Options.
type Option func(*Options)

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(o *Options) { o.Temperature = t }
}

// WithMaxTokens caps the generated length. Zero leaves the service default.
func WithMaxTokens(n int) Option {
	return func(o *Options) { o.MaxTokens = n }
}

func applyOptions(defaults Options, opts []Option) Options {
	o := defaults
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// New builds the generator selected by cfg.Provider.
func New(cfg types.LLMConfig, client *http.Client) (Generator, error) {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	switch cfg.Provider {
	case types.ProviderOllama, "":
		return &OllamaGenerator{
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Client:      client,
		}, nil
	case types.ProviderClaude:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("llm provider %q requires an API key (.secrets/anthropic-api-key)", cfg.Provider)
		}
		return &ClaudeGenerator{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Client:      client,
		}, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// checkOutput rejects empty and error-shaped text.
func checkOutput(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyOutput
	}
	if strings.HasPrefix(text, ErrorPrefix) {
		return "", fmt.Errorf("generator reported failure: %s", text)
	}
	return text, nil
}
