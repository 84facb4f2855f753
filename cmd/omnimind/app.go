// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/pdiddy/omnimind/internal/assistant"
	"github.com/pdiddy/omnimind/internal/dispatch"
	"github.com/pdiddy/omnimind/internal/llm"
	"github.com/pdiddy/omnimind/internal/memory"
	"github.com/pdiddy/omnimind/internal/search"
	"github.com/pdiddy/omnimind/internal/secrets"
	"github.com/pdiddy/omnimind/internal/synth"
)

// newAggregator builds the aggregator over the configured engines.
func newAggregator() *search.Aggregator {
	adapters := search.NewAdapters(appCfg.Search, &http.Client{}, logger)
	return search.NewAggregator(adapters, appCfg.Search.OverallTimeout, logger)
}

// newGenerator builds the configured text generator. A missing claude key
// is filled from .secrets/.
func newGenerator() (llm.Generator, error) {
	cfg := appCfg.LLM
	if cfg.APIKey == "" {
		cfg.APIKey = loadedSecrets.Get(secrets.AnthropicAPIKey)
	}
	gen, err := llm.New(cfg, &http.Client{Timeout: cfg.Timeout})
	if err != nil {
		return nil, fmt.Errorf("configuring text generator: %w", err)
	}
	return gen, nil
}

// newSynthesizer returns nil when no generator can be built; summaries are
// then skipped.
func newSynthesizer() *synth.Synthesizer {
	gen, err := newGenerator()
	if err != nil {
		logger.Warn("summaries disabled", zap.Error(err))
		return nil
	}
	return synth.New(gen, logger, synth.WithTimeout(appCfg.LLM.Timeout))
}

func openMemory() (*memory.Memory, error) {
	return memory.Open(appCfg.Memory, logger)
}

// newAssistant wires every component. The caller closes the returned memory.
func newAssistant() (*assistant.Assistant, *memory.Memory, error) {
	mem, err := openMemory()
	if err != nil {
		return nil, nil, err
	}

	gen, err := newGenerator()
	if err != nil {
		logger.Warn("chat and code generation disabled", zap.Error(err))
	}
	var syn *synth.Synthesizer
	if gen != nil {
		syn = synth.New(gen, logger, synth.WithTimeout(appCfg.LLM.Timeout))
	}

	client := &http.Client{}
	a := assistant.New(assistant.Config{
		Aggregator:  newAggregator(),
		Synthesizer: syn,
		Memory:      mem,
		Generator:   gen,
		News:        search.NewNewsFetcher(client, appCfg.Search.HTTPConfig, appCfg.News.Feeds, nil),
		NewsItems:   appCfg.News.Items,
		Weather: dispatch.WeatherSkill{
			Client:    client,
			BaseURL:   appCfg.Weather.BaseURL,
			Location:  appCfg.Weather.Location,
			UserAgent: appCfg.Search.UserAgent,
		},
		PerEngineLimit: appCfg.Search.PerEngineLimit,
		Log:            logger,
	})
	return a, mem, nil
}
