// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config maps viper settings onto types.Config with defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/omnimind/pkg/types"
)

// Default endpoints. The distributed index has no dependable public
// instance, so it ships without a URL and must be configured.
var (
	DefaultSearXNGURLs = []string{
		"https://searx.be",
		"https://searx.tiekoetter.com",
		"https://searx.prvcy.eu",
	}
	DefaultWikipediaURL = "https://en.wikipedia.org/w/api.php"
	DefaultArxivURL     = "https://export.arxiv.org/api/query"

	// DefaultNewsFeeds are tried in order per key; the first feed with
	// items wins.
	DefaultNewsFeeds = map[string][]string{
		"india": {
			"https://feeds.feedburner.com/ndtvnews-top-stories",
			"https://timesofindia.indiatimes.com/rssfeedstopstories.cms",
			"https://www.hindustantimes.com/feeds/rss/india-news/index.xml",
		},
		"world": {
			"https://feeds.bbci.co.uk/news/world/rss.xml",
			"https://rss.cnn.com/rss/edition.rss",
			"https://news.google.com/rss?hl=en-US&gl=US&ceid=US:en",
		},
		"breaking": {
			"https://feeds.bbci.co.uk/news/rss.xml",
			"https://news.google.com/rss?hl=en-US&gl=US&ceid=US:en",
		},
		"default": {
			"https://news.google.com/rss?hl=en-US&gl=US&ceid=US:en",
			"https://feeds.bbci.co.uk/news/rss.xml",
		},
	}
	DefaultWeatherURL = "https://wttr.in"
)

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("search.timeout", 15*time.Second)
	v.SetDefault("search.engine_timeout", 10*time.Second)
	v.SetDefault("search.per_engine_limit", 5)
	v.SetDefault("search.user_agent", "omnimind/0.1")

	v.SetDefault("engines.searxng.enabled", true)
	v.SetDefault("engines.searxng.urls", DefaultSearXNGURLs)
	v.SetDefault("engines.searxng.rate", 1.0)
	v.SetDefault("engines.wikipedia.enabled", true)
	v.SetDefault("engines.wikipedia.urls", []string{DefaultWikipediaURL})
	v.SetDefault("engines.wikipedia.rate", 5.0)
	v.SetDefault("engines.yacy.enabled", true)
	v.SetDefault("engines.yacy.urls", []string{})
	v.SetDefault("engines.yacy.rate", 1.0)
	v.SetDefault("engines.arxiv.enabled", false)
	v.SetDefault("engines.arxiv.urls", []string{DefaultArxivURL})
	v.SetDefault("engines.arxiv.rate", 0.33)

	for key, feeds := range DefaultNewsFeeds {
		v.SetDefault("news.feeds."+key, feeds)
	}
	v.SetDefault("news.items", 5)

	v.SetDefault("weather.base_url", DefaultWeatherURL)
	v.SetDefault("weather.location", "")

	v.SetDefault("memory.dir", "memory")
	v.SetDefault("memory.backend", string(types.MemoryJSON))
	v.SetDefault("memory.window", 8)

	v.SetDefault("llm.provider", string(types.ProviderOllama))
	v.SetDefault("llm.base_url", "http://localhost:11434")
	v.SetDefault("llm.model", "qwen2.5:3b")
	v.SetDefault("llm.temperature", 0.3)
	v.SetDefault("llm.timeout", 60*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load reads v (after SetDefaults) into a validated types.Config.
func Load(v *viper.Viper) (types.Config, error) {
	cfg := types.Config{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("search.engine_timeout"),
				UserAgent: v.GetString("search.user_agent"),
			},
			OverallTimeout: v.GetDuration("search.timeout"),
			PerEngineLimit: v.GetInt("search.per_engine_limit"),
			SearXNG:        engineConfig(v, "searxng"),
			Wikipedia:      engineConfig(v, "wikipedia"),
			YaCy:           engineConfig(v, "yacy"),
			Arxiv:          engineConfig(v, "arxiv"),
		},
		News: types.NewsConfig{
			Feeds: newsFeeds(v),
			Items: v.GetInt("news.items"),
		},
		Weather: types.WeatherConfig{
			BaseURL:  strings.TrimRight(v.GetString("weather.base_url"), "/"),
			Location: v.GetString("weather.location"),
		},
		Memory: types.MemoryConfig{
			Dir:     v.GetString("memory.dir"),
			Backend: types.MemoryBackend(v.GetString("memory.backend")),
			Window:  v.GetInt("memory.window"),
		},
		LLM: types.LLMConfig{
			Provider:    types.LLMProvider(v.GetString("llm.provider")),
			BaseURL:     v.GetString("llm.base_url"),
			Model:       v.GetString("llm.model"),
			APIKey:      v.GetString("llm.api_key"),
			Temperature: v.GetFloat64("llm.temperature"),
			Timeout:     v.GetDuration("llm.timeout"),
		},
		Log: types.LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}
	return cfg, Validate(cfg)
}

// Validate rejects settings no component can run with.
func Validate(cfg types.Config) error {
	if cfg.Search.OverallTimeout <= 0 {
		return fmt.Errorf("search.timeout must be positive, got %v", cfg.Search.OverallTimeout)
	}
	if cfg.Search.Timeout <= 0 {
		return fmt.Errorf("search.engine_timeout must be positive, got %v", cfg.Search.Timeout)
	}
	if cfg.Search.PerEngineLimit <= 0 {
		return fmt.Errorf("search.per_engine_limit must be positive, got %d", cfg.Search.PerEngineLimit)
	}
	if cfg.News.Items <= 0 {
		return fmt.Errorf("news.items must be positive, got %d", cfg.News.Items)
	}
	switch cfg.Memory.Backend {
	case types.MemoryJSON, types.MemorySQLite:
	default:
		return fmt.Errorf("unsupported memory.backend %q: use json or sqlite", cfg.Memory.Backend)
	}
	switch cfg.LLM.Provider {
	case types.ProviderOllama, types.ProviderClaude:
	default:
		return fmt.Errorf("unsupported llm.provider %q: use ollama or claude", cfg.LLM.Provider)
	}
	return nil
}

func engineConfig(v *viper.Viper, name string) types.EngineConfig {
	prefix := "engines." + name + "."
	return types.EngineConfig{
		Enabled: v.GetBool(prefix + "enabled"),
		URLs:    splitURLs(v.GetStringSlice(prefix + "urls")),
		Rate:    v.GetFloat64(prefix + "rate"),
	}
}

// newsFeeds reads every key under news.feeds. A key set to an empty list
// is dropped so its requests fall back to web search.
func newsFeeds(v *viper.Viper) map[string][]string {
	const prefix = "news.feeds."
	out := make(map[string][]string)
	for _, k := range v.AllKeys() {
		key, ok := strings.CutPrefix(k, prefix)
		if !ok || strings.Contains(key, ".") {
			continue
		}
		if urls := splitURLs(v.GetStringSlice(k)); len(urls) > 0 {
			out[key] = urls
		}
	}
	return out
}

// splitURLs accepts both YAML lists and comma-separated environment values.
func splitURLs(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			part = strings.TrimRight(strings.TrimSpace(part), "/")
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
