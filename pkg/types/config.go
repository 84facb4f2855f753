package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "omnimind/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EngineConfig holds settings for one search backend.
type EngineConfig struct {
	// Enabled controls whether the engine joins the fan-out.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// URLs lists base URLs in priority order. For mirror-capable engines
	// the first endpoint returning a non-empty result set wins.
	URLs []string `json:"urls" yaml:"urls"`

	// Rate is the sustained request rate per second (0 disables limiting).
	Rate float64 `json:"rate" yaml:"rate"`
}

// SearchConfig holds settings for the aggregator and its engines.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// OverallTimeout is the aggregator deadline for one SearchAll call (default 15s).
	OverallTimeout time.Duration `json:"overall_timeout" yaml:"overall_timeout"`

	// PerEngineLimit is the maximum number of results requested from each engine (default 5).
	PerEngineLimit int `json:"per_engine_limit" yaml:"per_engine_limit"`

	SearXNG   EngineConfig `json:"searxng" yaml:"searxng"`
	Wikipedia EngineConfig `json:"wikipedia" yaml:"wikipedia"`
	YaCy      EngineConfig `json:"yacy" yaml:"yacy"`
	Arxiv     EngineConfig `json:"arxiv" yaml:"arxiv"`
}

// NewsConfig holds the RSS feed lists used for headlines.
type NewsConfig struct {
	// Feeds maps a feed key (a region such as "india" or "world", or
	// "breaking" and "default") to feed URLs in priority order. The first
	// feed with items wins.
	Feeds map[string][]string `json:"feeds" yaml:"feeds"`

	// Items is the number of headlines shown (default 5).
	Items int `json:"items" yaml:"items"`
}

// WeatherConfig holds settings for the weather skill.
type WeatherConfig struct {
	// BaseURL is the wttr.in compatible endpoint.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Location is used when a request names no place. Empty lets the
	// service locate the caller.
	Location string `json:"location" yaml:"location"`
}

// MemoryBackend selects the durable history store.
type MemoryBackend string

const (
	MemoryJSON   MemoryBackend = "json"
	MemorySQLite MemoryBackend = "sqlite"
)

// MemoryConfig holds settings for conversation memory.
type MemoryConfig struct {
	// Dir is the directory holding the history and profile stores.
	Dir string `json:"dir" yaml:"dir"`

	// Backend selects json (conversations.json) or sqlite (conversations.db).
	Backend MemoryBackend `json:"backend" yaml:"backend"`

	// Window is the number of recent exchanges used for context (default 8).
	Window int `json:"window" yaml:"window"`
}

// LLMProvider identifies the text-generation service.
type LLMProvider string

const (
	ProviderOllama LLMProvider = "ollama"
	ProviderClaude LLMProvider = "claude"
)

// LLMConfig holds settings for the external text-generation service.
type LLMConfig struct {
	Provider LLMProvider `json:"provider" yaml:"provider"`

	// BaseURL is the service endpoint (e.g. "http://localhost:11434").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Model is the model identifier (e.g. "qwen2.5:3b").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key, loaded from .secrets/ when empty.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Temperature is the default sampling temperature.
	Temperature float64 `json:"temperature" yaml:"temperature"`

	// Timeout bounds one generate call.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// Format is console or json.
	Format string `json:"format" yaml:"format"`
}

// Config groups all component configurations.
type Config struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	News    NewsConfig    `json:"news" yaml:"news"`
	Weather WeatherConfig `json:"weather" yaml:"weather"`
	Memory  MemoryConfig  `json:"memory" yaml:"memory"`
	LLM     LLMConfig     `json:"llm" yaml:"llm"`
	Log     LogConfig     `json:"log" yaml:"log"`
}
