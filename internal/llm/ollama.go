// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultOllamaURL is the address of a local Ollama server.
const DefaultOllamaURL = "http://localhost:11434"

// OllamaGenerator calls a local Ollama server's /api/generate endpoint
// without streaming.
type OllamaGenerator struct {
	BaseURL     string
	Model       string
	Temperature float64
	Client      *http.Client
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Options ollamaOptions `json:"options"`
	Stream  bool          `json:"stream"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type ollamaResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Generate renders system and user into one chat-tagged prompt.
func (g *OllamaGenerator) Generate(ctx context.Context, system, user string, opts ...Option) (string, error) {
	o := applyOptions(Options{Temperature: g.Temperature}, opts)

	base := strings.TrimRight(g.BaseURL, "/")
	if base == "" {
		base = DefaultOllamaURL
	}

	body, err := json.Marshal(ollamaRequest{
		Model:  g.Model,
		Prompt: fmt.Sprintf("<|system|>\n%s\n<|user|>\n%s\n<|assistant|>", system, user),
		Options: ollamaOptions{
			Temperature: o.Temperature,
			NumPredict:  o.MaxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Ollama at %s: %w", base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("Ollama returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var or ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return "", fmt.Errorf("decoding Ollama response: %w", err)
	}
	if or.Error != "" {
		return "", fmt.Errorf("Ollama error: %s", or.Error)
	}
	return checkOutput(or.Response)
}
