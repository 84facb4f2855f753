// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// The filename is the key name and the trimmed contents are the value.
//
// The claude text generator reads anthropic-api-key.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/omnimind/internal/logging"
)

// AnthropicAPIKey names the claude API key file.
const AnthropicAPIKey = "anthropic-api-key"

// Secrets maps key names to values.
type Secrets map[string]string

// Get returns the value for key, or "" when it was not loaded.
func (s Secrets) Get(key string) string {
	return s[key]
}

// Load reads every file in dir. A missing directory is not an error; Load
// returns an empty set. Unreadable files are logged and skipped.
func Load(dir string, log *zap.Logger) (Secrets, error) {
	log = logging.OrNop(log)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	out := make(Secrets)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("could not read secret", zap.String("key", name), zap.Error(err))
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			out[name] = value
		}
	}

	log.Debug("secrets loaded", zap.Int("count", len(out)))
	return out, nil
}
