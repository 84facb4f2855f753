// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/omnimind/pkg/types"
)

// Snapshot is the exported view of memory.
type Snapshot struct {
	Profile   types.UserProfile  `json:"profile" yaml:"profile"`
	Topics    types.TopicProfile `json:"topics" yaml:"topics"`
	Flow      Flow               `json:"flow" yaml:"flow"`
	Keywords  []KeywordCount     `json:"keywords" yaml:"keywords"`
	Exchanges []types.Exchange   `json:"exchanges" yaml:"exchanges"`
}

// Snapshot collects the profile, derived state and the full history.
func (m *Memory) Snapshot(ctx context.Context) (Snapshot, error) {
	h, err := m.history.Recent(ctx, 0)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading history: %w", err)
	}
	if h == nil {
		h = []types.Exchange{}
	}
	return Snapshot{
		Profile:   m.Profile(),
		Topics:    RecentTopics(h, m.window),
		Flow:      AnalyzeFlow(h),
		Keywords:  KeywordStats(h, m.window),
		Exchanges: h,
	}, nil
}

// Export writes the snapshot to w as "yaml" or "json".
func (m *Memory) Export(ctx context.Context, w io.Writer, format string) error {
	snap, err := m.Snapshot(ctx)
	if err != nil {
		return err
	}

	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported export format %q (want yaml or json)", format)
	}
}
