// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/omnimind/internal/textutil"
	"github.com/pdiddy/omnimind/pkg/types"
)

// FormatTable writes results and engine status as a human-readable table.
func FormatTable(out Output, w io.Writer) {
	switch {
	case out.Unavailable():
		fmt.Fprintln(w, "Search unavailable: no engine answered.")
	case len(out.Results) == 0:
		fmt.Fprintln(w, "No results found.")
	default:
		fmt.Fprintf(w, "%-4s  %-50s  %-10s  %s\n", "Rank", "Title", "Source", "URL")
		fmt.Fprintln(w, strings.Repeat("-", 110))
		for i, r := range out.Results {
			fmt.Fprintf(w, "%-4d  %-50s  %-10s  %s\n",
				i+1, textutil.Truncate(r.Title, 47, "..."), r.Source, r.URL)
		}
		fmt.Fprintf(w, "\n%d results", len(out.Results))
		if out.DupsRemoved > 0 {
			fmt.Fprintf(w, " (%d duplicates removed)", out.DupsRemoved)
		}
		fmt.Fprintln(w)
	}

	for _, oc := range out.Outcomes {
		switch {
		case oc.Abandoned:
			fmt.Fprintf(w, "  %-10s  timed out\n", oc.Engine)
		case oc.Err != nil:
			fmt.Fprintf(w, "  %-10s  failed (%s)\n", oc.Engine, KindOf(oc.Err))
		default:
			fmt.Fprintf(w, "  %-10s  %d results in %v\n", oc.Engine, oc.Count, oc.Elapsed.Round(1e6))
		}
	}
}

// FormatJSON writes results as indented JSON. When no engine answered the
// array holds the single search-unavailable sentinel instead of being empty.
func FormatJSON(out Output, w io.Writer) error {
	return writeJSON(w, jsonResults(out))
}

// SummaryJSON is the --summarize shape of FormatJSONWithSummary. Summary
// is empty when no summary could be produced.
type SummaryJSON struct {
	Results []types.SearchResult `json:"results"`
	Summary string               `json:"summary"`
}

// FormatJSONWithSummary writes results and summary as one indented JSON
// object.
func FormatJSONWithSummary(out Output, summary string, w io.Writer) error {
	return writeJSON(w, SummaryJSON{Results: jsonResults(out), Summary: summary})
}

func jsonResults(out Output) []types.SearchResult {
	if out.Unavailable() {
		return []types.SearchResult{types.Unavailable()}
	}
	if out.Results == nil {
		return []types.SearchResult{}
	}
	return out.Results
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
