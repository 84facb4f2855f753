package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/omnimind/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search every enabled engine and merge the results",
	Long: `Search sends the query to every enabled engine concurrently, waits at most
search.timeout, and prints the merged results in engine priority order with
duplicate URLs removed. Engines that fail or time out are reported below the
results and never hide what the others returned.

With --summarize the top results are summarized by the configured language
model with [n] citations. Combined with --json the output becomes an object
with "results" and "summary" fields; the summary is empty when none could be
produced.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		asJSON, _ := cmd.Flags().GetBool("json")
		summarize, _ := cmd.Flags().GetBool("summarize")
		limit, _ := cmd.Flags().GetInt("limit")
		if limit <= 0 {
			limit = appCfg.Search.PerEngineLimit
		}

		agg := newAggregator()
		if len(agg.Engines()) == 0 {
			return fmt.Errorf("no search engines configured")
		}

		out, err := agg.SearchAll(cmd.Context(), query, limit)
		if err != nil {
			return err
		}

		summary := ""
		if summarize && len(out.Results) > 0 {
			if syn := newSynthesizer(); syn != nil {
				var ok bool
				if summary, ok = syn.Summarize(cmd.Context(), query, out.Results, 0); !ok {
					fmt.Fprintln(os.Stderr, "summary unavailable")
				}
			}
		}

		switch {
		case asJSON && summarize:
			return search.FormatJSONWithSummary(out, summary, os.Stdout)
		case asJSON:
			return search.FormatJSON(out, os.Stdout)
		}
		search.FormatTable(out, os.Stdout)
		if summary != "" {
			fmt.Printf("\nSummary:\n%s\n", summary)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("summarize", false, "append a cited summary of the top results")
	searchCmd.Flags().Int("limit", 0, "maximum results per engine (default search.per_engine_limit)")

	rootCmd.AddCommand(searchCmd)
}
