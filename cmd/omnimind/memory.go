package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/omnimind/internal/memory"
	"github.com/pdiddy/omnimind/internal/textutil"
)

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Inspect and export conversation memory",
	Long: `Memory prints what the assistant remembers: recent exchanges, the topic
profile, the context block injected into chat prompts, and the learned user
profile. Export writes everything as YAML or JSON.`,
}

var memoryShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print recent exchanges",
	RunE: func(cmd *cobra.Command, args []string) error {
		mem, err := openMemory()
		if err != nil {
			return err
		}
		defer mem.Close()

		n, _ := cmd.Flags().GetInt("last")
		history, err := mem.Recent(cmd.Context(), n)
		if err != nil {
			return err
		}
		if len(history) == 0 {
			fmt.Println("No conversations yet.")
			return nil
		}
		for _, ex := range history {
			skill := ""
			if ex.SkillExecuted != "" {
				skill = " [" + ex.SkillExecuted + "]"
			}
			fmt.Printf("%s%s\n  you: %s\n  omnimind: %s\n\n",
				ex.Timestamp.Local().Format("2006-01-02 15:04"), skill,
				ex.UserText, textutil.Truncate(ex.AssistantText, 200, "..."))
		}
		return nil
	},
}

var memoryTopicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Print the topic profile of recent exchanges",
	RunE: func(cmd *cobra.Command, args []string) error {
		mem, err := openMemory()
		if err != nil {
			return err
		}
		defer mem.Close()

		p, err := mem.Topics(cmd.Context())
		if err != nil {
			return err
		}
		flow, err := mem.Flow(cmd.Context())
		if err != nil {
			return err
		}
		keywords, err := mem.Keywords(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Recent topics:  %s\n", orNone(p.RecentTopics))
		fmt.Printf("Style:          %s\n", p.CommunicationStyle)
		fmt.Printf("Interests:      %s\n", orNone(p.Interests))
		fmt.Printf("Depth:          %d exchanges\n", flow.Depth)
		fmt.Printf("Continuing:     %t\n", flow.Continuing)
		fmt.Printf("Questioning:    %t\n", flow.QuestionPattern)
		if flow.LastTopic != "" {
			fmt.Printf("Last topic:     %s\n", flow.LastTopic)
		}
		fmt.Printf("Keywords:       %s\n", keywordList(keywords, 10))
		return nil
	},
}

var memoryContextCmd = &cobra.Command{
	Use:   "context [message]",
	Short: "Print the memory block that would accompany a chat message",
	RunE: func(cmd *cobra.Command, args []string) error {
		mem, err := openMemory()
		if err != nil {
			return err
		}
		defer mem.Close()

		block, err := mem.Context(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Println(block)
		return nil
	},
}

var memoryProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Print the learned user profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		mem, err := openMemory()
		if err != nil {
			return err
		}
		defer mem.Close()

		fmt.Println(mem.Profile().Summary)
		return nil
	},
}

var memoryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export profile, topics and history as YAML or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		mem, err := openMemory()
		if err != nil {
			return err
		}
		defer mem.Close()

		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		var w io.Writer = os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}
		if err := mem.Export(cmd.Context(), w, format); err != nil {
			return err
		}
		if output != "" {
			fmt.Fprintf(os.Stderr, "Exported memory to %s\n", output)
		}
		return nil
	},
}

func keywordList(kws []memory.KeywordCount, limit int) string {
	if len(kws) > limit {
		kws = kws[:limit]
	}
	items := make([]string, len(kws))
	for i, kw := range kws {
		items[i] = fmt.Sprintf("%s (%d)", kw.Keyword, kw.Count)
	}
	return orNone(items)
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func init() {
	memoryShowCmd.Flags().Int("last", 10, "number of exchanges to print (0 for all)")
	memoryExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	memoryExportCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")

	memoryCmd.AddCommand(memoryShowCmd, memoryTopicsCmd, memoryContextCmd, memoryProfileCmd, memoryExportCmd)
	rootCmd.AddCommand(memoryCmd)
}
