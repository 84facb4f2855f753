// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package memory

import (
	"fmt"
	"strings"

	"github.com/pdiddy/omnimind/internal/textutil"
	"github.com/pdiddy/omnimind/pkg/types"
)

const (
	assistantExcerptRunes  = 100
	connectionExcerptRunes = 50
	maxConnections         = 2
)

// EmptyContext is returned by ContextBlock for an empty history.
const EmptyContext = "This is the start of our conversation."

// ContextBlock renders the memory section injected into the chat prompt:
// the last n exchanges with the assistant side cut to 100 characters, topic
// continuity, and up to two earlier messages sharing more than one word with
// current. Output depends only on the arguments.
func ContextBlock(history []types.Exchange, n int, current string) string {
	if len(history) == 0 {
		return EmptyContext
	}
	recent := window(history, n)

	var sb strings.Builder
	sb.WriteString("CONVERSATION MEMORY:\n")
	for i, ex := range recent {
		fmt.Fprintf(&sb, "Exchange %d:\n", i+1)
		fmt.Fprintf(&sb, "  User: %s\n", ex.UserText)
		fmt.Fprintf(&sb, "  You: %s\n\n", textutil.Truncate(ex.AssistantText, assistantExcerptRunes, "..."))
	}

	profile := RecentTopics(history, n)
	if len(profile.RecentTopics) > 0 {
		fmt.Fprintf(&sb, "Recent topics discussed: %s\n", strings.Join(profile.RecentTopics, ", "))
	}
	if flow := AnalyzeFlow(history); flow.LastTopic != "" {
		fmt.Fprintf(&sb, "Current topic thread: %s\n", flow.LastTopic)
	}

	var connections []string
	for _, ex := range recent {
		if textutil.SharedTokens(current, ex.UserText) > 1 {
			connections = append(connections, textutil.Truncate(ex.UserText, connectionExcerptRunes, "..."))
			if len(connections) == maxConnections {
				break
			}
		}
	}
	if len(connections) > 0 {
		sb.WriteString("\nTopic connections found:\n")
		for _, c := range connections {
			fmt.Fprintf(&sb, "- Relates to: '%s'\n", c)
		}
	}

	sb.WriteString("\nCONVERSATION INSTRUCTIONS:\n")
	sb.WriteString("- Reference relevant previous messages\n")
	sb.WriteString("- Build upon established topics\n")
	sb.WriteString("- Show continuity in your responses\n")
	sb.WriteString("- Connect current question to conversation history when appropriate\n")
	return sb.String()
}
