// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package memory

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/omnimind/pkg/types"
)

func TestContextBlockEmpty(t *testing.T) {
	assert.Equal(t, EmptyContext, ContextBlock(nil, 8, "hello"))
}

func TestContextBlock(t *testing.T) {
	history := []types.Exchange{
		{UserText: "tell me the latest AI news", AssistantText: strings.Repeat("x", 150)},
		{UserText: "search for golang generics tutorials", AssistantText: "Here are results"},
	}

	block := ContextBlock(history, 8, "golang generics examples please")

	assert.True(t, strings.HasPrefix(block, "CONVERSATION MEMORY:\n"))
	assert.Contains(t, block, "Exchange 1:\n  User: tell me the latest AI news\n  You: "+strings.Repeat("x", 100)+"...\n")
	assert.Contains(t, block, "Exchange 2:\n  User: search for golang generics tutorials\n  You: Here are results\n")
	assert.Contains(t, block, "Recent topics discussed: search, news\n")
	assert.Contains(t, block, "Current topic thread: search\n")
	assert.Contains(t, block, "Topic connections found:\n- Relates to: 'search for golang generics tutorials'\n")
	assert.NotContains(t, block, "Relates to: 'tell me")
	assert.Contains(t, block, "CONVERSATION INSTRUCTIONS:")

	assert.Equal(t, block, ContextBlock(history, 8, "golang generics examples please"), "must be deterministic")
}

func TestContextBlockWindowAndConnectionCap(t *testing.T) {
	var history []types.Exchange
	for i := 1; i <= 10; i++ {
		history = append(history, types.Exchange{
			UserText:      fmt.Sprintf("message %d about rust borrow checker", i),
			AssistantText: "answer",
		})
	}

	block := ContextBlock(history, 3, "rust borrow rules")
	assert.Contains(t, block, "Exchange 3:\n  User: message 10 about rust borrow checker")
	assert.NotContains(t, block, "Exchange 4:")
	assert.NotContains(t, block, "message 7 ")
	assert.Equal(t, 2, strings.Count(block, "- Relates to:"))
}

func TestContextBlockNoConnectionOnSingleSharedWord(t *testing.T) {
	history := []types.Exchange{{UserText: "the weather is nice", AssistantText: "yes"}}
	block := ContextBlock(history, 8, "the stock market")
	assert.NotContains(t, block, "Topic connections found")
}
