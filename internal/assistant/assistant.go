// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assistant runs one conversational turn: route the utterance,
// run a skill or chat with the text generator, and record the exchange.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/omnimind/internal/dispatch"
	"github.com/pdiddy/omnimind/internal/llm"
	"github.com/pdiddy/omnimind/internal/logging"
	"github.com/pdiddy/omnimind/internal/memory"
	"github.com/pdiddy/omnimind/internal/search"
	"github.com/pdiddy/omnimind/internal/synth"
	"github.com/pdiddy/omnimind/pkg/types"
)

// Fallback replies used when a dependency fails.
const (
	ChatFallback  = "I'm having trouble reaching my language model right now. Please try again in a moment."
	SkillFallback = "Sorry, I couldn't complete that request right now."
)

// chatSystemPrompt is the fixed part of the chat system prompt; the profile
// summary and memory context are appended per turn.
const chatSystemPrompt = "You are OmniMind, a personal assistant running locally on the user's device. " +
	"Remember and reference previous messages when relevant, build on topics already discussed, " +
	"and keep answers clear and direct."

// Headlines reads news items from a feed list; *search.NewsFetcher
// satisfies it.
type Headlines interface {
	Headlines(ctx context.Context, key string, limit int) ([]types.SearchResult, error)
}

// Assistant wires search, synthesis, memory and skills together.
type Assistant struct {
	agg       *search.Aggregator
	synth     *synth.Synthesizer
	mem       *memory.Memory
	gen       llm.Generator
	news      Headlines
	newsItems int
	disp      *dispatch.Dispatcher
	perQuery  int
	log       *zap.Logger
	now       func() time.Time
}

// Config holds the collaborators of an Assistant. Synth and Gen may be nil;
// summaries and chat then degrade to their fallbacks. Without News, news
// requests are answered by web search. Without Weather, weather requests
// go to chat.
type Config struct {
	Aggregator     *search.Aggregator
	Synthesizer    *synth.Synthesizer
	Memory         *memory.Memory
	Generator      llm.Generator
	News           Headlines
	NewsItems      int
	Weather        dispatch.Skill
	PerEngineLimit int
	Log            *zap.Logger
}

// New builds an Assistant and registers the built-in skills.
func New(cfg Config) *Assistant {
	a := &Assistant{
		agg:       cfg.Aggregator,
		synth:     cfg.Synthesizer,
		mem:       cfg.Memory,
		gen:       cfg.Generator,
		news:      cfg.News,
		newsItems: cfg.NewsItems,
		perQuery:  cfg.PerEngineLimit,
		log:       logging.OrNop(cfg.Log),
		now:       time.Now,
	}
	if a.perQuery <= 0 {
		a.perQuery = search.DefaultPerEngineLimit
	}
	if a.newsItems <= 0 {
		a.newsItems = defaultNewsItems
	}

	a.disp = dispatch.NewDispatcher(a.log)
	a.disp.Register(dispatch.IntentSearch, dispatch.SkillFunc(func(ctx context.Context, d dispatch.Decision) (string, error) {
		return a.SmartSearch(ctx, d.Query, true), nil
	}))
	a.disp.Register(dispatch.IntentNews, dispatch.SkillFunc(a.newsSkill))
	a.disp.Register(dispatch.IntentTime, dispatch.TimeSkill{Now: func() time.Time { return a.now() }})
	if cfg.Weather != nil {
		a.disp.Register(dispatch.IntentWeather, cfg.Weather)
	}
	a.disp.Register(dispatch.IntentMusic, dispatch.MusicSkill{})
	a.disp.Register(dispatch.IntentCode, dispatch.CodeSkill{Gen: a.gen})
	return a
}

// Reply is the outcome of one turn.
type Reply struct {
	Text        string
	Intent      dispatch.Intent
	Suggestions []string
}

// Handle runs one turn for text. Dependency failures produce fallback text
// instead of errors; the only error is a failure to record the exchange,
// and the reply is still returned with it.
func (a *Assistant) Handle(ctx context.Context, text string) (Reply, error) {
	text = strings.TrimSpace(text)
	reply := Reply{Intent: dispatch.IntentChat, Suggestions: Suggestions(text)}
	if text == "" {
		reply.Text = "I didn't catch that. What would you like to do?"
		return reply, nil
	}

	res, err := a.disp.Dispatch(ctx, text)
	skill := ""
	switch {
	case err != nil:
		a.log.Warn("skill failed", zap.String("intent", string(res.Decision.Intent)), zap.Error(err))
		reply.Intent = res.Decision.Intent
		reply.Text = SkillFallback
		skill = string(res.Decision.Intent)
	case res.Handled:
		reply.Intent = res.Decision.Intent
		reply.Text = res.Output
		skill = string(res.Decision.Intent)
	default:
		reply.Text = a.chat(ctx, text)
	}

	if a.mem != nil {
		if _, err := a.mem.Append(ctx, text, reply.Text, skill); err != nil {
			return reply, fmt.Errorf("recording exchange: %w", err)
		}
	}
	return reply, nil
}

// chat asks the generator for a reply with the profile summary and memory
// context in the system prompt.
func (a *Assistant) chat(ctx context.Context, text string) string {
	if a.gen == nil {
		return ChatFallback
	}

	var sb strings.Builder
	sb.WriteString(chatSystemPrompt)
	if a.mem != nil {
		fmt.Fprintf(&sb, "\n\nUser profile & preferences: %s\n\n", a.mem.Profile().Summary)
		block, err := a.mem.Context(ctx, text)
		if err != nil {
			a.log.Warn("memory context unavailable", zap.Error(err))
		} else {
			sb.WriteString(block)
		}
	}

	out, err := a.gen.Generate(ctx, sb.String(), text, llm.WithTemperature(0.6), llm.WithMaxTokens(600))
	if err != nil {
		a.log.Warn("chat generation failed", zap.Error(err))
		return ChatFallback
	}
	return out
}

// Greeting returns a greeting for the time of day, tailored to the top
// recent topic.
func (a *Assistant) Greeting(ctx context.Context) string {
	greeting := timeGreeting(a.now().Hour())

	topic := ""
	if a.mem != nil {
		if p, err := a.mem.Topics(ctx); err == nil {
			topic = p.TopTopic()
		}
	}
	switch topic {
	case "news":
		return greeting + "! Ready for today's news updates?"
	case "question":
		return greeting + "! What would you like to explore today?"
	case "coding":
		return greeting + "! Ready to dive into some coding?"
	case "search":
		return greeting + "! What should I look up for you today?"
	default:
		return greeting + "! How can I assist you today?"
	}
}

func timeGreeting(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Good morning"
	case hour >= 12 && hour < 17:
		return "Good afternoon"
	case hour >= 17 && hour < 22:
		return "Good evening"
	default:
		return "Hello"
	}
}
