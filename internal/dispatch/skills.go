// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/omnimind/internal/llm"
	"github.com/pdiddy/omnimind/internal/logging"
	"github.com/pdiddy/omnimind/internal/textutil"
)

// Skill executes one routed request.
type Skill interface {
	Run(ctx context.Context, d Decision) (string, error)
}

// SkillFunc adapts a function to Skill.
type SkillFunc func(ctx context.Context, d Decision) (string, error)

// Run calls f.
func (f SkillFunc) Run(ctx context.Context, d Decision) (string, error) { return f(ctx, d) }

// Result is the outcome of Dispatch.
type Result struct {
	Decision Decision
	Output   string

	// Handled is false when the utterance should go to chat.
	Handled bool
}

// Dispatcher maps intents to skills.
type Dispatcher struct {
	skills map[Intent]Skill
	log    *zap.Logger
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher(log *zap.Logger) *Dispatcher {
	return &Dispatcher{skills: make(map[Intent]Skill), log: logging.OrNop(log)}
}

// Register binds s to intent, replacing any earlier binding. Chat cannot be
// bound; it is the fallthrough.
func (d *Dispatcher) Register(intent Intent, s Skill) {
	if intent == IntentChat {
		return
	}
	d.skills[intent] = s
}

// Intents lists the bound intents in route order.
func (d *Dispatcher) Intents() []Intent {
	var out []Intent
	for _, r := range Routes {
		if _, ok := d.skills[r.Intent]; ok {
			out = append(out, r.Intent)
		}
	}
	return out
}

// Dispatch routes text and runs the bound skill. An unbound intent falls
// through to chat. A skill error is returned with Handled set so the caller
// can answer with fallback text.
func (d *Dispatcher) Dispatch(ctx context.Context, text string) (Result, error) {
	dec := Decide(text)
	res := Result{Decision: dec}

	skill, ok := d.skills[dec.Intent]
	if !ok {
		return res, nil
	}
	res.Handled = true

	d.log.Debug("skill selected", zap.String("intent", string(dec.Intent)), zap.String("query", dec.Query))
	out, err := skill.Run(ctx, dec)
	if err != nil {
		return res, fmt.Errorf("%s skill: %w", dec.Intent, err)
	}
	res.Output = out
	return res, nil
}

// TimeSkill reports the current time or date.
type TimeSkill struct {
	Now func() time.Time
}

// Run answers with the date when asked about the day or date, otherwise
// with the time.
func (s TimeSkill) Run(_ context.Context, d Decision) (string, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	t := now()
	if textutil.ContainsAny(textutil.Normalize(d.Text), []string{"date", "day"}) {
		return "Today is " + t.Format("Monday, January 02, 2006"), nil
	}
	return "Current time: " + t.Format("03:04 PM, Monday, January 02, 2006"), nil
}

const youtubeSearchURL = "https://www.youtube.com/results"

// MusicSkill answers with a YouTube search link. Playback is left to the
// caller.
type MusicSkill struct{}

// Run builds the search link for d.Query.
func (MusicSkill) Run(_ context.Context, d Decision) (string, error) {
	return "Here is a YouTube search you can open: " + MusicSearchURL(d.Query), nil
}

// MusicSearchURL biases the query toward freely playable results.
func MusicSearchURL(terms string) string {
	terms = strings.TrimSpace(terms)
	q := "royalty free music"
	if terms != "" {
		q = terms + " no copyright OR royalty free"
	}
	return youtubeSearchURL + "?search_query=" + url.QueryEscape(q)
}

// CodeSystemPrompt is sent with every code generation request.
const CodeSystemPrompt = "You are a careful coding assistant. Generate minimal, correct code and a brief explanation. " +
	"Do not include dangerous commands."

// CodeSkill generates code with the text generator. Nothing is executed.
type CodeSkill struct {
	Gen llm.Generator
}

// Run asks for a short explanation followed by a fenced code block.
func (s CodeSkill) Run(ctx context.Context, d Decision) (string, error) {
	if s.Gen == nil {
		return "", errors.New("no text generator configured")
	}
	user := "Task: " + d.Query + "\nProvide a short explanation followed by code in a fenced block."
	return s.Gen.Generate(ctx, CodeSystemPrompt, user, llm.WithTemperature(0.2), llm.WithMaxTokens(1024))
}
