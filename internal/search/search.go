// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/omnimind/internal/logging"
	"github.com/pdiddy/omnimind/pkg/types"
)

// ErrEmptyQuery is returned when the query has no searchable text.
var ErrEmptyQuery = errors.New("query is empty")

const (
	// DefaultOverallTimeout bounds one SearchAll call.
	DefaultOverallTimeout = 15 * time.Second

	// DefaultPerEngineLimit is used when a caller passes a non-positive limit.
	DefaultPerEngineLimit = 5

	// SchedulingSlack is kept between an adapter's own timeout and the
	// aggregator deadline.
	SchedulingSlack = 250 * time.Millisecond
)

// Query holds the parameters of one aggregated search. It is never persisted.
type Query struct {
	Text           string
	PerEngineLimit int
	OverallTimeout time.Duration
}

// Outcome records what happened to one engine during a search.
type Outcome struct {
	Engine  types.EngineID
	Count   int
	Err     error
	Elapsed time.Duration

	// Abandoned is set when the engine had not finished by the deadline.
	Abandoned bool
}

// OK reports whether the engine answered, with or without results.
func (o Outcome) OK() bool {
	return o.Err == nil && !o.Abandoned
}

// Output is the merged result of a search plus per-engine bookkeeping.
type Output struct {
	Results     []types.SearchResult
	Outcomes    []Outcome
	DupsRemoved int
}

// Unavailable reports whether no engine answered. It distinguishes
// "search is down" from "the engines found nothing".
func (o Output) Unavailable() bool {
	for _, oc := range o.Outcomes {
		if oc.OK() {
			return false
		}
	}
	return true
}

// Aggregator fans queries out to a fixed, ordered set of adapters. The
// order of adapters is the merge priority.
type Aggregator struct {
	adapters []Adapter
	timeout  time.Duration
	log      *zap.Logger
}

// NewAggregator returns an aggregator over adapters in priority order.
// A non-positive timeout selects DefaultOverallTimeout.
func NewAggregator(adapters []Adapter, timeout time.Duration, log *zap.Logger) *Aggregator {
	if timeout <= 0 {
		timeout = DefaultOverallTimeout
	}
	return &Aggregator{
		adapters: adapters,
		timeout:  timeout,
		log:      logging.OrNop(log),
	}
}

// Engines lists the registered engines in priority order.
func (a *Aggregator) Engines() []types.EngineID {
	ids := make([]types.EngineID, len(a.adapters))
	for i, ad := range a.adapters {
		ids[i] = ad.Engine()
	}
	return ids
}

// SearchAll queries every engine with the aggregator's deadline.
func (a *Aggregator) SearchAll(ctx context.Context, query string, perEngineLimit int) (Output, error) {
	return a.Run(ctx, Query{Text: query, PerEngineLimit: perEngineLimit, OverallTimeout: a.timeout})
}

// Run executes q. One goroutine runs per adapter; the call returns once all
// of them finish or the deadline passes, whichever comes first. Adapters
// still running at the deadline are abandoned and their results dropped.
// Engine failures never surface as an error; the only error is an empty query.
func (a *Aggregator) Run(ctx context.Context, q Query) (Output, error) {
	q.Text = strings.TrimSpace(q.Text)
	if q.Text == "" {
		return Output{}, ErrEmptyQuery
	}
	if q.PerEngineLimit <= 0 {
		q.PerEngineLimit = DefaultPerEngineLimit
	}
	if q.OverallTimeout <= 0 {
		q.OverallTimeout = a.timeout
	}

	ctx, cancel := context.WithTimeout(ctx, q.OverallTimeout)
	defer cancel()

	n := len(a.adapters)
	outcomes := make([]Outcome, n)
	for i, ad := range a.adapters {
		outcomes[i] = Outcome{Engine: ad.Engine(), Abandoned: true}
	}

	// Buffered so abandoned tasks can still deliver and exit.
	ch := make(chan taskResult, n)
	start := time.Now()
	for i, ad := range a.adapters {
		go runTask(ctx, i, ad, q, ch)
	}

	slots := make([][]types.SearchResult, n)
	received := 0
collect:
	for received < n {
		select {
		case r := <-ch:
			received++
			slots[r.idx] = r.results
			outcomes[r.idx] = Outcome{
				Engine:  outcomes[r.idx].Engine,
				Count:   len(r.results),
				Err:     r.err,
				Elapsed: r.elapsed,
			}
		case <-ctx.Done():
			break collect
		}
	}

	for _, oc := range outcomes {
		a.logOutcome(oc, q.Text)
	}

	var merged []types.SearchResult
	for i, results := range slots {
		if outcomes[i].Abandoned {
			continue
		}
		merged = append(merged, results...)
	}
	deduped, removed := Deduplicate(merged)

	a.log.Debug("search complete",
		zap.String("query", q.Text),
		zap.Int("results", len(deduped)),
		zap.Int("dups_removed", removed),
		zap.Duration("elapsed", time.Since(start)))

	return Output{Results: deduped, Outcomes: outcomes, DupsRemoved: removed}, nil
}

type taskResult struct {
	idx     int
	results []types.SearchResult
	err     error
	elapsed time.Duration
}

// runTask runs one adapter and always delivers exactly one taskResult,
// converting a panic into an EngineError.
func runTask(ctx context.Context, idx int, ad Adapter, q Query, ch chan<- taskResult) {
	start := time.Now()
	res := taskResult{idx: idx}
	defer func() {
		if p := recover(); p != nil {
			res.results = nil
			res.err = &EngineError{Engine: ad.Engine(), Kind: KindPanic, Err: fmt.Errorf("%v", p)}
		}
		res.elapsed = time.Since(start)
		ch <- res
	}()

	results, err := ad.Search(ctx, q.Text, q.PerEngineLimit)
	if err != nil {
		res.err = err
		return
	}
	if len(results) > q.PerEngineLimit {
		results = results[:q.PerEngineLimit]
	}
	stamped := make([]types.SearchResult, len(results))
	for i, r := range results {
		if r.Source == "" {
			r.Source = ad.Engine()
		}
		stamped[i] = r
	}
	res.results = stamped
}

func (a *Aggregator) logOutcome(oc Outcome, query string) {
	switch {
	case oc.Abandoned:
		a.log.Warn("engine abandoned at deadline",
			zap.String("engine", string(oc.Engine)),
			zap.String("query", query))
	case oc.Err != nil:
		a.log.Warn("engine failed",
			zap.String("engine", string(oc.Engine)),
			zap.String("kind", string(KindOf(oc.Err))),
			zap.Error(oc.Err))
	default:
		a.log.Debug("engine answered",
			zap.String("engine", string(oc.Engine)),
			zap.Int("results", oc.Count),
			zap.Duration("elapsed", oc.Elapsed))
	}
}

// Deduplicate keeps the first result for each DedupKey and preserves
// first-seen order. Records without a URL are not real results and are
// dropped without counting as duplicates.
func Deduplicate(results []types.SearchResult) ([]types.SearchResult, int) {
	seen := make(map[string]bool, len(results))
	deduped := make([]types.SearchResult, 0, len(results))
	removed := 0

	for _, r := range results {
		if r.IsUnavailable() {
			continue
		}
		key := DedupKey(r.URL)
		if seen[key] {
			removed++
			continue
		}
		seen[key] = true
		deduped = append(deduped, r)
	}
	return deduped, removed
}

// DedupKey lowercases rawURL and strips trailing slashes. Scheme and query
// string are compared verbatim, so http/https variants stay distinct.
func DedupKey(rawURL string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(rawURL)), "/")
}
