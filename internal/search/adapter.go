// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search fans a query out to several independent web search engines,
// tolerates partial failure, and returns one merged, de-duplicated list.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/omnimind/internal/httputil"
	"github.com/pdiddy/omnimind/pkg/types"
)

// Adapter translates a query into one backend's request shape and its
// response into normalized results. Implementations never panic on bad
// input and report every failure as an *EngineError.
type Adapter interface {
	Engine() types.EngineID
	Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error)
}

// ErrorKind classifies an adapter failure.
type ErrorKind string

const (
	KindTransport    ErrorKind = "transport"
	KindTimeout      ErrorKind = "timeout"
	KindStatus       ErrorKind = "status"
	KindMalformed    ErrorKind = "malformed"
	KindUnconfigured ErrorKind = "unconfigured"
	KindPanic        ErrorKind = "panic"
)

// EngineError is the failure value of one adapter call.
type EngineError struct {
	Engine   types.EngineID
	Kind     ErrorKind
	Endpoint string
	Err      error
}

func (e *EngineError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Engine, e.Kind, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Engine, e.Kind, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// KindOf returns the kind of err when it is an *EngineError, or "".
func KindOf(err error) ErrorKind {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return ""
}

// httpEngine carries the transport settings every HTTP adapter shares.
type httpEngine struct {
	id        types.EngineID
	client    *http.Client
	userAgent string
	timeout   time.Duration
	limiter   *rate.Limiter
}

func newHTTPEngine(id types.EngineID, client *http.Client, cfg types.HTTPConfig, limiter *rate.Limiter) httpEngine {
	if client == nil {
		client = http.DefaultClient
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return httpEngine{
		id:        id,
		client:    client,
		userAgent: cfg.UserAgent,
		timeout:   timeout,
		limiter:   limiter,
	}
}

// get issues one GET against endpoint under the engine's own timeout and
// hands a 200 body to decode.
func (h *httpEngine) get(ctx context.Context, endpoint string, params url.Values, decode func(io.Reader) error) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err := httputil.WaitLimiter(ctx, h.limiter); err != nil {
		return h.fail(KindTimeout, endpoint, fmt.Errorf("waiting for rate limiter: %w", err))
	}

	reqURL := endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return h.fail(KindTransport, endpoint, fmt.Errorf("creating request: %w", err))
	}
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, h.client, req, 0)
	if err != nil {
		return h.fail(transportKind(err), endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return h.fail(KindStatus, endpoint, fmt.Errorf("HTTP %d", resp.StatusCode))
	}
	if err := decode(resp.Body); err != nil {
		if ctx.Err() != nil {
			return h.fail(KindTimeout, endpoint, err)
		}
		return h.fail(KindMalformed, endpoint, fmt.Errorf("parsing response: %w", err))
	}
	return nil
}

func (h *httpEngine) fail(kind ErrorKind, endpoint string, err error) *EngineError {
	return &EngineError{Engine: h.id, Kind: kind, Endpoint: endpoint, Err: err}
}

func transportKind(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}
	return KindTransport
}

// firstNonEmpty tries mirror base URLs in order and returns the first
// non-empty result set. Partial results are never combined across mirrors.
// An empty answer from a reachable mirror is a genuine empty result; an
// error is returned only when every mirror failed.
func firstNonEmpty(ctx context.Context, id types.EngineID, bases []string, fetch func(ctx context.Context, base string) ([]types.SearchResult, error)) ([]types.SearchResult, error) {
	if len(bases) == 0 {
		return nil, &EngineError{Engine: id, Kind: KindUnconfigured, Err: errors.New("no base URL configured")}
	}

	var lastErr error
	answered := false
	for _, base := range bases {
		if ctx.Err() != nil {
			return nil, &EngineError{Engine: id, Kind: KindTimeout, Err: ctx.Err()}
		}
		results, err := fetch(ctx, base)
		if err != nil {
			lastErr = err
			continue
		}
		if len(results) > 0 {
			return results, nil
		}
		answered = true
	}
	if answered {
		return nil, nil
	}
	return nil, lastErr
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
