// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the search adapters and
// the text-generation clients.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// RetryBaseDelay is the first backoff step after a throttled response.
// Tests override this to avoid real sleeps.
var RetryBaseDelay = 500 * time.Millisecond

// MaxRetryAfter caps a server-provided Retry-After value. Search calls run
// under a short deadline, so waiting longer than this is never useful.
var MaxRetryAfter = 5 * time.Second

const defaultMaxRetries = 2

// DoWithRetry executes req and retries on HTTP 429 and 503 with exponential
// backoff starting at RetryBaseDelay, or the Retry-After header when the
// server sends one (capped at MaxRetryAfter).
//
// When maxRetries is 0 the default (2) is used. A throttled response body is
// drained and closed before sleeping. If the context is cancelled while
// waiting the function returns ctx.Err(). After exhausting retries the last
// throttled response is returned so the caller can inspect its status.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if !throttled(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		wait := backoff(attempt, resp.Header.Get("Retry-After"))
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

// WaitLimiter blocks until lim admits one request. A nil limiter admits
// immediately.
func WaitLimiter(ctx context.Context, lim *rate.Limiter) error {
	if lim == nil {
		return nil
	}
	return lim.Wait(ctx)
}

// NewLimiter returns a limiter allowing perSecond requests with a burst of
// one, or nil when perSecond is not positive.
func NewLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}

func throttled(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

func backoff(attempt int, retryAfter string) time.Duration {
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
		d := time.Duration(secs) * time.Second
		if d > MaxRetryAfter {
			d = MaxRetryAfter
		}
		return d
	}
	return RetryBaseDelay << attempt
}
