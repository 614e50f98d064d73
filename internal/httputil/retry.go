// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the metadata lookup
// clients.
package httputil

import (
	"context"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// throttled responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const defaultMaxRetries = 4

// DoWithRetry executes an HTTP request and retries when the server
// signals throttling: HTTP 429, or HTTP 503 as sent by the arXiv API.
// The delay starts at RetryBaseDelay and doubles each attempt, unless
// the response carries a Retry-After header in seconds, which takes
// precedence.
//
// When maxRetries is 0 the default (4) is used. On each throttled
// response the body is drained and closed before sleeping. If the
// context is cancelled during a backoff wait the function returns
// ctx.Err(). After exhausting retries the last throttled response is
// returned so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if !throttled(resp.StatusCode) {
			return resp, nil
		}

		// Exhausted retries: return the throttled response as-is.
		if attempt >= maxRetries {
			return resp, nil
		}

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		if secs, ok := retryAfter(resp); ok {
			backoff = secs
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func throttled(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// retryAfter parses a Retry-After header given in seconds. HTTP-date
// values are ignored; the exponential backoff covers that case.
func retryAfter(resp *http.Response) (time.Duration, bool) {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}
