// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the source adapters.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// RetryBaseDelay is the first backoff step after an HTTP 429. Tests override
// it to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// maxRetryDelay caps both the doubled backoff and any Retry-After hint.
const maxRetryDelay = 30 * time.Second

const defaultMaxRetries = 2

// DoWithRetry executes req and retries only on HTTP 429 (Too Many Requests).
// The wait honours a Retry-After header given in seconds, otherwise it starts
// at RetryBaseDelay and doubles per attempt, capped at 30s.
//
// maxRetries <= 0 selects the default (2). After the last attempt the 429
// response is returned as-is so the caller can inspect it. Cancelling ctx
// during a wait returns ctx.Err(). A nil logger is allowed.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int, log *zap.Logger) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if log == nil {
		log = zap.NewNop()
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		wait := backoff(attempt, resp.Header.Get("Retry-After"))
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		log.Debug("rate limited",
			zap.String("host", req.URL.Host),
			zap.Duration("wait", wait),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}
}

func backoff(attempt int, retryAfter string) time.Duration {
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs >= 0 {
		return min(time.Duration(secs)*time.Second, maxRetryDelay)
	}
	return min(RetryBaseDelay<<attempt, maxRetryDelay)
}
