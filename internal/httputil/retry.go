// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across providers.
package httputil

import (
	"io"
	"math"
	"net/http"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// retryable responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 10 * time.Second

const defaultMaxRetries = 5

// RetryClient wraps an http.Client and retries requests that come back
// HTTP 429 (Too Many Requests) or HTTP 503 (Service Unavailable — how
// arXiv signals rate pressure) with exponential backoff. The delay starts
// at RetryBaseDelay and doubles each attempt: 10 s, 20 s, 40 s, 80 s,
// 160 s. Retry policy lives here, on the caller side of the provider
// boundary; providers themselves issue exactly one logical round trip.
type RetryClient struct {
	Client     *http.Client
	MaxRetries int
}

// NewRetryClient wraps client with the given retry budget. A nil client
// uses http.DefaultClient; a non-positive budget uses the default (5).
func NewRetryClient(client *http.Client, maxRetries int) *RetryClient {
	if client == nil {
		client = http.DefaultClient
	}
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &RetryClient{Client: client, MaxRetries: maxRetries}
}

// Do executes the request, retrying on 429 and 503. On each retryable
// response the body is drained and closed before sleeping. If the request
// context is cancelled during a backoff wait, Do returns ctx.Err(). After
// exhausting retries the last response is returned as-is so the caller
// can inspect it.
func (c *RetryClient) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	for attempt := 0; ; attempt++ {
		resp, err := c.Client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if !retryable(resp.StatusCode) {
			return resp, nil
		}

		// Exhausted retries — return the response as-is.
		if attempt >= c.MaxRetries {
			return resp, nil
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}
