package serp

import (
	"context"
	"math"
	"strings"
	"time"
)

// SimpleRetry provides basic retry logic for collector requests
type SimpleRetry struct {
	maxRetries        int
	retryDelay        time.Duration
	backoffMultiplier float64
}

// NewSimpleRetry creates a simple retry mechanism with exponential backoff
func NewSimpleRetry(maxRetries int, retryDelay time.Duration) *SimpleRetry {
	return &SimpleRetry{
		maxRetries:        maxRetries,
		retryDelay:        retryDelay,
		backoffMultiplier: 2.0,
	}
}

// Execute runs fn with retry logic
func (sr *SimpleRetry) Execute(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= sr.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == sr.maxRetries {
			break
		}
		if !sr.isRetryable(err) {
			return err
		}

		delay := time.Duration(float64(sr.retryDelay) * math.Pow(sr.backoffMultiplier, float64(attempt)))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

// isRetryable determines if an error should be retried
func (sr *SimpleRetry) isRetryable(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())

	// Auth and plain client errors never succeed on retry
	for _, marker := range []string{"401", "403", "unauthorized", "forbidden", "400", "404"} {
		if strings.Contains(msg, marker) {
			return false
		}
	}

	// Network errors, timeouts, 5xx and rate limits are worth retrying
	return true
}
