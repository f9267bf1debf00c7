package ratelimit

import "context"

// Logger interface for logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
}

// Result contains the outcome of a rate limit check
type Result struct {
	Allowed           bool  // Whether the request is allowed
	CurrentCount      int64 // Current count in the window
	Limit             int64 // The limit that was checked
	RetryAfterSeconds int64 // Seconds until the limit resets (0 if allowed)
}

// Limiter throttles requests per creator identifier over a fixed window.
// Throttling is advisory: a Limiter failure must not corrupt registry
// state, only reject or admit requests.
type Limiter interface {
	// Allow records one request for creatorID and reports whether it is
	// within the window's quota.
	Allow(ctx context.Context, creatorID string) (*Result, error)
}
