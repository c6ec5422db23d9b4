package ratelimit

import (
	"context"
	"time"
)

// RateLimiter counts requests per key over a sliding window.
type RateLimiter interface {
	// Allow records a request for key and reports whether it fits within
	// limit requests per window. Rejected requests are still recorded.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	// Count returns the requests recorded for key in the current window.
	Count(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
