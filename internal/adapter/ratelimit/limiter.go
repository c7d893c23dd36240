// Package ratelimit throttles callers per key, usually the client IP.
package ratelimit

import "context"

// Limiter decides whether one more request from key is still allowed in the current window
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
