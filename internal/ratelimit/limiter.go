package ratelimit

import (
	"context"
	"time"
)

// Limiter enforces a maximum number of events per key within a window. Allow
// atomically counts the event and reports whether it is within the budget;
// implementations must be safe for concurrent callers.
type Limiter interface {
	Allow(ctx context.Context, key string, window time.Duration, max int) (bool, error)
}
