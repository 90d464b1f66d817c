package engine

import (
	"context"

	"golang.org/x/time/rate"
)

// WaitPage blocks until the next channel page fetch is allowed.
func WaitPage(ctx context.Context) error { return wait(ctx, pageLimiter) }

// WaitQuery blocks until the next search query is allowed.
func WaitQuery(ctx context.Context) error { return wait(ctx, queryLimiter) }

// WaitFallback blocks until the next fallback backend call is allowed.
func WaitFallback(ctx context.Context) error { return wait(ctx, fallbackLimiter) }

func wait(ctx context.Context, l *rate.Limiter) error {
	if l == nil {
		return nil
	}
	return l.Wait(ctx)
}
