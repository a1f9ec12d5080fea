// Package requestcontext carries values scoped to one command invocation:
// an invocation id for correlating log records and a fixed clock.
//
// Usage in services (read values):
//
//	invocationID := requestcontext.InvocationID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"
)

type contextKey string

const (
	contextKeyInvocationID contextKey = "invocation_id"
	contextKeyTime         contextKey = "invocation_time"
)

// InvocationID retrieves the invocation ID from the context.
func InvocationID(ctx context.Context) string {
	if v, ok := ctx.Value(contextKeyInvocationID).(string); ok {
		return v
	}
	return ""
}

// WithInvocationID injects an invocation ID into the context.
func WithInvocationID(ctx context.Context, invocationID string) context.Context {
	return context.WithValue(ctx, contextKeyInvocationID, invocationID)
}

// Now retrieves the invocation time from context.
// Falls back to time.Now() if not set.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(contextKeyTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, contextKeyTime, t)
}
