package core

import "context"

// Context keys for run options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	skipHistoryKey    contextKey = "skipHistory"
)

// WithSuppressHeader marks the context so that no run header is printed.
func WithSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// WithSkipHistory marks the context so that the run is not recorded in the history store.
func WithSkipHistory(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipHistoryKey, true)
}

// shouldSkipHistory returns whether run tracking is disabled for this context
func shouldSkipHistory(ctx context.Context) bool {
	val := ctx.Value(skipHistoryKey)
	if val == nil {
		return false // default: record runs
	}
	skip, ok := val.(bool)
	return ok && skip
}
