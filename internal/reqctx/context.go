package reqctx

import (
	"context"
	"errors"
)

type contextKey string

const (
	requestIDKey contextKey = "requestID"
	pageKey      contextKey = "page"
)

// ErrNoRequestIDInContext is returned when no request ID is found in context
var ErrNoRequestIDInContext = errors.New("no request ID found in context")

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID extracts the request ID from the context
func RequestID(ctx context.Context) (string, error) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	if !ok || requestID == "" {
		return "", ErrNoRequestIDInContext
	}
	return requestID, nil
}

// WithPage tags the context with the dashboard page that triggered the fetch
// (dashboard, agenda, contacts, dispatch). Used for log and metric labels.
func WithPage(ctx context.Context, page string) context.Context {
	return context.WithValue(ctx, pageKey, page)
}

// Page returns the page tag or "unknown".
func Page(ctx context.Context) string {
	page, ok := ctx.Value(pageKey).(string)
	if !ok || page == "" {
		return "unknown"
	}
	return page
}
