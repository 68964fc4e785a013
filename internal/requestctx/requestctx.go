// Package requestctx carries per-request metadata through context values.
package requestctx

import "context"

type requestIDKey struct{}

// WithRequestID returns a child context carrying the request correlation ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the correlation ID set by the request middleware, or an
// empty string outside a request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
