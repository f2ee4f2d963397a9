// Package net holds request-context helpers shared by HTTP packages
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestID returns the chi request id on ctx, if any
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// WithRequestID stores id where chi's RequestID middleware would
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, chimw.RequestIDKey, id)
}
