package log

import (
	"context"

	"github.com/go-logr/logr"
)

// FromContext returns the logger carried by ctx, or a discarding one.
func FromContext(ctx context.Context) logr.Logger {
	return logr.FromContextOrDiscard(ctx)
}

func WithLogger(ctx context.Context, logger logr.Logger) context.Context {
	return logr.NewContext(ctx, logger)
}

// WithSubgraph scopes the logger of ctx to one subgraph.
func WithSubgraph(ctx context.Context, subgraph string) context.Context {
	return logr.NewContext(ctx, FromContext(ctx).WithValues("subgraph", subgraph))
}
