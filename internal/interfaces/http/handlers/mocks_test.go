package handlers

import (
	"context"
)

// execFunc satisfies any usecase executor returning a result.
type execFunc[Q any, R any] func(ctx context.Context, q Q) (R, error)

func (f execFunc[Q, R]) Execute(ctx context.Context, q Q) (R, error) {
	return f(ctx, q)
}

// errFunc satisfies usecase executors that only return an error.
type errFunc[Q any] func(ctx context.Context, q Q) error

func (f errFunc[Q]) Execute(ctx context.Context, q Q) error {
	return f(ctx, q)
}

func strPtr(s string) *string { return &s }
