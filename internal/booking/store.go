package booking

import (
	"context"
	"time"
)

// within runs one store call under its own deadline.
func within[T any](ctx context.Context, d time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	if d <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return fn(ctx)
}

func withinErr(ctx context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	_, err := within(ctx, d, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}
