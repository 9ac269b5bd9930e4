package geolocation

import (
	"context"
	"errors"
	"fmt"
)

// PositionProvider is the device geolocation capability.
type PositionProvider interface {
	CurrentPosition(ctx context.Context, opts PositionOptions) (Position, error)
}

type fixResult struct {
	pos Position
	err error
}

// Acquire requests one position fix from p and waits at most opts.Timeout.
// Every failure is reported as ErrLocationDenied or one of its variants,
// except cancellation of ctx.
func Acquire(ctx context.Context, p PositionProvider, opts PositionOptions) (Position, error) {
	if p == nil {
		return Position{}, ErrLocationUnavailable
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions.Timeout
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	ch := make(chan fixResult, 1)
	go func() {
		pos, err := p.CurrentPosition(ctx, opts)
		ch <- fixResult{pos: pos, err: err}
	}()

	select {
	case <-ctx.Done():
		return Position{}, fixError(ctx.Err())
	case res := <-ch:
		if res.err == nil {
			return res.pos, nil
		}
		return Position{}, fixError(res.err)
	}
}

// fixError classifies a failed fix. Cancellation by the caller is not a
// location failure and is returned wrapping context.Canceled.
func fixError(err error) error {
	switch {
	case errors.Is(err, ErrLocationDenied):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return ErrLocationTimeout
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("position request cancelled: %w", err)
	default:
		return fmt.Errorf("%w: %v", ErrLocationUnavailable, err)
	}
}
