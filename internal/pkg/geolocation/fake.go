package geolocation

import (
	"context"
	"sync"
	"time"
)

// Fake is a deterministic PositionProvider.
type Fake struct {
	mu    sync.Mutex
	pos   Position
	err   error
	delay time.Duration
	calls int
}

// NewFake returns a provider that always yields pos.
func NewFake(pos Position) *Fake {
	return &Fake{pos: pos}
}

// NewFailingFake returns a provider that always fails with err.
func NewFailingFake(err error) *Fake {
	return &Fake{err: err}
}

// SetPosition changes the position returned by later calls and clears any error.
func (f *Fake) SetPosition(pos Position) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pos = pos
	f.err = nil
}

// SetError makes later calls fail with err.
func (f *Fake) SetError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

// SetDelay makes later calls block for d, or until the context is done.
func (f *Fake) SetDelay(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delay = d
}

// Calls reports how many fixes were requested.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// CurrentPosition implements PositionProvider.
func (f *Fake) CurrentPosition(ctx context.Context, _ PositionOptions) (Position, error) {
	f.mu.Lock()
	f.calls++
	pos, err, delay := f.pos, f.err, f.delay
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return Position{}, ctx.Err()
		}
	}
	if err != nil {
		return Position{}, err
	}
	return pos, nil
}
