package geocoder

import (
	"context"
	"sync"
)

// Fake is a ReverseGeocoder for tests. With Fail set it behaves like a
// lookup that errored and returns the coordinate fallback.
type Fake struct {
	mu      sync.Mutex
	Address string
	Fail    bool
	calls   int
}

// Reverse implements ReverseGeocoder.
func (f *Fake) Reverse(_ context.Context, lat, lon float64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.Fail || f.Address == "" {
		return Fallback(lat, lon)
	}
	return f.Address
}

// Calls reports how many lookups were made.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
