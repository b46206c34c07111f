package utils

import (
	"sync"
	"time"
)

// Clock stamps rows. Services take one so ordering can be pinned in tests.
type Clock func() time.Time

// NowUTC is the production clock.
func NowUTC() time.Time { return time.Now().UTC() }

// SteppingClock returns a clock that starts at start and advances by step on
// every call.
func SteppingClock(start time.Time, step time.Duration) Clock {
	var mu sync.Mutex
	next := start.UTC()
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(step)
		return t
	}
}
