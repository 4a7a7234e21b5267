// Package ratelimit paces outbound sends. The relay is strictly sequential,
// so the only limiter needed is a fixed blocking pause imposed after each
// successful send.
package ratelimit

import "time"

// Limiter defines the interface for pacing relayed sends
type Limiter interface {
	// Wait blocks for the limiter's pause.
	Wait()
}

// FixedDelay pauses for a constant interval on every Wait call
type FixedDelay struct {
	interval time.Duration
	sleep    func(time.Duration)
}

// NewFixedDelay creates a limiter that blocks for the given interval
func NewFixedDelay(interval time.Duration) *FixedDelay {
	return &FixedDelay{
		interval: interval,
		sleep:    time.Sleep,
	}
}

// Wait blocks for the configured interval
func (f *FixedDelay) Wait() {
	if f.interval > 0 {
		f.sleep(f.interval)
	}
}
