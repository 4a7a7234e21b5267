package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedDelayWaits(t *testing.T) {
	var slept []time.Duration
	limiter := NewFixedDelay(10 * time.Second)
	limiter.sleep = func(d time.Duration) {
		slept = append(slept, d)
	}

	limiter.Wait()
	limiter.Wait()

	assert.Equal(t, []time.Duration{10 * time.Second, 10 * time.Second}, slept)
}

func TestFixedDelayZeroIntervalDoesNotSleep(t *testing.T) {
	called := false
	limiter := NewFixedDelay(0)
	limiter.sleep = func(time.Duration) { called = true }

	limiter.Wait()

	assert.False(t, called)
}
