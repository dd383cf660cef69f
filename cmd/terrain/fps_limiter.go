package main

import (
	"time"
)

// pausedFPS caps the frame rate while the viewer is paused.
const pausedFPS = 30

// FPSLimiter paces frames to a target rate.
type FPSLimiter struct {
	next time.Time
}

// Wait blocks until the next frame is due. A limit of 0 disables pacing.
// Sleeps most of the interval and spins for the last 200µs.
func (f *FPSLimiter) Wait(limit int) {
	if limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(limit)
	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
	}

	// resync after a hitch instead of racing to catch up
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}

// limitFor picks the cap for the current frame.
func limitFor(configured int, paused bool) int {
	if paused && (configured <= 0 || configured > pausedFPS) {
		return pausedFPS
	}
	return configured
}
