package round

import (
	"context"
	"fmt"
	"time"
)

const (
	// InfiniteThreshold is the largest seed still treated as a real countdown.
	// Anything above it means "no time limit".
	InfiniteThreshold = 6000

	// InfiniteSeconds is the seed used when the timer is switched off.
	InfiniteSeconds = 99999

	// TickInterval is the wall-clock period of one timer tick.
	TickInterval = time.Second
)

// Timer is a round countdown. A timer seeded above InfiniteThreshold is
// inert: ticks do nothing and it never expires.
//
// Timer itself is not safe for concurrent use; owners serialise Tick calls.
type Timer struct {
	total   int
	left    int
	expired bool
}

// NewTimer creates a countdown from totalSeconds (negative seeds count as 0).
func NewTimer(totalSeconds int) *Timer {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return &Timer{total: totalSeconds, left: totalSeconds}
}

// Infinite reports whether this timer has no limit.
func (t *Timer) Infinite() bool {
	return t.total > InfiniteThreshold
}

// Total returns the seed in seconds.
func (t *Timer) Total() int {
	return t.total
}

// Remaining returns the seconds left.
func (t *Timer) Remaining() int {
	return t.left
}

// Expired reports whether the expiry signal has already fired.
func (t *Timer) Expired() bool {
	return t.expired
}

// Tick consumes one second. It returns true exactly once: on the tick that
// brings (or finds) the countdown at zero.
func (t *Timer) Tick() bool {
	if t.Infinite() || t.expired {
		return false
	}
	if t.left > 0 {
		t.left--
	}
	if t.left == 0 {
		t.expired = true
		return true
	}
	return false
}

// Start calls notify every interval until the returned stop function is
// called. Inert timers never start a ticker. Stop is idempotent and may be
// called from inside notify.
func (t *Timer) Start(interval time.Duration, notify func()) (stop func()) {
	if t.Infinite() || t.expired {
		return func() {}
	}
	if interval <= 0 {
		interval = TickInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if ctx.Err() != nil {
					return
				}
				notify()
			}
		}
	}()
	return cancel
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// DurationSteps are the selectable round lengths in minutes.
var DurationSteps = []int{3, 5, 7, 10}

// DefaultDurationMinutes is the round length a new session starts with.
const DefaultDurationMinutes = 5

// NextDuration steps the round length 3 -> 5 -> 7 -> 10 -> 3.
func NextDuration(minutes int) int {
	for i, m := range DurationSteps {
		if m == minutes {
			return DurationSteps[(i+1)%len(DurationSteps)]
		}
	}
	return DurationSteps[0]
}

// SeedSeconds is the timer seed for a round: minutes*60 when enabled,
// InfiniteSeconds otherwise.
func SeedSeconds(enabled bool, minutes int) int {
	if !enabled {
		return InfiniteSeconds
	}
	return minutes * 60
}
