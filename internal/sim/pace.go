package sim

import (
	"context"
	"time"

	"github.com/san-kum/reactorsim/internal/reactor"
)

// Callback is called before every step of a run. Returning false ends the
// run early.
type Callback func(step int, u *reactor.Unit) bool

// Throttle wraps next so that each step first waits for one interval of
// wall-clock time. The unit itself knows nothing about real time; pacing
// lives entirely in the scheduler. Call stop once the run has returned.
func Throttle(ctx context.Context, interval time.Duration, next Callback) (cb Callback, stop func(), err error) {
	if interval <= 0 {
		return nil, nil, ErrInvalidConfig
	}

	ticker := time.NewTicker(interval)
	cb = func(step int, u *reactor.Unit) bool {
		select {
		case <-ctx.Done():
			// The runner reports the cancellation on its next check.
		case <-ticker.C:
		}
		if next == nil {
			return true
		}
		return next(step, u)
	}
	return cb, ticker.Stop, nil
}

// Realtime returns the wall-clock interval for one step of dt simulated
// seconds played back at speed times real time.
func Realtime(dt, speed float64) time.Duration {
	if speed <= 0 {
		speed = 1
	}
	return time.Duration(dt / speed * float64(time.Second))
}
