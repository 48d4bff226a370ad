package core

import "time"

// Clock is the monotonic simulation clock. It only moves when the session
// advances it, so cooldowns are reproducible under a fixed tick.
type Clock struct {
	now time.Duration
}

// Now returns the elapsed simulation time.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Advance moves the clock forward by dt. Negative steps are ignored.
func (c *Clock) Advance(dt time.Duration) {
	if dt > 0 {
		c.now += dt
	}
}

// Window is a timed window: the time it was last opened plus whether it is
// still considered open. Expiry is computed by the owner against a duration,
// so no countdown is stored.
type Window struct {
	start time.Duration
	open  bool
}

// Open starts the window at now.
func (w *Window) Open(now time.Duration) {
	w.start = now
	w.open = true
}

// Close ends the window immediately.
func (w *Window) Close() {
	w.open = false
}

// IsOpen reports whether the window has been opened and not closed.
func (w Window) IsOpen() bool {
	return w.open
}

// Active reports whether the window is open and less than d has elapsed.
func (w Window) Active(now, d time.Duration) bool {
	return w.open && now-w.start < d
}

// Expired reports whether the window is open and at least d has elapsed.
func (w Window) Expired(now, d time.Duration) bool {
	return w.open && now-w.start >= d
}
