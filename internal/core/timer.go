package core

import "time"

// Timer is a periodic, cancellable callback driven by simulated time.
// It never fires on its own: Advance must be called from the tick context.
type Timer struct {
	interval time.Duration
	elapsed  time.Duration
	active   bool
	fire     func()
}

// NewTimer creates a stopped timer that calls fire every interval.
func NewTimer(interval time.Duration, fire func()) *Timer {
	return &Timer{interval: interval, fire: fire}
}

// Start (re)arms the timer. The first fire happens one full interval later.
func (t *Timer) Start() {
	t.elapsed = 0
	t.active = true
}

// Stop cancels the timer and discards accumulated time.
// Stopping from inside the callback prevents any further fires in the
// current Advance call.
func (t *Timer) Stop() {
	t.active = false
	t.elapsed = 0
}

// Active reports whether the timer is armed.
func (t *Timer) Active() bool {
	return t.active
}

// Interval returns the current period.
func (t *Timer) Interval() time.Duration {
	return t.interval
}

// SetInterval changes the period without resetting accumulated time.
func (t *Timer) SetInterval(d time.Duration) {
	if d > 0 {
		t.interval = d
	}
}

// Advance moves simulated time forward and returns how many times the
// callback fired.
func (t *Timer) Advance(dt time.Duration) int {
	if !t.active || t.interval <= 0 {
		return 0
	}
	t.elapsed += dt
	fired := 0
	for t.active && t.elapsed >= t.interval {
		t.elapsed -= t.interval
		fired++
		if t.fire != nil {
			t.fire()
		}
	}
	return fired
}
