package systems

import "time"

// Countdown is a one-shot timer driven by simulation time. Its callback runs
// once when the remaining time reaches zero, or immediately on Skip.
type Countdown struct {
	remaining time.Duration
	running   bool
	fn        func()
}

// Start arms the countdown, replacing any pending callback.
func (c *Countdown) Start(d time.Duration, fn func()) {
	c.remaining = max(d, 0)
	c.running = true
	c.fn = fn
}

// Update advances the countdown by dt and fires the callback when it expires.
func (c *Countdown) Update(dt time.Duration) {
	if !c.running {
		return
	}
	c.remaining -= dt
	if c.remaining <= 0 {
		c.fire()
	}
}

// Skip fires the pending callback now. It returns false if nothing was pending.
func (c *Countdown) Skip() bool {
	if !c.running {
		return false
	}
	c.fire()
	return true
}

// Stop cancels the countdown without firing.
func (c *Countdown) Stop() {
	c.running = false
	c.remaining = 0
	c.fn = nil
}

// Running reports whether a callback is pending.
func (c *Countdown) Running() bool {
	return c.running
}

// Remaining returns the time left before the callback fires.
func (c *Countdown) Remaining() time.Duration {
	return c.remaining
}

func (c *Countdown) fire() {
	fn := c.fn
	c.running = false
	c.remaining = 0
	c.fn = nil
	if fn != nil {
		fn()
	}
}
