package evergreen

import "time"

// Cooldown debounces repeated triggers. The first call to Allow passes; any
// further call less than Window after the last accepted one is rejected.
// Rejected calls do not extend the window.
type Cooldown struct {
	Window time.Duration

	last  time.Duration
	armed bool
}

// Allow reports whether a trigger at time now is accepted and, if so,
// starts a new window.
func (c *Cooldown) Allow(now time.Duration) bool {
	if c.armed && now-c.last < c.Window {
		return false
	}
	c.last = now
	c.armed = true
	return true
}

// Ready reports whether a trigger at now would be accepted, without
// consuming it.
func (c *Cooldown) Ready(now time.Duration) bool {
	return !c.armed || now-c.last >= c.Window
}

// Reset forgets the last accepted trigger.
func (c *Cooldown) Reset() {
	c.armed = false
	c.last = 0
}
