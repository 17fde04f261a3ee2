package gesture

import "time"

// DefaultCooldown separates two cycle events from a held fist.
const DefaultCooldown = 800 * time.Millisecond

// Cooldown lets at most one event through per window.
type Cooldown struct {
	window time.Duration
	last   time.Time
	fired  bool
	now    func() time.Time
}

func NewCooldown(window time.Duration) *Cooldown {
	return &Cooldown{window: window, now: time.Now}
}

// Allow reports whether an event may fire now, and records it if so.
func (c *Cooldown) Allow() bool {
	now := c.now()
	if c.fired && now.Sub(c.last) < c.window {
		return false
	}
	c.fired = true
	c.last = now
	return true
}
