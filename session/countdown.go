package session

import "sync"

type CountdownState int

const (
	CountdownRunning CountdownState = iota
	CountdownExpired
)

// Countdown is a one-shot attempt timer. It does not tick itself; the caller
// drives it with Tick once per second. When the remaining time reaches zero
// it transitions to CountdownExpired and fires the expiry callback exactly
// once. Stop cancels it so a late tick cannot fire into an attempt the user
// already finished. Safe for a ticker goroutine racing a Stop from a
// request handler.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	state     CountdownState
	stopped   bool
	onExpire  func()
}

// NewCountdown creates a running countdown with the given positive duration
// in seconds.
func NewCountdown(seconds int, onExpire func()) *Countdown {
	return &Countdown{
		remaining: seconds,
		state:     CountdownRunning,
		onExpire:  onExpire,
	}
}

// Tick decrements the remaining time by one second. Ticks after expiry or
// after Stop are no-ops.
func (c *Countdown) Tick() {
	c.mu.Lock()
	if c.stopped || c.state == CountdownExpired {
		c.mu.Unlock()
		return
	}

	c.remaining--
	if c.remaining > 0 {
		c.mu.Unlock()
		return
	}

	c.remaining = 0
	c.state = CountdownExpired
	fire := c.onExpire
	c.mu.Unlock()

	// Fired outside the lock: the callback typically finalizes the attempt
	// and may call back into Remaining.
	if fire != nil {
		fire()
	}
}

// Stop cancels the countdown. No callback fires after Stop returns.
func (c *Countdown) Stop() {
	c.mu.Lock()
	c.stopped = true
	c.mu.Unlock()
}

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Expired reports whether the countdown has reached zero.
func (c *Countdown) Expired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == CountdownExpired
}

// Stopped reports whether Stop was called before expiry.
func (c *Countdown) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopped
}
