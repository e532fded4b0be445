package match

import (
	"fmt"
	"time"
)

// Clock is the pure time-accounting primitive for a match. It keeps the
// total of all completed running intervals separate from the currently
// running interval, so repeated start/pause cycles never drift and
// Elapsed stays side-effect free for pollers.
//
// Clock knows nothing about players or periods. The caller supplies the
// current time on every transition so the time source stays injectable.
type Clock struct {
	Running     bool
	StartedAt   time.Time
	Accumulated time.Duration
}

// Start begins a running interval at now.
func (c *Clock) Start(now time.Time) error {
	if c.Running {
		return fmt.Errorf("%w: clock already running", ErrInvalidTransition)
	}
	c.Running = true
	c.StartedAt = now
	return nil
}

// Pause ends the current running interval at now, folding it into the
// accumulated total.
func (c *Clock) Pause(now time.Time) error {
	if !c.Running {
		return fmt.Errorf("%w: clock not running", ErrInvalidTransition)
	}
	c.Accumulated += now.Sub(c.StartedAt)
	c.Running = false
	c.StartedAt = time.Time{}
	return nil
}

// Elapsed returns total match time as of now. Pure; safe to call from
// display tickers at any rate.
func (c *Clock) Elapsed(now time.Time) time.Duration {
	if c.Running {
		return c.Accumulated + now.Sub(c.StartedAt)
	}
	return c.Accumulated
}
