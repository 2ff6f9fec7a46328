package race

import (
	"time"

	"github.com/golangdaddy/circuit/pkg/clock"
)

// TickPeriod is the fixed period of the race tick.
const TickPeriod = 50 * time.Millisecond

// Ticker fires at a fixed period on a clock. It is polled once per frame;
// periods missed between polls are dropped rather than replayed.
type Ticker struct {
	clock   clock.Clock
	period  time.Duration
	next    time.Time
	stopped bool
}

// NewTicker starts a ticker whose first tick is one period from now.
func NewTicker(c clock.Clock, period time.Duration) *Ticker {
	return &Ticker{
		clock:  c,
		period: period,
		next:   c.Now().Add(period),
	}
}

// Due reports whether a tick is due and returns the current time.
func (t *Ticker) Due() (time.Time, bool) {
	if t.stopped {
		return time.Time{}, false
	}
	now := t.clock.Now()
	if now.Before(t.next) {
		return now, false
	}
	missed := now.Sub(t.next) / t.period
	t.next = t.next.Add((missed + 1) * t.period)
	return now, true
}

// Stop releases the ticker. A stopped ticker never fires again.
func (t *Ticker) Stop() {
	t.stopped = true
}

// Stopped reports whether Stop has been called.
func (t *Ticker) Stopped() bool {
	return t.stopped
}
