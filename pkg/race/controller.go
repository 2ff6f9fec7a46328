package race

import (
	"go.uber.org/zap"

	"github.com/golangdaddy/circuit/pkg/clock"
	"github.com/golangdaddy/circuit/pkg/input"
	"github.com/golangdaddy/circuit/pkg/models"
)

// KeySource yields the key events of one frame.
type KeySource interface {
	Poll() []input.KeyEvent
}

// Listener forwards key events from a source until it is closed.
type Listener struct {
	src    KeySource
	closed bool
}

// Poll returns this frame's events, or nothing once closed.
func (l *Listener) Poll() []input.KeyEvent {
	if l.closed {
		return nil
	}
	return l.src.Poll()
}

// Close detaches the listener from its source.
func (l *Listener) Close() {
	l.closed = true
}

// Closed reports whether Close has been called.
func (l *Listener) Closed() bool {
	return l.closed
}

// Controller runs races on a designer. It owns the race tick and the key
// listener: both exist only between Start and Stop (or Close).
type Controller struct {
	designer *models.Designer
	clock    clock.Clock
	keys     KeySource
	logger   *zap.Logger

	ticker   *Ticker
	listener *Listener
}

// NewController creates an idle controller.
func NewController(d *models.Designer, c clock.Clock, keys KeySource, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		designer: d,
		clock:    c,
		keys:     keys,
		logger:   logger,
	}
}

// Start begins a race and acquires the tick and key listener. It returns
// models.ErrNoTrack when there is nothing to race on.
func (c *Controller) Start() error {
	if err := c.designer.StartRace(c.clock.Now()); err != nil {
		c.logger.Debug("race start rejected", zap.Error(err))
		return err
	}
	c.release()
	c.ticker = NewTicker(c.clock, TickPeriod)
	c.listener = &Listener{src: c.keys}

	c.logger.Debug("race started",
		zap.Float64("x", c.designer.Car.X),
		zap.Float64("y", c.designer.Car.Y))
	return nil
}

// Stop ends the race, releasing the tick and key listener first.
func (c *Controller) Stop() (models.LapRecord, bool) {
	c.release()
	rec, ok := c.designer.StopRace()
	if ok {
		c.logger.Info("race stopped",
			zap.Int("lap", rec.Lap),
			zap.String("time", FormatLapTime(rec.Duration)),
			zap.Bool("qualifying", rec.Qualifying),
			zap.Bool("best", rec.PersonalBest))
	}
	return rec, ok
}

// Update polls the listener and the tick once. Call it every frame.
func (c *Controller) Update() {
	if c.listener != nil {
		for _, ev := range c.listener.Poll() {
			if ev.Released {
				c.designer.KeyUp(ev.Key)
			} else {
				c.designer.KeyDown(ev.Key)
			}
		}
	}
	if c.ticker != nil {
		if now, ok := c.ticker.Due(); ok {
			c.designer.Tick(now)
		}
	}
}

// Active reports whether the race handles are held.
func (c *Controller) Active() bool {
	return c.ticker != nil
}

// Close releases the race handles without recording a lap. Used when the
// screen goes away mid-race.
func (c *Controller) Close() {
	c.release()
}

func (c *Controller) release() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
	if c.listener != nil {
		c.listener.Close()
		c.listener = nil
	}
}
