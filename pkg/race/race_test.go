package race

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/golangdaddy/circuit/pkg/clock"
	"github.com/golangdaddy/circuit/pkg/input"
	"github.com/golangdaddy/circuit/pkg/models"
	"github.com/golangdaddy/circuit/pkg/models/track"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type scriptedKeys struct {
	frames [][]input.KeyEvent
	polls  int
}

func (s *scriptedKeys) Poll() []input.KeyEvent {
	s.polls++
	if len(s.frames) == 0 {
		return nil
	}
	ev := s.frames[0]
	s.frames = s.frames[1:]
	return ev
}

func press(k models.Key) []input.KeyEvent   { return []input.KeyEvent{{Key: k}} }
func release(k models.Key) []input.KeyEvent { return []input.KeyEvent{{Key: k, Released: true}} }

func newTestController(t *testing.T, keys KeySource) (*Controller, *models.Designer, *clock.Mock) {
	t.Helper()
	d := models.NewDesigner(40)
	d.PointerDown(track.Pt(100, 100))
	d.PointerMove(track.Pt(300, 100))
	_, ok := d.PointerUp()
	require.True(t, ok)

	c := clock.NewMock(t0)
	return NewController(d, c, keys, zap.NewNop()), d, c
}

// frame advances the clock by one 60 TPS frame and updates the controller.
func frame(ctrl *Controller, c *clock.Mock, d time.Duration) {
	c.Advance(d)
	ctrl.Update()
}

func TestTicker_FixedPeriod(t *testing.T) {
	c := clock.NewMock(t0)
	tk := NewTicker(c, TickPeriod)

	fired := 0
	for i := 0; i < 60; i++ {
		c.Advance(time.Second / 60)
		if _, ok := tk.Due(); ok {
			fired++
		}
	}
	assert.InDelta(t, 20, fired, 1, "about 20 ticks in one second")
}

func TestTicker_DropsMissedPeriods(t *testing.T) {
	c := clock.NewMock(t0)
	tk := NewTicker(c, TickPeriod)

	c.Advance(time.Second)
	now, ok := tk.Due()
	require.True(t, ok)
	assert.Equal(t, t0.Add(time.Second), now)

	_, ok = tk.Due()
	assert.False(t, ok, "a stall produces one tick, not twenty")

	c.Advance(TickPeriod)
	_, ok = tk.Due()
	assert.True(t, ok)
}

func TestTicker_Stop(t *testing.T) {
	c := clock.NewMock(t0)
	tk := NewTicker(c, TickPeriod)
	tk.Stop()
	c.Advance(time.Minute)
	_, ok := tk.Due()
	assert.False(t, ok)
	assert.True(t, tk.Stopped())
}

func TestController_StartWithoutTrack(t *testing.T) {
	d := models.NewDesigner(40)
	core, logs := observer.New(zapcore.DebugLevel)
	ctrl := NewController(d, clock.NewMock(t0), &scriptedKeys{}, zap.New(core))

	err := ctrl.Start()
	assert.True(t, errors.Is(err, models.ErrNoTrack))
	assert.False(t, ctrl.Active())
	assert.False(t, d.Racing)
	assert.Equal(t, 1, logs.FilterMessage("race start rejected").Len())
}

func TestController_DrivesCar(t *testing.T) {
	keys := &scriptedKeys{frames: [][]input.KeyEvent{
		press(models.KeyUp),
		press(models.KeyUp),
		press(models.KeyUp),
	}}
	ctrl, d, c := newTestController(t, keys)

	require.NoError(t, ctrl.Start())
	assert.True(t, ctrl.Active())
	assert.Equal(t, 100.0, d.Car.X)

	for i := 0; i < 3; i++ {
		frame(ctrl, c, TickPeriod)
	}
	assert.InDelta(t, 0.6, d.Car.Speed, 1e-9)
	// speeds 0.2, 0.4, 0.6 applied before each tick
	assert.InDelta(t, 101.2, d.Car.X, 1e-9)
	assert.Equal(t, 3*TickPeriod, d.LapTime)
}

func TestController_KeyReleaseAppliesFriction(t *testing.T) {
	keys := &scriptedKeys{frames: [][]input.KeyEvent{
		press(models.KeyUp),
		release(models.KeyUp),
	}}
	ctrl, d, c := newTestController(t, keys)
	require.NoError(t, ctrl.Start())

	frame(ctrl, c, time.Millisecond)
	frame(ctrl, c, time.Millisecond)
	assert.InDelta(t, 0.19, d.Car.Speed, 1e-9)
}

func TestController_StopReleasesHandles(t *testing.T) {
	keys := &scriptedKeys{}
	ctrl, d, c := newTestController(t, keys)
	require.NoError(t, ctrl.Start())
	tk, ln := ctrl.ticker, ctrl.listener

	frame(ctrl, c, 4*time.Second)
	rec, ok := ctrl.Stop()
	require.True(t, ok)
	assert.True(t, rec.PersonalBest)
	require.NotNil(t, d.BestLap)
	assert.Equal(t, 4*time.Second, *d.BestLap)

	assert.False(t, ctrl.Active())
	assert.True(t, tk.Stopped())
	assert.True(t, ln.Closed())

	polls := keys.polls
	x := d.Car.X
	d.Car.Speed = 5
	frame(ctrl, c, time.Second)
	assert.Equal(t, polls, keys.polls, "keys are not polled after stop")
	assert.Equal(t, x, d.Car.X, "car does not move after stop")
}

func TestController_CloseMidRace(t *testing.T) {
	keys := &scriptedKeys{}
	ctrl, d, c := newTestController(t, keys)
	require.NoError(t, ctrl.Start())

	ctrl.Close()
	assert.False(t, ctrl.Active())

	frame(ctrl, c, time.Second)
	assert.Equal(t, 0, keys.polls)
	assert.Nil(t, d.BestLap)
	assert.Empty(t, d.Laps)
}

func TestController_RestartReplacesHandles(t *testing.T) {
	ctrl, _, c := newTestController(t, &scriptedKeys{})
	require.NoError(t, ctrl.Start())
	first := ctrl.ticker
	ctrl.Stop()

	c.Advance(time.Second)
	require.NoError(t, ctrl.Start())
	assert.True(t, first.Stopped())
	assert.NotSame(t, first, ctrl.ticker)
}

func TestFormatLapTime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0.00s"},
		{50 * time.Millisecond, "0.05s"},
		{3999 * time.Millisecond, "3.99s"},
		{12340 * time.Millisecond, "12.34s"},
		{61*time.Second + 7*time.Millisecond, "61.00s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatLapTime(tt.in))
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, nil, nil)
	assert.Equal(t, "No laps recorded.\n", buf.String())

	buf.Reset()
	best := 5 * time.Second
	WriteSummary(&buf, []models.LapRecord{
		{Lap: 1, Duration: 2 * time.Second},
		{Lap: 2, Duration: 5 * time.Second, Qualifying: true, PersonalBest: true},
	}, &best)

	out := buf.String()
	assert.Contains(t, out, "2.00s")
	assert.Contains(t, out, "5.00s")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "best lap")
}
