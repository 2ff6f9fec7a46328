package models

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/golangdaddy/circuit/pkg/models/car"
	"github.com/golangdaddy/circuit/pkg/models/track"
)

// Canvas dimensions in pixels
const (
	CanvasWidth  = 800
	CanvasHeight = 600
)

// Track width limits and default, in pixels
const (
	MinTrackWidth     = 20
	MaxTrackWidth     = 80
	DefaultTrackWidth = 40
)

// QualifyingLap is the shortest lap that can become a best lap.
const QualifyingLap = 3000 * time.Millisecond

// ErrNoTrack is returned when a race is started before any segment exists.
var ErrNoTrack = errors.New("draw a track first")

// Tool is the active pointer tool
type Tool int

const (
	ToolDraw Tool = iota
	ToolErase
)

func (t Tool) String() string {
	switch t {
	case ToolDraw:
		return "draw"
	case ToolErase:
		return "erase"
	}
	return "unknown"
}

// Key is a driving key
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	}
	return "unknown"
}

// LapRecord is one finished race session
type LapRecord struct {
	Lap          int
	Duration     time.Duration
	Qualifying   bool // longer than QualifyingLap
	PersonalBest bool // became the best lap when it was recorded
}

// Designer is the whole view-state of the track designer. It is only
// mutated by its transition methods.
type Designer struct {
	// Drawing
	Tool       Tool
	TrackWidth float64
	Completed  []track.Segment // drawing order; Completed[0] holds the start line
	Current    []track.Point   // in-progress gesture
	Drawing    bool

	// Racing
	Racing    bool
	Car       car.Car
	LapTime   time.Duration
	BestLap   *time.Duration
	StartedAt *time.Time
	Laps      []LapRecord

	// Revision is bumped by every transition that changes the state.
	Revision uint64
}

// NewDesigner creates an idle designer with the draw tool selected.
func NewDesigner(trackWidth float64) *Designer {
	d := &Designer{
		Tool: ToolDraw,
		Car:  car.NewCar(100, 100),
	}
	d.TrackWidth = clampWidth(trackWidth)
	return d
}

// SetTool selects the pointer tool.
func (d *Designer) SetTool(t Tool) {
	if d.Tool == t {
		return
	}
	d.Tool = t
	d.touch()
}

// SetTrackWidth sets the width for new segments and the erase radius.
func (d *Designer) SetTrackWidth(w float64) {
	w = clampWidth(w)
	if d.TrackWidth == w {
		return
	}
	d.TrackWidth = w
	d.touch()
}

// PointerDown starts a gesture with the draw tool or erases around p with
// the erase tool. Ignored while racing.
func (d *Designer) PointerDown(p track.Point) {
	if d.Racing {
		return
	}

	switch d.Tool {
	case ToolDraw:
		d.Drawing = true
		d.Current = []track.Point{p}
		d.touch()
	case ToolErase:
		d.Erase(p)
	}
}

// PointerMove extends the active gesture.
func (d *Designer) PointerMove(p track.Point) {
	if !d.Drawing || d.Racing {
		return
	}
	d.Current = append(d.Current, p)
	d.touch()
}

// PointerUp ends the gesture and returns the committed segment, if any.
// Gestures with fewer than two points commit nothing.
func (d *Designer) PointerUp() (track.Segment, bool) {
	var (
		seg       track.Segment
		committed bool
	)
	if d.Drawing && len(d.Current) > 1 {
		seg = track.NewSegment(d.Current, d.TrackWidth)
		d.Completed = append(d.Completed, seg)
		committed = true
	}

	if d.Drawing || len(d.Current) > 0 {
		d.touch()
	}
	d.Drawing = false
	d.Current = nil
	return seg, committed
}

// Erase removes every committed segment with a point closer than
// TrackWidth to p and returns how many were removed.
func (d *Designer) Erase(p track.Point) int {
	kept := lo.Reject(d.Completed, func(s track.Segment, _ int) bool {
		return s.Near(p, d.TrackWidth)
	})
	removed := len(d.Completed) - len(kept)
	if removed > 0 {
		d.Completed = kept
		d.touch()
	}
	return removed
}

// Clear removes all segments and any in-progress gesture.
func (d *Designer) Clear() {
	d.Completed = nil
	d.Current = nil
	d.Drawing = false
	d.touch()
}

// StartPoint is where the start/finish line sits and the car starts.
func (d *Designer) StartPoint() (track.Point, bool) {
	if len(d.Completed) == 0 {
		return track.Point{}, false
	}
	return d.Completed[0].First()
}

// StartRace puts the car on the start line and starts the lap clock.
func (d *Designer) StartRace(now time.Time) error {
	if len(d.Completed) == 0 {
		return ErrNoTrack
	}
	if d.Racing {
		return nil
	}

	if start, ok := d.StartPoint(); ok {
		d.Car = car.NewCar(start.X, start.Y)
	}
	d.Racing = true
	d.StartedAt = &now
	d.LapTime = 0
	d.touch()
	return nil
}

// Tick advances the car one step and refreshes the lap time.
func (d *Designer) Tick(now time.Time) {
	if !d.Racing {
		return
	}
	d.Car.Advance(CanvasWidth, CanvasHeight)
	if d.StartedAt != nil {
		d.LapTime = now.Sub(*d.StartedAt)
	}
	d.touch()
}

// KeyDown applies one press or repeat of a driving key.
func (d *Designer) KeyDown(k Key) {
	if !d.Racing {
		return
	}
	switch k {
	case KeyUp:
		d.Car.Accelerate()
	case KeyDown:
		d.Car.Brake()
	case KeyLeft:
		d.Car.Steer(-1)
	case KeyRight:
		d.Car.Steer(1)
	default:
		return
	}
	d.touch()
}

// KeyUp applies friction when the throttle or brake is released.
func (d *Designer) KeyUp(k Key) {
	if !d.Racing {
		return
	}
	if k == KeyUp || k == KeyDown {
		d.Car.Coast()
		d.touch()
	}
}

// StopRace ends the session, records it and updates the best lap.
func (d *Designer) StopRace() (LapRecord, bool) {
	if !d.Racing {
		return LapRecord{}, false
	}

	rec := LapRecord{
		Lap:      len(d.Laps) + 1,
		Duration: d.LapTime,
	}
	if d.StartedAt != nil && d.LapTime > QualifyingLap {
		rec.Qualifying = true
		if d.BestLap == nil || d.LapTime < *d.BestLap {
			best := d.LapTime
			d.BestLap = &best
			rec.PersonalBest = true
		}
	}

	d.Laps = append(d.Laps, rec)
	d.Racing = false
	d.StartedAt = nil
	d.touch()
	return rec, true
}

// QualifyingLaps returns the recorded laps that could count as best lap.
func (d *Designer) QualifyingLaps() []LapRecord {
	return lo.Filter(d.Laps, func(r LapRecord, _ int) bool {
		return r.Qualifying
	})
}

func (d *Designer) touch() {
	d.Revision++
}

func clampWidth(w float64) float64 {
	return math.Max(MinTrackWidth, math.Min(MaxTrackWidth, math.Round(w)))
}
