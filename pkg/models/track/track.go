package track

import (
	"math"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/spatial/r2"
)

// SegmentType labels a segment. New segments are always Straight and
// nothing in the designer reads the label.
type SegmentType string

const (
	Straight SegmentType = "straight"
	Curve    SegmentType = "curve"
	Chicane  SegmentType = "chicane"
	Start    SegmentType = "start"
	Pit      SegmentType = "pit"
)

// Point is a position in canvas pixel space
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Vec converts the point to a gonum vector.
func (p Point) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// FromVec converts a gonum vector back to a Point.
func FromVec(v r2.Vec) Point {
	return Point{X: v.X, Y: v.Y}
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return r2.Norm(r2.Sub(p.Vec(), q.Vec()))
}

// Segment is one committed freehand polyline of the track
type Segment struct {
	ID     uuid.UUID
	Type   SegmentType
	Points []Point
	Width  float64
}

// NewSegment commits a gesture as a segment. The points are copied so later
// changes to the gesture buffer never reach the segment.
func NewSegment(points []Point, width float64) Segment {
	return Segment{
		ID:     uuid.New(),
		Type:   Straight,
		Points: append([]Point(nil), points...),
		Width:  width,
	}
}

// Near reports whether any point of the segment lies strictly within radius
// of p.
func (s Segment) Near(p Point, radius float64) bool {
	return lo.SomeBy(s.Points, func(q Point) bool {
		return q.Distance(p) < radius
	})
}

// First returns the first point of the segment.
func (s Segment) First() (Point, bool) {
	if len(s.Points) == 0 {
		return Point{}, false
	}
	return s.Points[0], true
}

// Dash is one visible stroke of a dashed line.
type Dash struct {
	A, B Point
}

// Dashes splits a polyline into visible dashes using an on/off pattern.
// The pattern phase carries across vertices, so a dash may be split into
// several pieces where the polyline turns.
func Dashes(points []Point, on, off float64) []Dash {
	if len(points) < 2 || on <= 0 {
		return nil
	}

	var dashes []Dash
	drawing := true
	remaining := on

	for i := 1; i < len(points); i++ {
		a, b := points[i-1].Vec(), points[i].Vec()
		edge := r2.Sub(b, a)
		length := r2.Norm(edge)
		if length == 0 {
			continue
		}
		dir := r2.Scale(1/length, edge)

		pos := 0.0
		for pos < length {
			step := math.Min(remaining, length-pos)
			if drawing && step > 0 {
				dashes = append(dashes, Dash{
					A: FromVec(r2.Add(a, r2.Scale(pos, dir))),
					B: FromVec(r2.Add(a, r2.Scale(pos+step, dir))),
				})
			}
			pos += step
			remaining -= step
			if remaining <= 0 {
				drawing = !drawing
				if drawing {
					remaining = on
				} else {
					remaining = off
				}
			}
		}
	}

	return dashes
}
