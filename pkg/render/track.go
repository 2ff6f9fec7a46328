package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/golangdaddy/circuit/pkg/models/track"
)

var (
	asphaltColor    = color.RGBA{0x2c, 0x2c, 0x2c, 0xff}
	centerlineColor = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// Dash patterns for the centerline, on/off in pixels
const (
	CommittedDash  = 10.0
	InProgressDash = 5.0
	centerlineW    = 2
)

// DrawTrack strokes a polyline as asphalt with round caps and joins, then a
// dashed centerline on top. Polylines with fewer than two points are not
// drawn.
func DrawTrack(dst *ebiten.Image, points []track.Point, width, dash float64) {
	if len(points) < 2 {
		return
	}

	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(asphaltColor)
	vector.StrokePath(dst, asphaltPath(points), asphaltStroke(width), op)

	for _, d := range track.Dashes(points, dash, dash) {
		vector.StrokeLine(dst, float32(d.A.X), float32(d.A.Y), float32(d.B.X), float32(d.B.Y), centerlineW, centerlineColor, true)
	}
}

// asphaltPath is the polyline as one open path.
func asphaltPath(points []track.Point) *vector.Path {
	var path vector.Path
	for i, p := range points {
		if i == 0 {
			path.MoveTo(float32(p.X), float32(p.Y))
			continue
		}
		path.LineTo(float32(p.X), float32(p.Y))
	}
	return &path
}

func asphaltStroke(width float64) *vector.StrokeOptions {
	return &vector.StrokeOptions{
		Width:    float32(width),
		LineCap:  vector.LineCapRound,
		LineJoin: vector.LineJoinRound,
	}
}
