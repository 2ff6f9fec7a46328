package input

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/golangdaddy/circuit/pkg/models/track"
)

// PointerKind is the kind of a pointer event
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

// PointerEvent is a pointer event in canvas coordinates
type PointerEvent struct {
	Kind PointerKind
	Pos  track.Point
}

// Pointer tracks the left mouse button over a canvas area and emits
// down/move/up events. Leaving the area while pressed emits up.
type Pointer struct {
	bounds image.Rectangle
	down   bool
	last   image.Point
}

// NewPointer creates a pointer tracker for a canvas at bounds. Event
// positions are relative to bounds.Min.
func NewPointer(bounds image.Rectangle) *Pointer {
	return &Pointer{bounds: bounds}
}

// Poll reads ebiten's cursor and left button state.
func (p *Pointer) Poll() []PointerEvent {
	x, y := ebiten.CursorPosition()
	return p.Next(image.Pt(x, y),
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// Next advances the tracker with one tick of raw input.
func (p *Pointer) Next(cursor image.Point, justPressed, pressed bool) []PointerEvent {
	inside := cursor.In(p.bounds)
	pos := p.canvasPoint(cursor)

	switch {
	case justPressed && inside:
		p.down = true
		p.last = cursor
		return []PointerEvent{{Kind: PointerDown, Pos: pos}}
	case !p.down:
		return nil
	case !inside || !pressed:
		p.down = false
		return []PointerEvent{{Kind: PointerUp, Pos: pos}}
	case cursor != p.last:
		p.last = cursor
		return []PointerEvent{{Kind: PointerMove, Pos: pos}}
	}
	return nil
}

// Reset drops any tracked press without emitting events.
func (p *Pointer) Reset() {
	p.down = false
}

func (p *Pointer) canvasPoint(cursor image.Point) track.Point {
	rel := cursor.Sub(p.bounds.Min)
	return track.Pt(float64(rel.X), float64(rel.Y))
}
