package render

import (
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/golangdaddy/circuit/pkg/models/car"
)

// Sprite extent around the car centre
const (
	spriteHalfW = 18
	spriteHalfH = 8
)

var (
	bodyColor  = color.RGBA{0xe7, 0x4c, 0x3c, 0xff}
	wingColor  = color.RGBA{0x2c, 0x3e, 0x50, 0xff}
	wheelColor = color.RGBA{0x00, 0x00, 0x00, 0xff}
)

// Part is one filled rectangle of the car, in car-local coordinates with
// the origin at the car centre and +X pointing forward.
type Part struct {
	Rect  Rect
	Color color.Color
}

// CarParts lists the car's rectangles in drawing order.
func CarParts() []Part {
	return []Part{
		{Rect{-15, -6, 30, 12}, bodyColor}, // body
		{Rect{-18, -4, 5, 8}, wingColor},   // front wing
		{Rect{15, -4, 3, 8}, wingColor},    // rear wing
		{Rect{-12, -8, 6, 4}, wheelColor},
		{Rect{-12, 4, 6, 4}, wheelColor},
		{Rect{8, -8, 6, 4}, wheelColor},
		{Rect{8, 4, 6, 4}, wheelColor},
	}
}

// CarSprite is the pre-rendered car image
type CarSprite struct {
	img *ebiten.Image
}

// NewCarSprite renders the car body, wings, wheels and race number.
func NewCarSprite(number string) *CarSprite {
	img := ebiten.NewImage(2*spriteHalfW, 2*spriteHalfH)
	for _, p := range CarParts() {
		r := p.Rect
		r.X += spriteHalfW
		r.Y += spriteHalfH
		fillRect(img, r, p.Color)
	}

	face := text.NewGoXFace(bitmapfont.Face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(spriteHalfW, spriteHalfH)
	op.ColorScale.ScaleWithColor(color.White)
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	text.Draw(img, number, face, op)

	return &CarSprite{img: img}
}

// Draw draws the sprite centred on the car and rotated to its heading.
func (s *CarSprite) Draw(dst *ebiten.Image, c car.Car) {
	op := &ebiten.DrawImageOptions{}
	// Centre the sprite for rotation
	op.GeoM.Translate(-spriteHalfW, -spriteHalfH)
	op.GeoM.Rotate(c.Angle)
	op.GeoM.Translate(c.X, c.Y)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(s.img, op)
}
