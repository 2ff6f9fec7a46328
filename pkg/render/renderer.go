package render

import (
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/golangdaddy/circuit/pkg/background"
	"github.com/golangdaddy/circuit/pkg/models"
)

// Renderer draws a designer snapshot onto the canvas. The only thing it
// keeps between frames is the grass texture, repainted whenever the
// designer's revision changes.
type Renderer struct {
	bg       *background.Generator
	rng      *rand.Rand
	grass    *ebiten.Image
	revision uint64
	painted  bool
	car      *CarSprite
}

// NewRenderer creates a renderer for the fixed canvas size.
func NewRenderer(seed int64) *Renderer {
	return &Renderer{
		bg:  background.NewGenerator(models.CanvasWidth, models.CanvasHeight),
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Draw renders d onto dst, whose origin is the canvas origin.
func (r *Renderer) Draw(dst *ebiten.Image, d *models.Designer) {
	r.drawGrass(dst, d.Revision)

	for _, seg := range d.Completed {
		DrawTrack(dst, seg.Points, seg.Width, CommittedDash)
	}
	DrawTrack(dst, d.Current, d.TrackWidth, InProgressDash)

	if start, ok := d.StartPoint(); ok {
		DrawStartLine(dst, start, d.TrackWidth)
	}

	if d.Racing {
		if r.car == nil {
			r.car = NewCarSprite("1")
		}
		r.car.Draw(dst, d.Car)
	}
}

func (r *Renderer) drawGrass(dst *ebiten.Image, revision uint64) {
	if r.grass == nil {
		r.grass = ebiten.NewImage(models.CanvasWidth, models.CanvasHeight)
	}
	if !r.painted || revision != r.revision {
		r.bg.PaintGrass(r.grass, r.rng)
		r.revision = revision
		r.painted = true
	}
	dst.DrawImage(r.grass, &ebiten.DrawImageOptions{})
}
