package background

import (
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Grass colours and texture density
var (
	GrassColor   = color.RGBA{0x2d, 0x5a, 0x27, 0xff}
	SpeckleColor = color.RGBA{0x1a, 0x3d, 0x17, 0xff}
)

const (
	SpeckleCount = 100
	SpeckleSize  = 2
)

// Speckle is one texture square, top-left corner in pixels
type Speckle struct {
	X, Y float64
}

// Generator paints the grass behind the track
type Generator struct {
	Width  int
	Height int
}

// NewGenerator creates a new background generator
func NewGenerator(width, height int) *Generator {
	return &Generator{
		Width:  width,
		Height: height,
	}
}

// Speckles picks SpeckleCount random texture squares.
func (g *Generator) Speckles(rng *rand.Rand) []Speckle {
	speckles := make([]Speckle, SpeckleCount)
	for i := range speckles {
		speckles[i] = Speckle{
			X: rng.Float64() * float64(g.Width),
			Y: rng.Float64() * float64(g.Height),
		}
	}
	return speckles
}

// PaintGrass fills dst with grass and a fresh set of speckles.
func (g *Generator) PaintGrass(dst *ebiten.Image, rng *rand.Rand) {
	dst.Fill(GrassColor)
	for _, s := range g.Speckles(rng) {
		vector.FillRect(dst, float32(s.X), float32(s.Y), SpeckleSize, SpeckleSize, SpeckleColor, false)
	}
}
