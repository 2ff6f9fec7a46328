package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/golangdaddy/circuit/pkg/models/track"
)

// Start/finish block geometry
const (
	startLineWidth = 40.0
	checkerSize    = 5.0
	checkerCols    = 8
)

// Rect is an axis-aligned rectangle in float pixels
type Rect struct {
	X, Y, W, H float64
}

// StartLine returns the white block and the black checker cells of the
// start/finish line centred vertically on start.
func StartLine(start track.Point, trackWidth float64) (Rect, []Rect) {
	left := start.X - startLineWidth/2
	top := start.Y - trackWidth/2
	block := Rect{X: left, Y: top, W: startLineWidth, H: trackWidth}

	rows := int(math.Floor(trackWidth / checkerSize))
	var cells []Rect
	for i := 0; i < checkerCols; i++ {
		for j := 0; j < rows; j++ {
			if (i+j)%2 == 0 {
				cells = append(cells, Rect{
					X: left + float64(i)*checkerSize,
					Y: top + float64(j)*checkerSize,
					W: checkerSize,
					H: checkerSize,
				})
			}
		}
	}
	return block, cells
}

// DrawStartLine draws the checkered start/finish block.
func DrawStartLine(dst *ebiten.Image, start track.Point, trackWidth float64) {
	block, cells := StartLine(start, trackWidth)
	fillRect(dst, block, color.White)
	for _, c := range cells {
		fillRect(dst, c, color.Black)
	}
}

func fillRect(dst *ebiten.Image, r Rect, clr color.Color) {
	vector.FillRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}
