package ui

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/golangdaddy/circuit/pkg/models/car"
)

// GaugeFraction is how full the speed gauge is for a car speed, in [0, 1].
// Reversing shows on the gauge like forward speed.
func GaugeFraction(speed float64) float64 {
	return math.Min(math.Abs(speed)/car.MaxSpeed, 1.0)
}

// GaugeColor blends green to yellow to red as the gauge fills.
func GaugeColor(pct float64) color.RGBA {
	pct = math.Max(0, math.Min(1, pct))
	if pct < 0.5 {
		ratio := pct / 0.5
		return color.RGBA{uint8(100 + ratio*155), 255, 100, 255}
	}
	ratio := (pct - 0.5) / 0.5
	return color.RGBA{255, uint8(255 - ratio*155), uint8(100 - ratio*100), 255}
}

// drawSpeedGauge draws a horizontal bar showing speed
func drawSpeedGauge(screen *ebiten.Image, x, y, width, height float64, speed float64) {
	vector.FillRect(screen, float32(x), float32(y), float32(width), float32(height), color.RGBA{40, 40, 40, 255}, false)

	pct := GaugeFraction(speed)
	if filled := width * pct; filled > 0 {
		vector.FillRect(screen, float32(x), float32(y), float32(filled), float32(height), GaugeColor(pct), false)
	}

	vector.StrokeRect(screen, float32(x), float32(y), float32(width), float32(height), 1, color.RGBA{150, 150, 150, 255}, false)
}
