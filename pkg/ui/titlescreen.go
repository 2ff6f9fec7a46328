package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/golangdaddy/circuit/pkg/clock"
)

// TitleScreen is shown before the designer
type TitleScreen struct {
	title          string
	clock          clock.Clock
	startTime      time.Time
	onStartPressed func()
}

// NewTitleScreen creates a title screen that calls onStartPressed on Enter,
// Space or a click.
func NewTitleScreen(title string, c clock.Clock, onStartPressed func()) *TitleScreen {
	if c == nil {
		c = clock.Real{}
	}
	return &TitleScreen{
		title:          title,
		clock:          c,
		startTime:      c.Now(),
		onStartPressed: onStartPressed,
	}
}

// Update handles input for the title screen
func (ts *TitleScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if ts.onStartPressed != nil {
			ts.onStartPressed()
		}
	}
	return nil
}

// Pulse is the title scale factor after elapsed seconds, between 0.9 and 1.1.
func Pulse(elapsed float64) float64 {
	return 1.0 + 0.1*math.Sin(elapsed*2.0)
}

// PromptVisible reports whether the start prompt is shown; it blinks every
// half second.
func PromptVisible(elapsed float64) bool {
	return int(elapsed*2)%2 == 0
}

// Draw renders the title screen
func (ts *TitleScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	screen.Fill(color.RGBA{0x66, 0x7e, 0xea, 255})

	elapsed := ts.clock.Since(ts.startTime).Seconds()
	centerX := float64(width) / 2
	centerY := float64(height) / 3

	drawCheckerBand(screen, width, float64(height)/6)
	drawCheckerBand(screen, width, float64(height)*5/6-10)

	drawText(screen, ts.title, centerX, centerY, lineHeight*6*Pulse(elapsed), color.RGBA{255, 255, 255, 255})
	drawText(screen, "Draw it. Drive it.", centerX, centerY+80, lineHeight*2, color.RGBA{0xf1, 0xc4, 0x0f, 255})

	if PromptVisible(elapsed) {
		drawText(screen, "Press ENTER or SPACE to start", centerX, float64(height)-70, lineHeight*1.5, color.RGBA{230, 230, 250, 255})
	}
}

// drawCheckerBand draws a strip of start-line squares across the screen.
func drawCheckerBand(screen *ebiten.Image, width int, y float64) {
	const cell = 10
	for i := 0; i*cell < width; i++ {
		for j := 0; j < 2; j++ {
			if (i+j)%2 == 0 {
				vector.FillRect(screen, float32(i*cell), float32(y)+float32(j*cell), cell, cell, color.RGBA{255, 255, 255, 200}, false)
			}
		}
	}
}
