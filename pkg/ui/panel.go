package ui

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/golangdaddy/circuit/pkg/models"
	"github.com/golangdaddy/circuit/pkg/race"
)

// Panel geometry, to the right of the canvas
const (
	PanelX     = models.CanvasWidth
	PanelWidth = 280
)

var (
	panelBg     = color.RGBA{0x5b, 0x4b, 0x8a, 0xff}
	headerColor = color.RGBA{230, 230, 250, 255}
	bestColor   = color.RGBA{0xf1, 0xc4, 0x0f, 0xff}
)

var instructions = []string{
	"Draw: click and drag to lay track",
	"Erase: click near a segment",
	"Drive: up/down to accelerate/brake,",
	"       left/right to steer",
	"Goal: build an exciting circuit",
	"      and beat your best time!",
}

// PanelActions are the designer operations the panel can trigger
type PanelActions struct {
	SelectTool    func(models.Tool)
	SetTrackWidth func(float64)
	StartRace     func()
	StopRace      func()
	Clear         func()
}

// Panel is the control column: tools, track width, race controls and
// lap times.
type Panel struct {
	actions PanelActions

	draw, erase Button
	startStop   Button
	clear       Button
	width       Slider
	trackWidth  float64
	racing      bool
}

// NewPanel lays out the panel controls.
func NewPanel(actions PanelActions) *Panel {
	p := &Panel{actions: actions, trackWidth: models.DefaultTrackWidth}

	x := PanelX + 10
	half := (PanelWidth - 30) / 2
	p.draw = Button{
		Rect:  image.Rect(x, 35, x+half, 67),
		Label: "Draw",
		OnClick: func() {
			p.selectTool(models.ToolDraw)
		},
	}
	p.erase = Button{
		Rect:  image.Rect(x+half+10, 35, x+2*half+10, 67),
		Label: "Erase",
		OnClick: func() {
			p.selectTool(models.ToolErase)
		},
	}
	p.width = Slider{
		X:     float64(x + 10),
		Y:     112,
		Width: float64(PanelWidth - 40),
		Min:   models.MinTrackWidth,
		Max:   models.MaxTrackWidth,
		Value: func() float64 { return p.trackWidth },
		OnChange: func(v float64) {
			if actions.SetTrackWidth != nil {
				actions.SetTrackWidth(v)
			}
		},
	}
	p.startStop = Button{
		Rect: image.Rect(x, 160, x+half, 192),
		OnClick: func() {
			if p.racing {
				run(actions.StopRace)
			} else {
				run(actions.StartRace)
			}
		},
	}
	p.clear = Button{
		Rect:  image.Rect(x+half+10, 160, x+2*half+10, 192),
		Label: "Clear all",
		Color: buttonWarn,
		OnClick: func() {
			run(actions.Clear)
		},
	}
	return p
}

func (p *Panel) selectTool(t models.Tool) {
	if p.actions.SelectTool != nil {
		p.actions.SelectTool(t)
	}
}

func run(fn func()) {
	if fn != nil {
		fn()
	}
}

// Update syncs the panel with d and handles a click or slider drag. It
// reports whether the pointer input was consumed by the panel.
func (p *Panel) Update(d *models.Designer, cursor image.Point, justPressed, pressed bool) bool {
	p.sync(d)

	if p.width.HandleInput(float64(cursor.X), float64(cursor.Y), justPressed, pressed) {
		return true
	}
	if !justPressed {
		return false
	}
	for _, b := range []*Button{&p.draw, &p.erase, &p.startStop, &p.clear} {
		if b.Click(cursor) {
			return true
		}
	}
	return cursor.X >= PanelX
}

func (p *Panel) sync(d *models.Designer) {
	p.trackWidth = d.TrackWidth
	p.racing = d.Racing

	p.draw.Color = toolColor(d.Tool == models.ToolDraw)
	p.erase.Color = toolColor(d.Tool == models.ToolErase)
	if d.Racing {
		p.startStop.Label = "Stop"
		p.startStop.Color = buttonSelected
	} else {
		p.startStop.Label = "Start"
		p.startStop.Color = buttonGo
	}
}

func toolColor(selected bool) color.Color {
	if selected {
		return buttonSelected
	}
	return buttonIdle
}

// Draw renders the panel for d
func (p *Panel) Draw(screen *ebiten.Image, d *models.Designer) {
	p.sync(d)

	vector.FillRect(screen, PanelX, 0, PanelWidth, models.CanvasHeight, panelBg, false)
	x := float64(PanelX + 12)

	drawTextAt(screen, "TOOLS", x, 12, lineHeight, headerColor)
	p.draw.Draw(screen)
	p.erase.Draw(screen)
	drawTextAt(screen, fmt.Sprintf("Track width: %.0fpx", d.TrackWidth), x, 80, 12, textWhite)
	p.width.Draw(screen)

	drawTextAt(screen, "RACE", x, 137, lineHeight, headerColor)
	p.startStop.Draw(screen)
	p.clear.Draw(screen)
	if d.Racing {
		drawTextAt(screen, "Use the arrow keys to drive", x, 204, 12, textWhite)
	}

	drawTextAt(screen, "LAP TIMES", x, 232, lineHeight, headerColor)
	center := float64(PanelX + PanelWidth/2)
	drawText(screen, "Time: "+race.FormatLapTime(d.LapTime), center, 266, 20, textWhite)
	if d.BestLap != nil {
		drawText(screen, "Best: "+race.FormatLapTime(*d.BestLap), center, 292, lineHeight, bestColor)
	}
	drawText(screen, fmt.Sprintf("Speed: %d/50", d.Car.SpeedReading()), center, 316, 12, textWhite)
	drawSpeedGauge(screen, x, 330, PanelWidth-24, 12, d.Car.Speed)
	if n := len(d.Laps); n > 0 {
		drawText(screen, fmt.Sprintf("Laps run: %d", n), center, 358, 12, textWhite)
	}

	drawTextAt(screen, "INSTRUCTIONS", x, 390, lineHeight, headerColor)
	for i, line := range instructions {
		drawTextAt(screen, line, x, 414+float64(i)*16, 12, textWhite)
	}
}
