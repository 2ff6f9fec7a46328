package ui

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	buttonIdle     = color.RGBA{255, 255, 255, 50}
	buttonSelected = color.RGBA{0xe7, 0x4c, 0x3c, 0xff}
	buttonGo       = color.RGBA{0x27, 0xae, 0x60, 0xff}
	buttonWarn     = color.RGBA{0xf3, 0x9c, 0x12, 0xff}
	textWhite      = color.RGBA{255, 255, 255, 255}
)

// Button is a clickable rectangle
type Button struct {
	Rect    image.Rectangle
	Label   string
	Color   color.Color
	OnClick func()
}

// Contains reports whether p is on the button.
func (b *Button) Contains(p image.Point) bool {
	return p.In(b.Rect)
}

// Click runs the button's action if p is on it.
func (b *Button) Click(p image.Point) bool {
	if !b.Contains(p) {
		return false
	}
	if b.OnClick != nil {
		b.OnClick()
	}
	return true
}

// Draw renders the button
func (b *Button) Draw(screen *ebiten.Image) {
	clr := b.Color
	if clr == nil {
		clr = buttonIdle
	}
	r := b.Rect
	drawButton(screen, b.Label, float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), clr, textWhite)
}

// Slider picks an integer value between Min and Max by dragging a knob
type Slider struct {
	X, Y     float64
	Width    float64
	Min, Max float64
	Value    func() float64
	OnChange func(float64)

	active bool
}

const knobRadius = 9.0

// HandleInput updates the slider from the cursor and reports whether the
// slider is being dragged.
func (s *Slider) HandleInput(mx, my float64, justPressed, pressed bool) bool {
	if !pressed {
		s.active = false
		return false
	}
	if justPressed && s.hit(mx, my) {
		s.active = true
	}
	if !s.active {
		return false
	}

	v := s.ValueAt(mx)
	if s.OnChange != nil && v != s.Value() {
		s.OnChange(v)
	}
	return true
}

// ValueAt maps a cursor x position to a slider value.
func (s *Slider) ValueAt(mx float64) float64 {
	t := (mx - s.X) / s.Width
	t = math.Max(0, math.Min(1, t))
	return math.Round(s.Min + t*(s.Max-s.Min))
}

func (s *Slider) knobX() float64 {
	return s.X + (s.Value()-s.Min)/(s.Max-s.Min)*s.Width
}

// hit accepts presses on the knob or anywhere along the bar.
func (s *Slider) hit(mx, my float64) bool {
	if math.Hypot(mx-s.knobX(), my-s.Y) <= knobRadius*1.5 {
		return true
	}
	return mx >= s.X && mx <= s.X+s.Width && math.Abs(my-s.Y) <= knobRadius
}

// Draw renders the slider
func (s *Slider) Draw(screen *ebiten.Image) {
	trackHeight := 6.0
	vector.FillRect(screen, float32(s.X), float32(s.Y-trackHeight/2), float32(s.Width), float32(trackHeight), color.RGBA{60, 60, 60, 255}, false)
	vector.FillCircle(screen, float32(s.knobX()), float32(s.Y), knobRadius, color.RGBA{200, 200, 200, 255}, true)
}

// Notice is a blocking modal message with a single OK button
type Notice struct {
	Message string
	Visible bool

	screenW, screenH int
}

const (
	noticeW = 400
	noticeH = 150
)

// NewNotice creates a hidden notice centred on a screen of the given size.
func NewNotice(screenW, screenH int) *Notice {
	return &Notice{screenW: screenW, screenH: screenH}
}

// Show displays msg.
func (n *Notice) Show(msg string) {
	n.Message = msg
	n.Visible = true
}

func (n *Notice) box() image.Rectangle {
	x := (n.screenW - noticeW) / 2
	y := (n.screenH - noticeH) / 2
	return image.Rect(x, y, x+noticeW, y+noticeH)
}

func (n *Notice) okRect() image.Rectangle {
	b := n.box()
	cx := (b.Min.X + b.Max.X) / 2
	return image.Rect(cx-50, b.Max.Y-55, cx+50, b.Max.Y-20)
}

// HandleInput dismisses the notice on an OK click or a confirm key.
func (n *Notice) HandleInput(cursor image.Point, clicked, confirm bool) {
	if !n.Visible {
		return
	}
	if confirm || (clicked && cursor.In(n.okRect())) {
		n.Visible = false
	}
}

// Draw renders the notice over a dimmed screen
func (n *Notice) Draw(screen *ebiten.Image) {
	if !n.Visible {
		return
	}
	vector.FillRect(screen, 0, 0, float32(n.screenW), float32(n.screenH), color.RGBA{0, 0, 0, 140}, false)

	b := n.box()
	vector.FillRect(screen, float32(b.Min.X), float32(b.Min.Y), noticeW, noticeH, color.RGBA{30, 30, 40, 255}, false)
	vector.StrokeRect(screen, float32(b.Min.X), float32(b.Min.Y), noticeW, noticeH, 2, color.RGBA{200, 200, 220, 255}, false)
	drawText(screen, n.Message, float64(b.Min.X+noticeW/2), float64(b.Min.Y+45), 20, textWhite)

	ok := Button{Rect: n.okRect(), Label: "OK", Color: buttonGo}
	ok.Draw(screen)
}
