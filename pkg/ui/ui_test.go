package ui

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/circuit/pkg/models"
)

type recordedActions struct {
	tools  []models.Tool
	widths []float64
	starts int
	stops  int
	clears int
}

func (r *recordedActions) actions() PanelActions {
	return PanelActions{
		SelectTool:    func(t models.Tool) { r.tools = append(r.tools, t) },
		SetTrackWidth: func(w float64) { r.widths = append(r.widths, w) },
		StartRace:     func() { r.starts++ },
		StopRace:      func() { r.stops++ },
		Clear:         func() { r.clears++ },
	}
}

func TestButton_Click(t *testing.T) {
	clicks := 0
	b := Button{Rect: image.Rect(10, 10, 50, 30), OnClick: func() { clicks++ }}

	assert.True(t, b.Click(image.Pt(20, 20)))
	assert.False(t, b.Click(image.Pt(50, 30)), "max corner is outside")
	assert.False(t, b.Click(image.Pt(0, 0)))
	assert.Equal(t, 1, clicks)

	var noop Button
	noop.Rect = image.Rect(0, 0, 5, 5)
	assert.True(t, noop.Click(image.Pt(1, 1)))
}

func TestSlider_ValueAt(t *testing.T) {
	s := Slider{X: 100, Width: 60, Min: 20, Max: 80}

	assert.Equal(t, 20.0, s.ValueAt(0))
	assert.Equal(t, 20.0, s.ValueAt(100))
	assert.Equal(t, 50.0, s.ValueAt(130))
	assert.Equal(t, 80.0, s.ValueAt(160))
	assert.Equal(t, 80.0, s.ValueAt(500))
	assert.Equal(t, 41.0, s.ValueAt(120.6))
}

func TestSlider_Drag(t *testing.T) {
	value := 40.0
	var changes []float64
	s := Slider{
		X: 0, Y: 10, Width: 60, Min: 20, Max: 80,
		Value:    func() float64 { return value },
		OnChange: func(v float64) { value = v; changes = append(changes, v) },
	}

	// press away from the bar does nothing
	assert.False(t, s.HandleInput(30, 100, true, true))
	assert.False(t, s.HandleInput(30, 10, false, true), "drag must start on the slider")

	assert.True(t, s.HandleInput(20, 10, true, true))
	assert.True(t, s.HandleInput(50, 40, false, true), "drag continues off the bar")
	assert.True(t, s.HandleInput(50, 40, false, true))
	assert.False(t, s.HandleInput(50, 40, false, false))

	assert.Equal(t, []float64{70}, changes)
	assert.Equal(t, 70.0, value)
}

func TestNotice(t *testing.T) {
	n := NewNotice(1080, 600)
	assert.False(t, n.Visible)

	n.HandleInput(image.Pt(0, 0), true, true)
	assert.False(t, n.Visible)

	n.Show("Draw a track first!")
	require.True(t, n.Visible)
	assert.Equal(t, "Draw a track first!", n.Message)

	n.HandleInput(image.Pt(10, 10), true, false)
	assert.True(t, n.Visible, "click outside OK keeps the notice")

	ok := n.okRect()
	center := image.Pt((ok.Min.X+ok.Max.X)/2, (ok.Min.Y+ok.Max.Y)/2)
	n.HandleInput(center, false, false)
	assert.True(t, n.Visible, "hover alone keeps the notice")

	n.HandleInput(center, true, false)
	assert.False(t, n.Visible)

	n.Show("again")
	n.HandleInput(image.Pt(0, 0), false, true)
	assert.False(t, n.Visible, "confirm key dismisses")
}

func TestPanel_Buttons(t *testing.T) {
	rec := &recordedActions{}
	p := NewPanel(rec.actions())
	d := models.NewDesigner(models.DefaultTrackWidth)

	assert.True(t, p.Update(d, image.Pt(870, 50), true, true))
	assert.True(t, p.Update(d, image.Pt(1000, 50), true, true))
	assert.Equal(t, []models.Tool{models.ToolDraw, models.ToolErase}, rec.tools)

	assert.True(t, p.Update(d, image.Pt(870, 175), true, true))
	assert.Equal(t, 1, rec.starts)
	assert.Zero(t, rec.stops)

	d.Racing = true
	assert.True(t, p.Update(d, image.Pt(870, 175), true, true))
	assert.Equal(t, 1, rec.stops)
	assert.Equal(t, "Stop", p.startStop.Label)

	assert.True(t, p.Update(d, image.Pt(1000, 175), true, true))
	assert.Equal(t, 1, rec.clears)
}

func TestPanel_PassesCanvasInput(t *testing.T) {
	rec := &recordedActions{}
	p := NewPanel(rec.actions())
	d := models.NewDesigner(models.DefaultTrackWidth)

	assert.False(t, p.Update(d, image.Pt(400, 300), true, true))
	assert.False(t, p.Update(d, image.Pt(870, 50), false, true), "held button is not a click")
	assert.True(t, p.Update(d, image.Pt(900, 550), true, true), "panel background swallows clicks")
	assert.Empty(t, rec.tools)
}

func TestPanel_WidthSlider(t *testing.T) {
	rec := &recordedActions{}
	p := NewPanel(rec.actions())
	d := models.NewDesigner(models.DefaultTrackWidth)

	// slider spans x 820..1060, centre maps to 50
	assert.True(t, p.Update(d, image.Pt(940, 112), true, true))
	assert.True(t, p.Update(d, image.Pt(1200, 112), false, true))
	assert.False(t, p.Update(d, image.Pt(1200, 112), false, false))

	assert.Equal(t, []float64{50, 80}, rec.widths)
}

func TestGaugeFraction(t *testing.T) {
	assert.Equal(t, 0.0, GaugeFraction(0))
	assert.Equal(t, 1.0, GaugeFraction(5))
	assert.InDelta(t, 0.4, GaugeFraction(-2), 1e-9)
	assert.Equal(t, 1.0, GaugeFraction(7))
}

func TestGaugeColor(t *testing.T) {
	assert.Equal(t, color.RGBA{100, 255, 100, 255}, GaugeColor(0))
	assert.Equal(t, color.RGBA{255, 255, 100, 255}, GaugeColor(0.5))
	assert.Equal(t, color.RGBA{255, 100, 0, 255}, GaugeColor(1))
	assert.Equal(t, GaugeColor(1), GaugeColor(3))
}

func TestTitleAnimation(t *testing.T) {
	assert.Equal(t, 1.0, Pulse(0))
	for _, e := range []float64{0.3, 1.7, 12.25} {
		assert.InDelta(t, 1.0, Pulse(e), 0.1+1e-9)
	}

	assert.True(t, PromptVisible(0))
	assert.True(t, PromptVisible(0.49))
	assert.False(t, PromptVisible(0.5))
	assert.True(t, PromptVisible(1.0))
}
