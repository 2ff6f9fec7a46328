package game

import (
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/golangdaddy/circuit/pkg/input"
	"github.com/golangdaddy/circuit/pkg/models"
	"github.com/golangdaddy/circuit/pkg/race"
	"github.com/golangdaddy/circuit/pkg/render"
	"github.com/golangdaddy/circuit/pkg/ui"
)

// NoTrackMessage is shown when a race is started on an empty canvas.
const NoTrackMessage = "Draw a track first!"

// Frame is one tick of raw pointer and confirm-key input
type Frame struct {
	Cursor      image.Point
	JustPressed bool // left button went down this tick
	Pressed     bool // left button is held
	Confirm     bool // Enter or Escape went down this tick
}

func pollFrame() Frame {
	x, y := ebiten.CursorPosition()
	return Frame{
		Cursor:      image.Pt(x, y),
		JustPressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Pressed:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Confirm: inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
			inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
}

// DesignerScreen is the track designer: canvas, control panel and the race
// minigame.
type DesignerScreen struct {
	designer   *models.Designer
	controller *race.Controller
	pointer    *input.Pointer
	renderer   *render.Renderer
	panel      *ui.Panel
	notice     *ui.Notice
	logger     *zap.Logger
}

// NewDesignerScreen mounts an empty designer.
func NewDesignerScreen(opts Options) *DesignerScreen {
	opts = opts.withDefaults()

	d := models.NewDesigner(opts.TrackWidth)
	s := &DesignerScreen{
		designer:   d,
		controller: race.NewController(d, opts.Clock, opts.Keys, opts.Logger),
		pointer:    input.NewPointer(image.Rect(0, 0, models.CanvasWidth, models.CanvasHeight)),
		renderer:   render.NewRenderer(opts.Seed),
		notice:     ui.NewNotice(ScreenWidth, ScreenHeight),
		logger:     opts.Logger,
	}
	s.panel = ui.NewPanel(ui.PanelActions{
		SelectTool:    d.SetTool,
		SetTrackWidth: d.SetTrackWidth,
		StartRace:     s.startRace,
		StopRace:      s.stopRace,
		Clear:         s.clear,
	})
	return s
}

// Designer exposes the view-state.
func (s *DesignerScreen) Designer() *models.Designer {
	return s.designer
}

// Update handles input for the designer
func (s *DesignerScreen) Update() error {
	s.step(pollFrame())
	return nil
}

func (s *DesignerScreen) step(f Frame) {
	if s.notice.Visible {
		s.notice.HandleInput(f.Cursor, f.JustPressed, f.Confirm)
		s.pointer.Reset()
		return
	}

	if !s.panel.Update(s.designer, f.Cursor, f.JustPressed, f.Pressed) {
		for _, ev := range s.pointer.Next(f.Cursor, f.JustPressed, f.Pressed) {
			s.handlePointer(ev)
		}
	}

	s.controller.Update()
}

func (s *DesignerScreen) handlePointer(ev input.PointerEvent) {
	d := s.designer
	switch ev.Kind {
	case input.PointerDown:
		if d.Tool == models.ToolErase && !d.Racing {
			if n := d.Erase(ev.Pos); n > 0 {
				s.logger.Debug("segments erased",
					zap.Int("count", n),
					zap.Int("remaining", len(d.Completed)))
			}
			return
		}
		d.PointerDown(ev.Pos)
	case input.PointerMove:
		d.PointerMove(ev.Pos)
	case input.PointerUp:
		if seg, ok := d.PointerUp(); ok {
			s.logger.Debug("segment committed",
				zap.Stringer("id", seg.ID),
				zap.Int("points", len(seg.Points)),
				zap.Float64("width", seg.Width))
		}
	}
}

func (s *DesignerScreen) startRace() {
	if err := s.controller.Start(); errors.Is(err, models.ErrNoTrack) {
		s.pointer.Reset()
		s.notice.Show(NoTrackMessage)
	}
}

func (s *DesignerScreen) stopRace() {
	s.controller.Stop()
}

func (s *DesignerScreen) clear() {
	s.designer.Clear()
	s.logger.Debug("track cleared")
}

// Close releases the race handles; a race in progress is not recorded.
func (s *DesignerScreen) Close() {
	s.controller.Close()
}

// Draw renders the canvas, panel and any notice
func (s *DesignerScreen) Draw(screen *ebiten.Image) {
	s.renderer.Draw(screen, s.designer)
	s.panel.Draw(screen, s.designer)
	s.notice.Draw(screen)
}
