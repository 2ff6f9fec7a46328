package game

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/golangdaddy/circuit/pkg/clock"
	"github.com/golangdaddy/circuit/pkg/host"
	"github.com/golangdaddy/circuit/pkg/input"
	"github.com/golangdaddy/circuit/pkg/models"
	"github.com/golangdaddy/circuit/pkg/race"
	"github.com/golangdaddy/circuit/pkg/ui"
)

// Logical window size: canvas plus control panel
const (
	ScreenWidth  = models.CanvasWidth + ui.PanelWidth
	ScreenHeight = models.CanvasHeight
)

// Screen represents a UI screen interface
type Screen interface {
	Update() error
	Draw(screen *ebiten.Image)
}

// Options configures a game
type Options struct {
	Title      string
	TrackWidth float64
	Seed       int64 // grass texture seed, 0 picks one from the clock
	SkipTitle  bool
	BlockID    string

	Clock    clock.Clock
	Keys     race.KeySource     // driving keys, ebiten's keyboard when nil
	Logger   *zap.Logger
	Notifier *host.Broadcaster // completion signal, none when nil
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = clock.Real{}
	}
	if o.Keys == nil {
		o.Keys = input.NewKeyboard(nil)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.TrackWidth == 0 {
		o.TrackWidth = models.DefaultTrackWidth
	}
	if o.BlockID == "" {
		o.BlockID = host.DefaultBlockID
	}
	if o.Seed == 0 {
		o.Seed = o.Clock.Now().UnixNano()
	}
	return o
}

// Game implements the ebiten.Game interface and manages the overall game state
type Game struct {
	opts          Options
	currentScreen Screen
	designer      *DesignerScreen
	announced     <-chan struct{}
}

// NewGame creates a new game instance and announces completion to the
// host straight away, before any screen has seen input.
func NewGame(opts Options) *Game {
	g := &Game{opts: opts.withDefaults()}
	g.announced = g.announce()

	if g.opts.SkipTitle {
		g.openDesigner()
	} else {
		g.currentScreen = ui.NewTitleScreen(g.opts.Title, g.opts.Clock, g.openDesigner)
	}
	return g
}

func (g *Game) announce() <-chan struct{} {
	if g.opts.Notifier == nil {
		done := make(chan struct{})
		close(done)
		return done
	}
	return g.opts.Notifier.Announce(host.NewCompletion(g.opts.BlockID))
}

// Announced is closed once the completion signal has been delivered.
func (g *Game) Announced() <-chan struct{} {
	return g.announced
}

func (g *Game) openDesigner() {
	if g.designer == nil {
		g.designer = NewDesignerScreen(g.opts)
		g.opts.Logger.Debug("designer opened")
	}
	g.currentScreen = g.designer
}

// Designer returns the designer view-state, or nil before the designer
// has been opened.
func (g *Game) Designer() *models.Designer {
	if g.designer == nil {
		return nil
	}
	return g.designer.Designer()
}

// Update handles game logic updates
func (g *Game) Update() error {
	if g.currentScreen != nil {
		return g.currentScreen.Update()
	}
	return nil
}

// Draw renders the current screen
func (g *Game) Draw(screen *ebiten.Image) {
	if g.currentScreen != nil {
		g.currentScreen.Draw(screen)
	}
}

// Layout returns the game's logical screen dimensions
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return ScreenWidth, ScreenHeight
}

// Close unmounts the designer, if open, and waits for the completion
// signal until ctx is done.
func (g *Game) Close(ctx context.Context) {
	if g.designer != nil {
		g.designer.Close()
	}

	select {
	case <-g.announced:
	case <-ctx.Done():
		g.opts.Logger.Warn("completion signal still pending at exit")
	}
}
