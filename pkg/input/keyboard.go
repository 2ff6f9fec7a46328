package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/golangdaddy/circuit/pkg/models"
)

// Key repeat timing in ticks at 60 TPS: first repeat after 500ms, then
// every 50ms.
const (
	RepeatDelay    = 30
	RepeatInterval = 3
)

// KeyEvent is a press (or repeat) or release of a driving key
type KeyEvent struct {
	Key      models.Key
	Released bool
}

// KeyState reports the per-frame state of physical keys.
type KeyState interface {
	// PressDuration returns how many ticks k has been held, 0 when up.
	PressDuration(k ebiten.Key) int
	// JustReleased reports whether k was released this tick.
	JustReleased(k ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) PressDuration(k ebiten.Key) int { return inpututil.KeyPressDuration(k) }
func (ebitenKeys) JustReleased(k ebiten.Key) bool { return inpututil.IsKeyJustReleased(k) }

var bindings = []struct {
	physical ebiten.Key
	key      models.Key
}{
	{ebiten.KeyArrowUp, models.KeyUp},
	{ebiten.KeyArrowDown, models.KeyDown},
	{ebiten.KeyArrowLeft, models.KeyLeft},
	{ebiten.KeyArrowRight, models.KeyRight},
}

// Keyboard turns held arrow keys into press, repeat and release events.
type Keyboard struct {
	state KeyState
}

// NewKeyboard creates a keyboard reader. A nil state reads ebiten's input.
func NewKeyboard(state KeyState) *Keyboard {
	if state == nil {
		state = ebitenKeys{}
	}
	return &Keyboard{state: state}
}

// Poll returns this tick's key events in binding order.
func (kb *Keyboard) Poll() []KeyEvent {
	var events []KeyEvent
	for _, b := range bindings {
		if repeating(kb.state.PressDuration(b.physical)) {
			events = append(events, KeyEvent{Key: b.key})
		}
		if kb.state.JustReleased(b.physical) {
			events = append(events, KeyEvent{Key: b.key, Released: true})
		}
	}
	return events
}

// repeating reports whether a key held for d ticks fires this tick.
func repeating(d int) bool {
	if d == 1 {
		return true
	}
	return d >= RepeatDelay && (d-RepeatDelay)%RepeatInterval == 0
}
