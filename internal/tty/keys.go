package tty

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/starshot/internal/game"
)

// Terminals report key presses and auto-repeat but never releases, so a key
// counts as held until holdDecay passes without another event for it.
const holdDecay = 150 * time.Millisecond

type action uint8

const (
	actionNone action = iota
	actionLeft
	actionRight
	actionUp
	actionDown
	actionFire
	actionRestart
	actionQuit
)

func keyToAction(ev *tcell.EventKey) action {
	switch ev.Key() {
	case tcell.KeyLeft:
		return actionLeft
	case tcell.KeyRight:
		return actionRight
	case tcell.KeyUp:
		return actionUp
	case tcell.KeyDown:
		return actionDown
	case tcell.KeyEnter:
		return actionRestart
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	}
	switch ev.Rune() {
	case 'a', 'A', 'h':
		return actionLeft
	case 'd', 'D', 'l':
		return actionRight
	case 'w', 'W', 'k':
		return actionUp
	case 's', 'S', 'j':
		return actionDown
	case ' ':
		return actionFire
	case 'r', 'R':
		return actionRestart
	case 'q', 'Q':
		return actionQuit
	}
	return actionNone
}

// keyState remembers when each action was last pressed.
type keyState struct {
	pressed map[action]time.Time
}

func newKeyState() *keyState {
	return &keyState{pressed: make(map[action]time.Time)}
}

func (k *keyState) press(a action, now time.Time) {
	if a == actionNone || a == actionQuit {
		return
	}
	k.pressed[a] = now
}

func (k *keyState) held(a action, now time.Time) bool {
	at, ok := k.pressed[a]
	return ok && now.Sub(at) < holdDecay
}

// input reports the actions still held at now.
func (k *keyState) input(now time.Time) game.InputState {
	return game.InputState{
		Left:    k.held(actionLeft, now),
		Right:   k.held(actionRight, now),
		Up:      k.held(actionUp, now),
		Down:    k.held(actionDown, now),
		Fire:    k.held(actionFire, now),
		Restart: k.held(actionRestart, now),
	}
}
