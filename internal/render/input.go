package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/starshot/internal/game"
)

// KeyFunc reports whether a key is held this frame.
type KeyFunc func(ebiten.Key) bool

var (
	leftKeys    = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	rightKeys   = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	upKeys      = []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}
	downKeys    = []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}
	fireKeys    = []ebiten.Key{ebiten.KeySpace}
	restartKeys = []ebiten.Key{ebiten.KeyEnter, ebiten.KeyR}
)

func anyPressed(pressed KeyFunc, keys []ebiten.Key) bool {
	for _, k := range keys {
		if pressed(k) {
			return true
		}
	}
	return false
}

// readInput samples the keyboard into a fresh input state.
func readInput(pressed KeyFunc) game.InputState {
	return game.InputState{
		Left:    anyPressed(pressed, leftKeys),
		Right:   anyPressed(pressed, rightKeys),
		Up:      anyPressed(pressed, upKeys),
		Down:    anyPressed(pressed, downKeys),
		Fire:    anyPressed(pressed, fireKeys),
		Restart: anyPressed(pressed, restartKeys),
	}
}
