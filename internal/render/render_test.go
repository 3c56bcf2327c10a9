package render

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/starshot/internal/config"
	"github.com/plus3/starshot/internal/game"
	"github.com/plus3/starshot/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldToScreen(t *testing.T) {
	win := game.WinSize{W: 1280, H: 720}

	x, y := worldToScreen(win, geom.Vec2{})
	assert.Equal(t, float32(640), x)
	assert.Equal(t, float32(360), y)

	x, y = worldToScreen(win, geom.Vec2{X: -640, Y: 360})
	assert.Zero(t, x)
	assert.Zero(t, y, "top-left corner")

	_, y = worldToScreen(win, geom.Vec2{Y: config.FloorY})
	assert.Equal(t, float32(710), y, "floor sits near the bottom edge")
}

func keys(held ...ebiten.Key) KeyFunc {
	return func(k ebiten.Key) bool {
		for _, h := range held {
			if h == k {
				return true
			}
		}
		return false
	}
}

func TestReadInput(t *testing.T) {
	assert.Equal(t, game.InputState{}, readInput(keys()))

	assert.Equal(t,
		game.InputState{Left: true, Up: true, Fire: true},
		readInput(keys(ebiten.KeyA, ebiten.KeyArrowUp, ebiten.KeySpace)),
	)
	assert.Equal(t,
		game.InputState{Right: true, Down: true, Restart: true},
		readInput(keys(ebiten.KeyD, ebiten.KeyS, ebiten.KeyEnter)),
	)
	assert.True(t, readInput(keys(ebiten.KeyR)).Restart)
	assert.False(t, readInput(keys(ebiten.KeyEscape)).Fire)
}

func TestStatusLine(t *testing.T) {
	g := &game.Game{Score: 1200, Level: 3, Lives: 2}
	assert.Equal(t, "SCORE 001200   LEVEL 3   LIVES 2", statusLine(g))
}

func TestBannerLines(t *testing.T) {
	assert.Empty(t, bannerLines(&game.Game{Lives: 1}))

	lines := bannerLines(&game.Game{GameOver: true, Score: 700, Kills: 7})
	require.Len(t, lines, 3)
	assert.Equal(t, "GAME OVER", lines[0])
	assert.Contains(t, lines[1], "700")
	assert.Contains(t, lines[1], "7 kills")
}

func TestExplosionShape(t *testing.T) {
	r0, a0 := explosionShape(config.ExplosionDuration)
	r1, a1 := explosionShape(config.ExplosionDuration / 2)
	r2, a2 := explosionShape(0)

	assert.InDelta(t, 1, a0, 1e-6)
	assert.Zero(t, a2)
	assert.Less(t, r0, r1)
	assert.Less(t, r1, r2)
	assert.Greater(t, a0, a1)
	assert.InDelta(t, config.ExplosionSize/2, r2, 1e-4)

	r, a := explosionShape(-1)
	assert.Equal(t, r2, r, "overshoot is clamped")
	assert.Equal(t, a2, a)
}

func TestScoreHistoryOrdered(t *testing.T) {
	h := newScoreHistory(3)
	assert.Equal(t, []float32{0, 0, 0}, h.Ordered())

	for _, s := range []int{1, 2, 3, 4} {
		h.Record(s)
	}
	assert.Equal(t, []float32{2, 3, 4}, h.Ordered())
}
