// Package render draws the simulation with Ebiten and feeds keyboard input
// back into it.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/starshot/ecs"
	"github.com/plus3/starshot/internal/config"
	"github.com/plus3/starshot/internal/game"
	"github.com/plus3/starshot/internal/geom"
)

// Screen is the image the current Draw call renders into.
type Screen struct {
	*ebiten.Image
}

// worldToScreen maps centre-origin, y-up world coordinates to pixels.
func worldToScreen(win game.WinSize, p geom.Vec2) (float32, float32) {
	return p.X + win.W/2, win.H/2 - p.Y
}

// RenderSystem draws every sprite, the explosions and the HUD.
type RenderSystem struct {
	Screen ecs.Singleton[Screen]
	Win    ecs.Singleton[game.WinSize]
	Game   ecs.Singleton[game.Game]

	Sprites ecs.Query[struct {
		*game.Transform
		*game.SpriteSize
		*game.Sprite
		Player *game.Player `ecs:"optional"`
	}]
	Explosions ecs.Query[struct {
		*game.Transform
		*game.Explosion
	}]

	Atlas *Atlas
	HUD   *HUD
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{
		Atlas: NewAtlas(),
		HUD:   NewHUD(),
	}
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get().Image
	if screen == nil {
		return
	}
	win := *s.Win.Get()
	g := s.Game.Get()

	screen.Fill(config.BackgroundColor)

	// Floor tiles go underneath everything else.
	for _, tiles := range []bool{true, false} {
		for sprite := range s.Sprites.Values() {
			if sprite.Kind == game.KindExplosion || (sprite.Kind == game.KindTile) != tiles {
				continue
			}
			img := s.Atlas.Image(sprite.Kind, *sprite.SpriteSize)
			flip := sprite.Player != nil && g.Direction == game.DirLeft
			drawCentered(screen, img, win, sprite.Transform, flip)
		}
	}

	for e := range s.Explosions.Values() {
		drawExplosion(screen, win, e.Transform, e.Explosion)
	}

	s.HUD.Draw(screen, win, g)
}

func drawCentered(screen, img *ebiten.Image, win game.WinSize, t *game.Transform, flip bool) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	x, y := worldToScreen(win, t.Translation)
	scale := float64(t.Scale)
	if scale == 0 {
		scale = 1
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	if flip {
		op.GeoM.Scale(-1, 1)
	}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(img, op)
}

// explosionShape returns the radius and opacity of an explosion with the
// given time left. It starts small and opaque and ends full size and clear.
func explosionShape(remaining float64) (radius float32, alpha float32) {
	left := float32(min(max(remaining/config.ExplosionDuration, 0), 1))
	radius = config.ExplosionSize / 2 * (0.3 + 0.7*(1-left))
	return radius, left
}

func drawExplosion(screen *ebiten.Image, win game.WinSize, t *game.Transform, e *game.Explosion) {
	x, y := worldToScreen(win, t.Translation)
	radius, alpha := explosionShape(e.Remaining)
	a := uint8(255 * alpha)

	outer := color.RGBA{R: a, G: uint8(float32(a) * 0.45), B: 0, A: a}
	inner := color.RGBA{R: a, G: uint8(float32(a) * 0.9), B: uint8(float32(a) * 0.6), A: a}
	vector.DrawFilledCircle(screen, x, y, radius, outer, true)
	vector.DrawFilledCircle(screen, x, y, radius*0.5, inner, true)
}
