package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/starshot/internal/config"
	"github.com/plus3/starshot/internal/game"
)

var (
	playerHull   = color.RGBA{90, 180, 255, 255}
	playerCanopy = color.RGBA{220, 240, 255, 255}
	playerEngine = color.RGBA{255, 140, 40, 255}
	enemyHull    = color.RGBA{200, 70, 160, 255}
	enemyDome    = color.RGBA{120, 255, 170, 255}
	enemyLights  = color.RGBA{255, 235, 120, 255}
	tileEdge     = color.RGBA{110, 135, 160, 255}
)

type spriteKey struct {
	kind game.SpriteKind
	w, h int
}

// Atlas generates sprite images on first use, one per kind and size. Sizes
// vary for the same kind because horizontal missiles are drawn sideways.
type Atlas struct {
	images map[spriteKey]*ebiten.Image
}

func NewAtlas() *Atlas {
	return &Atlas{images: make(map[spriteKey]*ebiten.Image)}
}

// Image returns the unscaled image for a sprite of the given kind and size.
func (a *Atlas) Image(kind game.SpriteKind, size game.SpriteSize) *ebiten.Image {
	key := spriteKey{kind: kind, w: max(int(size.W), 1), h: max(int(size.H), 1)}
	if img, ok := a.images[key]; ok {
		return img
	}

	img := ebiten.NewImage(key.w, key.h)
	paintSprite(img, key)
	a.images[key] = img
	return img
}

// Len reports how many images have been generated.
func (a *Atlas) Len() int {
	return len(a.images)
}

func paintSprite(img *ebiten.Image, key spriteKey) {
	w, h := float32(key.w), float32(key.h)

	switch key.kind {
	case game.KindPlayer:
		// Faces right; the render system mirrors it when facing left.
		vector.DrawFilledRect(img, 0, h*0.55, w*0.15, h*0.25, playerEngine, false)
		vector.DrawFilledRect(img, w*0.1, h*0.35, w*0.65, h*0.45, playerHull, false)
		vector.DrawFilledRect(img, w*0.2, h*0.1, w*0.25, h*0.3, playerHull, false)
		vector.DrawFilledRect(img, w*0.2, h*0.75, w*0.25, h*0.2, playerHull, false)
		vector.DrawFilledCircle(img, w*0.75, h*0.57, h*0.22, playerHull, false)
		vector.DrawFilledCircle(img, w*0.55, h*0.5, h*0.12, playerCanopy, false)

	case game.KindEnemy:
		vector.DrawFilledCircle(img, w/2, h*0.4, w*0.22, enemyDome, false)
		vector.DrawFilledRect(img, 0, h*0.45, w, h*0.3, enemyHull, false)
		vector.DrawFilledRect(img, w*0.15, h*0.75, w*0.7, h*0.15, enemyHull, false)
		for i := range 4 {
			vector.DrawFilledCircle(img, w*(0.2+0.2*float32(i)), h*0.6, h*0.05, enemyLights, false)
		}

	case game.KindPlayerMissile:
		img.Fill(config.MissileColor)

	case game.KindEnemyMissile:
		img.Fill(config.EnemyShotColor)

	case game.KindTile:
		img.Fill(config.FloorColor)
		vector.StrokeRect(img, 0, 0, w, h, 1, tileEdge, false)

	default:
		img.Fill(color.White)
	}
}
