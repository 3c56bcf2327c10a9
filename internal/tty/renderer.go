package tty

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/plus3/starshot/ecs"
	"github.com/plus3/starshot/internal/game"
	"github.com/plus3/starshot/internal/geom"
)

// hudRows are reserved at the top of the terminal for the status line.
const hudRows = 1

var (
	styleBase      = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	stylePlayer    = styleBase.Foreground(tcell.ColorAqua).Bold(true)
	styleEnemy     = styleBase.Foreground(tcell.ColorFuchsia)
	styleMissile   = styleBase.Foreground(tcell.ColorYellow)
	styleEnemyShot = styleBase.Foreground(tcell.ColorRed)
	styleExplosion = styleBase.Foreground(tcell.ColorOrange)
	styleTile      = styleBase.Foreground(tcell.ColorSlateGray)
	styleHUD       = styleBase.Reverse(true)
)

// cellOf maps a world position onto the playfield rows below the HUD.
func cellOf(win game.WinSize, cols, rows int, p geom.Vec2) (x, y int, ok bool) {
	field := rows - hudRows
	if cols <= 0 || field <= 0 {
		return 0, 0, false
	}
	sx := (p.X + win.W/2) / win.W
	sy := (win.H/2 - p.Y) / win.H
	if sx < 0 || sx >= 1 || sy < 0 || sy >= 1 {
		return 0, 0, false
	}
	return int(sx * float32(cols)), hudRows + int(sy*float32(field)), true
}

func glyphFor(kind game.SpriteKind, facing game.Direction) (rune, tcell.Style) {
	switch kind {
	case game.KindPlayer:
		switch facing {
		case game.DirLeft:
			return '<', stylePlayer
		case game.DirUp:
			return '^', stylePlayer
		case game.DirDown:
			return 'v', stylePlayer
		}
		return '>', stylePlayer
	case game.KindEnemy:
		return 'W', styleEnemy
	case game.KindPlayerMissile:
		if facing.Horizontal() {
			return '-', styleMissile
		}
		return '|', styleMissile
	case game.KindEnemyMissile:
		return '~', styleEnemyShot
	case game.KindExplosion:
		return '*', styleExplosion
	case game.KindTile:
		return '=', styleTile
	}
	return '?', styleBase
}

// putString writes s from column x, advancing by each rune's display width.
func putString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func hudText(g *game.Game) string {
	lives := strings.Repeat("♥", max(g.Lives, 0))
	return fmt.Sprintf(" SCORE %06d  LEVEL %d  %s ", g.Score, g.Level, lives)
}

// RenderSystem draws the world as one glyph per entity.
type RenderSystem struct {
	Screen tcell.Screen

	Win  ecs.Singleton[game.WinSize]
	Game ecs.Singleton[game.Game]

	Sprites ecs.Query[struct {
		*game.Transform
		*game.Sprite
		Projectile *game.Projectile `ecs:"optional"`
	}]
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	win := *s.Win.Get()
	g := s.Game.Get()
	cols, rows := s.Screen.Size()

	s.Screen.Fill(' ', styleBase)

	// Tiles first so ships on the floor row stay visible.
	for _, tiles := range []bool{true, false} {
		for sprite := range s.Sprites.Values() {
			if (sprite.Kind == game.KindTile) != tiles {
				continue
			}
			x, y, ok := cellOf(win, cols, rows, sprite.Translation)
			if !ok {
				continue
			}
			facing := g.Direction
			if sprite.Projectile != nil {
				facing = sprite.Projectile.Direction
			}
			r, style := glyphFor(sprite.Kind, facing)
			s.Screen.SetContent(x, y, r, nil, style)
		}
	}

	hud := hudText(g)
	putString(s.Screen, 0, 0, hud, styleHUD)
	if g.GameOver {
		banner := fmt.Sprintf(" GAME OVER  score %d  press ENTER ", g.Score)
		x := max((cols-runewidth.StringWidth(banner))/2, 0)
		putString(s.Screen, x, rows/2, banner, styleHUD)
	}
}
