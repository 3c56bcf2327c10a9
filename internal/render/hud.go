package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/plus3/starshot/internal/config"
	"github.com/plus3/starshot/internal/game"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const hudMargin = 12

// HUD draws the score line and, once the run is over, the restart banner.
type HUD struct {
	Face font.Face
}

func NewHUD() *HUD {
	return &HUD{Face: basicfont.Face7x13}
}

// statusLine is the top-left summary of the run.
func statusLine(g *game.Game) string {
	return fmt.Sprintf("SCORE %06d   LEVEL %d   LIVES %d", g.Score, g.Level, g.Lives)
}

// bannerLines are shown centred on screen after the last life is lost.
func bannerLines(g *game.Game) []string {
	if !g.GameOver {
		return nil
	}
	return []string{
		"GAME OVER",
		fmt.Sprintf("final score %d, %d kills", g.Score, g.Kills),
		"press ENTER to play again",
	}
}

func (h *HUD) Draw(screen *ebiten.Image, win game.WinSize, g *game.Game) {
	ascent := h.Face.Metrics().Ascent.Ceil()
	text.Draw(screen, statusLine(g), h.Face, hudMargin, hudMargin+ascent, config.HUDColor)

	lines := bannerLines(g)
	lineHeight := h.Face.Metrics().Height.Ceil() + 6
	top := int(win.H)/2 - len(lines)*lineHeight/2
	for i, line := range lines {
		bounds := text.BoundString(h.Face, line)
		x := (int(win.W) - bounds.Dx()) / 2
		text.Draw(screen, line, h.Face, x, top+i*lineHeight+ascent, config.HUDColor)
	}
}
