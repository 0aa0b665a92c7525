package ui

import (
	"fmt"

	"github.com/pthm-cable/driftleaf/game"
)

// HUD draws the in-world text: the title screen and the rapids countdown.
// Coordinates are in viewport pixels.
type HUD struct {
	Theme         Theme
	width, height int32
}

// NewHUD creates a HUD for a viewport of the given size.
func NewHUD(width, height int) *HUD {
	return &HUD{Theme: DefaultTheme(), width: int32(width), height: int32(height)}
}

// Draw renders the HUD for the active scene.
func (h *HUD) Draw(g *game.Game) {
	switch g.Scene() {
	case game.SceneMenu:
		h.drawMenu(g.Menu())
	case game.ScenePlay:
		h.drawPlay(g.Play())
	}
}

func (h *HUD) drawMenu(m *game.Menu) {
	// The text goes away as soon as the leaf starts to fall.
	if m.Falling() {
		return
	}
	t := h.Theme
	drawCentered("A Leaf on The Water", h.width, h.height/10, t.TitleSize, t.Title)

	y := h.height / 2
	y = drawCentered("Press enter to start", h.width, y, t.TextSize, t.Text)
	y = drawCentered("Arrow keys to avoid rocks", h.width, y, t.SmallSize, t.Muted)
	drawCentered(fmt.Sprintf("Most rapids survived: %d", m.HighScore()), h.width, y, t.SmallSize, t.Muted)
}

func (h *HUD) drawPlay(p *game.Play) {
	secs, waiting := p.Countdown()
	if !waiting {
		return
	}
	t := h.Theme
	y := h.height * 3 / 4
	y = drawCentered("Approaching rapids", h.width, y, t.TextSize, t.Text)
	drawCentered(fmt.Sprint(secs), h.width, y, t.CountSize, t.Text)
}
