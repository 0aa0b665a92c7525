package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftleaf/game"
)

// SceneRenderer draws whichever scene the game is in.
type SceneRenderer struct {
	canvas  *CanvasRenderer
	trail   *CanvasRenderer
	overlay *FieldOverlay
	rocks   []game.RockView

	ShowField  bool
	ShowBodies bool
}

// NewSceneRenderer creates textures sized to the viewport.
func NewSceneRenderer(width, height int) *SceneRenderer {
	return &SceneRenderer{
		canvas:  NewCanvasRenderer(width, height),
		trail:   NewCanvasRenderer(width, height),
		overlay: NewFieldOverlay(width, height, 24),
	}
}

// DrawScene renders the active scene in viewport coordinates.
func (s *SceneRenderer) DrawScene(g *game.Game) {
	switch g.Scene() {
	case game.SceneMenu:
		s.drawMenu(g.Menu())
	case game.ScenePlay:
		s.drawPlay(g.Play())
	}
}

func (s *SceneRenderer) drawMenu(m *game.Menu) {
	s.canvas.Sync(m.Painter().Canvas())
	s.canvas.Draw()
	s.trail.Sync(m.Trail())
	s.trail.Draw()

	leaf := m.Leaf()
	DrawLeaf(leaf.Pos.X, leaf.Pos.Y, m.LeafRadius(), leaf.Vel.X, leaf.Vel.Y)
}

func (s *SceneRenderer) drawPlay(p *game.Play) {
	s.canvas.Sync(p.Painter().Canvas())
	s.canvas.Draw()

	if s.ShowField {
		s.overlay.Draw(p.Field())
	}

	s.rocks = p.Rocks(s.rocks[:0])
	for _, r := range s.rocks {
		DrawRock(r)
	}

	leaf := p.Leaf()
	DrawLeaf(leaf.Pos.X, leaf.Pos.Y, p.LeafRadius(), leaf.Vel.X, leaf.Vel.Y)

	if s.ShowBodies {
		rl.DrawCircleLines(int32(leaf.Pos.X), int32(leaf.Pos.Y), float32(p.LeafRadius()), rl.Red)
		for _, r := range s.rocks {
			rl.DrawRectangleLines(int32(r.X-r.HalfW), int32(r.Y-r.HalfH), int32(2*r.HalfW), int32(2*r.HalfH), rl.Red)
		}
	}
}

// Unload frees GPU resources.
func (s *SceneRenderer) Unload() {
	s.canvas.Unload()
	s.trail.Unload()
	s.overlay.Unload()
}
