package ui

import (
	"fmt"
	"log/slog"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftleaf/game"
	"github.com/pthm-cable/driftleaf/telemetry"
)

// DebugFlags are the overlay toggles exposed by the debug panel.
type DebugFlags struct {
	ShowField  bool
	ShowBodies bool
}

// DebugPanel is a raygui panel for tuning the river while playing.
// It is drawn in window coordinates.
type DebugPanel struct {
	Theme   Theme
	x, y, w int32
	visible bool
}

// NewDebugPanel creates a hidden panel anchored at (x, y).
func NewDebugPanel(x, y, width int32) *DebugPanel {
	return &DebugPanel{Theme: DefaultTheme(), x: x, y: y, w: width}
}

// Toggle flips visibility and returns the new state.
func (d *DebugPanel) Toggle() bool {
	d.visible = !d.visible
	return d.visible
}

// Visible reports whether the panel is shown.
func (d *DebugPanel) Visible() bool { return d.visible }

// Draw renders the panel and applies slider changes to the play scene.
func (d *DebugPanel) Draw(g *game.Game, flags *DebugFlags, perf telemetry.PerfStats) {
	if !d.visible {
		return
	}
	t := d.Theme
	const rows = 9
	d.Theme.drawPanel(d.x, d.y, d.w, t.Padding*2+rows*(t.LineHeight+4))

	x := float32(d.x + t.Padding)
	y := float32(d.y + t.Padding)
	sliderW := float32(d.w - 2*t.Padding - t.LabelWidth - 40)
	line := float32(t.LineHeight + 4)

	label := func(text string) {
		rl.DrawText(text, int32(x), int32(y), t.SmallSize-4, t.Label)
	}

	label(fmt.Sprintf("tick %d  fps %d  tick %dus", g.Tick(), int(perf.FPS), perf.AvgTickDuration.Microseconds()))
	y += line

	s := g.Session()
	label(fmt.Sprintf("runs %d  best %d  last %d", s.Runs, s.HighScore, s.LastScore))
	y += line

	if p := g.Play(); p != nil {
		label(fmt.Sprintf("%s  cleared %d  launch %.0f", p.Phase(), p.RapidsCleared(), p.RapidsVelocity()))
		y += line

		leaf := p.Leaf()
		label(fmt.Sprintf("leaf %.0f,%.0f  v %.0f,%.0f", leaf.Pos.X, leaf.Pos.Y, leaf.Vel.X, leaf.Vel.Y))
		y += line

		flow := gui.SliderBar(
			rl.Rectangle{X: x + float32(t.LabelWidth), Y: y, Width: sliderW, Height: t.SliderHeight},
			"flow", fmt.Sprintf("%.0f", p.FlowAcceleration()),
			float32(p.FlowAcceleration()), 0, 60,
		)
		if flow != float32(p.FlowAcceleration()) {
			p.SetFlowAcceleration(float64(flow))
		}
		y += line

		steer := gui.SliderBar(
			rl.Rectangle{X: x + float32(t.LabelWidth), Y: y, Width: sliderW, Height: t.SliderHeight},
			"steer", fmt.Sprintf("%.0f", p.SteerAcceleration()),
			float32(p.SteerAcceleration()), 0, 150,
		)
		if steer != float32(p.SteerAcceleration()) {
			p.SetSteerAcceleration(float64(steer))
		}
		y += line

		if gui.Button(rl.Rectangle{X: x, Y: y, Width: 120, Height: t.SliderHeight + 2}, "Reset water") {
			if err := p.ResetWater(); err != nil {
				slog.Error("resetting water", "error", err)
			}
		}
		y += line
	}

	flags.ShowField = gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 14, Height: 14}, "Vector field", flags.ShowField)
	y += line
	flags.ShowBodies = gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 14, Height: 14}, "Bodies", flags.ShowBodies)
}
