package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/driftleaf/assets"
	"github.com/pthm-cable/driftleaf/config"
	"github.com/pthm-cable/driftleaf/systems"
)

// Menu is the title scene. Water particles drift in from the right edge.
// The first Enter drops the title leaf onto the water, where it floats off
// to the left and starts play; a second Enter skips the animation.
type Menu struct {
	cfg     *config.Config
	session *Session
	painter *systems.ParticlePainter
	trail   *systems.Canvas

	leaf       systems.Kinematic
	leafRadius float64
	leafPaint  color.RGBA

	falling bool
	dropped bool
	done    bool
	events  []Event
}

// NewMenu builds the title scene.
func NewMenu(cfg *config.Config, cache *assets.Cache, session *Session, rng *rand.Rand) (*Menu, error) {
	background, err := cache.Image(assets.MenuBackground)
	if err != nil {
		return nil, fmt.Errorf("creating menu scene: %w", err)
	}

	w, h := cfg.Derived.Width, cfg.Derived.Height
	maxV := cfg.Player.MaxVelocity

	pc := systems.PainterConfigFrom(cfg)
	pc.MaxVelocity = 0
	painter := systems.NewParticlePainter(pc, rng)
	painter.SetBaseImage(background)

	em := painter.Emitter()
	em.SetArea(systems.Rect{X: w, Y: h * cfg.Menu.EmitterY, Width: 1, Height: h * cfg.Menu.EmitterHeight})
	em.SetSpeed(
		systems.Range{Min: -maxV, Max: 0},
		systems.Range{Min: -maxV / 15, Max: maxV / 10},
	)
	painter.ClearParticles()

	r := cfg.Player.Radius
	m := &Menu{
		cfg:        cfg,
		session:    session,
		painter:    painter,
		trail:      systems.NewCanvas(cfg.Screen.Width, cfg.Screen.Height, color.RGBA{}),
		leaf:       systems.Kinematic{Pos: r2.Vec{X: w / 2, Y: -r}},
		leafRadius: r,
		leafPaint:  systems.ParseHexColor(cfg.Player.PaintColor, color.RGBA{R: 149, G: 182, B: 234, A: 255}),
	}
	return m, nil
}

// Update advances the title animation by one tick.
func (m *Menu) Update(dt time.Duration, in Input) []Event {
	m.events = m.events[:0]
	if m.done {
		return nil
	}
	cfg := m.cfg.Menu

	if m.leaf.Pos.Y > m.cfg.Derived.Height*cfg.WaterLine {
		m.leaf.Acc = r2.Vec{X: -cfg.LeafGravity}
		if !m.dropped {
			m.dropped = true
			m.leaf.Vel = r2.Vec{X: -cfg.LeafDropSpeed}
			m.events = append(m.events, Event{Kind: EventLeafDropped})
		}
	}

	if m.leaf.Pos.X < 0 {
		m.start()
		return m.events
	}

	m.trail.FillCircle(m.leaf.Pos.X, m.leaf.Pos.Y, m.leafRadius, m.leafPaint)
	m.trail.MarkDirty()

	drift := r2.Vec{X: cfg.DriftAcceleration}
	m.painter.Update(dt, func(*systems.Kinematic) r2.Vec { return drift })

	if in.Next {
		if !m.falling {
			m.falling = true
			m.leaf.Acc.Y = cfg.LeafGravity
			m.leaf.Vel.Y = cfg.LeafInitialSpeed
			slog.Info("menu leaf falling")
		} else {
			m.start()
			return m.events
		}
	}

	systems.Step(&m.leaf, 0, dt.Seconds())
	return m.events
}

func (m *Menu) start() {
	m.done = true
	m.events = append(m.events, Event{Kind: EventStart})
}

// Done reports whether the menu has handed over to play.
func (m *Menu) Done() bool { return m.done }

// Falling reports whether the title leaf has been released.
func (m *Menu) Falling() bool { return m.falling }

// Leaf returns the title leaf's state.
func (m *Menu) Leaf() systems.Kinematic { return m.leaf }

// LeafRadius returns the title leaf's radius.
func (m *Menu) LeafRadius() float64 { return m.leafRadius }

// Painter exposes the ambient particle painter.
func (m *Menu) Painter() *systems.ParticlePainter { return m.painter }

// Trail is the transparent layer the title leaf paints onto.
func (m *Menu) Trail() *systems.Canvas { return m.trail }

// HighScore is shown on the title screen.
func (m *Menu) HighScore() int { return m.session.HighScore }
