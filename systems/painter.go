package systems

import (
	"image"
	"image/color"
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/driftleaf/config"
)

// ParticlePainter owns the ambient water particles and the background canvas
// they paint onto. Each Update moves every live particle and stamps it.
type ParticlePainter struct {
	canvas      *Canvas
	emitter     *Emitter
	markRadius  float64
	maxVelocity float64
}

// PainterConfig holds the parameters of a ParticlePainter.
type PainterConfig struct {
	Width, Height int
	Background    color.RGBA
	MarkRadius    float64
	MaxVelocity   float64 // <= 0 disables the speed cap
	Emitter       EmitterConfig
}

// PainterConfigFrom builds the play-scene painter settings: particles rise
// from the bottom edge across the full width.
func PainterConfigFrom(cfg *config.Config) PainterConfig {
	p := cfg.Particles
	w, h := cfg.Derived.Width, cfg.Derived.Height
	maxV := cfg.Player.MaxVelocity

	return PainterConfig{
		Width:       cfg.Screen.Width,
		Height:      cfg.Screen.Height,
		Background:  ParseHexColor(p.Background, color.RGBA{R: 255, G: 255, B: 255, A: 255}),
		MarkRadius:  p.Size,
		MaxVelocity: maxV,
		Emitter: EmitterConfig{
			PoolSize:  p.PoolSize,
			Lifespan:  cfg.Derived.Lifespan,
			Frequency: cfg.Derived.Frequency,
			Quantity:  p.Quantity,
			Area:      Rect{X: w / 2, Y: h, Width: w, Height: 1},
			SpeedX:    Range{Min: -maxV * p.SpeedXFactor, Max: maxV * p.SpeedXFactor},
			SpeedY:    Range{Min: -maxV, Max: 0},
			Palette: Palette{
				Hue:        Range{Min: p.Hue[0], Max: p.Hue[1]},
				Saturation: Range{Min: p.Saturation[0], Max: p.Saturation[1]},
				Lightness:  Range{Min: p.Lightness[0], Max: p.Lightness[1]},
			},
		},
	}
}

// NewParticlePainter allocates the canvas and the particle pool.
func NewParticlePainter(cfg PainterConfig, rng *rand.Rand) *ParticlePainter {
	return &ParticlePainter{
		canvas:      NewCanvas(cfg.Width, cfg.Height, cfg.Background),
		emitter:     NewEmitter(cfg.Emitter, rng),
		markRadius:  cfg.MarkRadius,
		maxVelocity: cfg.MaxVelocity,
	}
}

// Update runs the emitter flow, then for every live particle applies rule,
// integrates one tick, counts down its lifetime and stamps it on the canvas.
// A particle whose lifetime runs out is killed and not stamped.
func (p *ParticlePainter) Update(dt time.Duration, rule AccelerationRule) {
	p.emitter.Tick(dt)

	secs := dt.Seconds()
	anyAlive := false
	pool := p.emitter.Particles()
	for i := range pool {
		pt := &pool[i]
		if !pt.Alive {
			continue
		}

		if rule != nil {
			pt.Acc = rule(&pt.Kinematic)
		}
		Step(&pt.Kinematic, p.maxVelocity, secs)

		pt.Life -= dt
		if pt.Life <= 0 {
			pt.Alive = false
			continue
		}

		anyAlive = true
		p.canvas.FillCircle(pt.Pos.X, pt.Pos.Y, p.markRadius, pt.Color)
	}

	if anyAlive {
		p.canvas.MarkDirty()
	}
}

// PaintCircle stamps an arbitrary circle, used for the leaf trail.
func (p *ParticlePainter) PaintCircle(x, y, r float64, c color.RGBA) {
	p.canvas.FillCircle(x, y, r, c)
	p.canvas.MarkDirty()
}

// ClearBitmap discards all paint, leaving the base fill and image.
func (p *ParticlePainter) ClearBitmap() {
	p.canvas.Clear()
}

// SetBaseImage sets the image drawn by ClearBitmap and clears.
func (p *ParticlePainter) SetBaseImage(img image.Image) {
	p.canvas.SetBase(img)
	p.canvas.Clear()
}

// ClearParticles kills every particle immediately.
func (p *ParticlePainter) ClearParticles() {
	p.emitter.KillAll()
}

// ResetEmitter restores the default flow rate and re-enables spawning.
func (p *ParticlePainter) ResetEmitter() {
	p.emitter.Reset()
}

// SetMaxVelocity changes the particle speed cap; <= 0 disables it.
func (p *ParticlePainter) SetMaxVelocity(v float64) {
	p.maxVelocity = v
}

// Emitter exposes the emitter for scene-specific tuning.
func (p *ParticlePainter) Emitter() *Emitter {
	return p.emitter
}

// Canvas returns the background canvas.
func (p *ParticlePainter) Canvas() *Canvas {
	return p.canvas
}

// ParseHexColor parses "#rrggbb", returning fallback on error.
func ParseHexColor(s string, fallback color.RGBA) color.RGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		return fallback
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
