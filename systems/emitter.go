package systems

import (
	"image/color"
	"math/rand"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/spatial/r2"
)

// Particle is a short-lived water droplet owned by an Emitter pool.
type Particle struct {
	Kinematic
	Life  time.Duration // Remaining lifetime
	Color color.RGBA    // Fixed at spawn
	Alive bool
}

// Range is a closed float interval sampled uniformly.
type Range struct {
	Min, Max float64
}

func (r Range) sample(rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Rect is a spawn area given by its centre and size.
type Rect struct {
	X, Y          float64 // Centre
	Width, Height float64
}

// Palette describes the HSL box particle colours are drawn from.
type Palette struct {
	Hue        Range // Degrees
	Saturation Range // 0-1
	Lightness  Range // 0-1
}

// EmitterConfig holds the parameters of an Emitter.
type EmitterConfig struct {
	PoolSize  int
	Lifespan  time.Duration
	Frequency time.Duration // Interval between bursts
	Quantity  int           // Particles per burst
	Area      Rect
	SpeedX    Range
	SpeedY    Range
	Palette   Palette
}

// Emitter owns a fixed particle pool and spawns into it at a steady flow.
// Particles are recycled, never reallocated.
type Emitter struct {
	pool       []Particle
	cfg        EmitterConfig
	defaultFrq time.Duration
	frequency  time.Duration
	acc        time.Duration
	on         bool
	rng        *rand.Rand
}

// NewEmitter creates an emitter with every particle dead. The emitter starts
// on and emits its first burst on the first Tick.
func NewEmitter(cfg EmitterConfig, rng *rand.Rand) *Emitter {
	if cfg.Quantity < 1 {
		cfg.Quantity = 1
	}
	e := &Emitter{
		pool:       make([]Particle, cfg.PoolSize),
		cfg:        cfg,
		defaultFrq: cfg.Frequency,
		rng:        rng,
	}
	e.Reset()
	return e
}

// Reset restores the default frequency and turns the flow on.
func (e *Emitter) Reset() {
	e.frequency = e.defaultFrq
	e.SetOn(true)
}

// SetOn starts or stops the flow. Starting primes an immediate burst.
func (e *Emitter) SetOn(on bool) {
	if on && !e.on {
		e.acc = e.frequency
	}
	e.on = on
}

// On reports whether the flow is running.
func (e *Emitter) On() bool {
	return e.on
}

// SetFrequency changes the interval between bursts.
func (e *Emitter) SetFrequency(d time.Duration) {
	e.frequency = d
}

// Frequency returns the current interval between bursts.
func (e *Emitter) Frequency() time.Duration {
	return e.frequency
}

// DefaultFrequency returns the configured interval between bursts.
func (e *Emitter) DefaultFrequency() time.Duration {
	return e.defaultFrq
}

// SetArea moves or resizes the spawn rectangle.
func (e *Emitter) SetArea(r Rect) {
	e.cfg.Area = r
}

// Area returns the spawn rectangle.
func (e *Emitter) Area() Rect {
	return e.cfg.Area
}

// SetSpeed changes the spawn velocity ranges.
func (e *Emitter) SetSpeed(x, y Range) {
	e.cfg.SpeedX = x
	e.cfg.SpeedY = y
}

// Tick advances the flow by dt and emits any bursts that fell due.
func (e *Emitter) Tick(dt time.Duration) {
	if !e.on {
		return
	}
	if e.frequency <= 0 {
		e.Emit(e.cfg.Quantity)
		return
	}
	e.acc += dt
	for e.acc >= e.frequency {
		e.acc -= e.frequency
		e.Emit(e.cfg.Quantity)
	}
}

// Emit spawns up to n particles into dead pool slots and returns how many
// were spawned. A full pool is not an error; spawns are skipped.
func (e *Emitter) Emit(n int) int {
	spawned := 0
	for i := range e.pool {
		if spawned == n {
			break
		}
		p := &e.pool[i]
		if p.Alive {
			continue
		}
		e.spawn(p)
		spawned++
	}
	return spawned
}

func (e *Emitter) spawn(p *Particle) {
	a := e.cfg.Area
	*p = Particle{
		Kinematic: Kinematic{
			Pos: r2.Vec{
				X: a.X - a.Width/2 + e.rng.Float64()*a.Width,
				Y: a.Y - a.Height/2 + e.rng.Float64()*a.Height,
			},
			Vel: r2.Vec{X: e.cfg.SpeedX.sample(e.rng), Y: e.cfg.SpeedY.sample(e.rng)},
		},
		Life:  e.cfg.Lifespan,
		Color: e.randomColor(),
		Alive: true,
	}
}

func (e *Emitter) randomColor() color.RGBA {
	pal := e.cfg.Palette
	c := colorful.Hsl(pal.Hue.sample(e.rng), pal.Saturation.sample(e.rng), pal.Lightness.sample(e.rng))
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// KillAll marks every particle dead without respawning.
func (e *Emitter) KillAll() {
	for i := range e.pool {
		e.pool[i].Alive = false
	}
}

// Particles returns the pool. Dead entries must be skipped.
func (e *Emitter) Particles() []Particle {
	return e.pool
}

// AliveCount returns the number of live particles.
func (e *Emitter) AliveCount() int {
	n := 0
	for i := range e.pool {
		if e.pool[i].Alive {
			n++
		}
	}
	return n
}
