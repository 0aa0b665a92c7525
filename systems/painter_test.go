package systems

import (
	"image/color"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func testPainterConfig() PainterConfig {
	return PainterConfig{
		Width:       100,
		Height:      200,
		Background:  white,
		MarkRadius:  5,
		MaxVelocity: 200,
		Emitter: EmitterConfig{
			PoolSize:  10,
			Lifespan:  10 * time.Second,
			Frequency: 200 * time.Millisecond,
			Quantity:  1,
			Area:      Rect{X: 50, Y: 100, Width: 100, Height: 1},
			SpeedX:    Range{Min: -20, Max: 20},
			SpeedY:    Range{Min: -200, Max: 0},
			Palette: Palette{
				Hue:        Range{Min: 170, Max: 245},
				Saturation: Range{Min: 0.15, Max: 0.35},
				Lightness:  Range{Min: 0.75, Max: 0.98},
			},
		},
	}
}

func stillRule(k *Kinematic) r2.Vec { return r2.Vec{} }

func TestParticleLifetimeEndsOnFiftiethUpdate(t *testing.T) {
	cfg := testPainterConfig()
	cfg.Emitter.SpeedX = Range{}
	cfg.Emitter.SpeedY = Range{}
	p := NewParticlePainter(cfg, rand.New(rand.NewSource(1)))
	p.Emitter().SetOn(false)
	require.Equal(t, 1, p.Emitter().Emit(1))

	pt := &p.Emitter().Particles()[0]
	step := 200 * time.Millisecond
	prevLife := pt.Life
	for i := 1; i <= 49; i++ {
		p.Update(step, stillRule)
		require.True(t, pt.Alive, "update %d", i)
		require.Less(t, pt.Life, prevLife, "lifetime must strictly decrease")
		prevLife = pt.Life
	}

	p.Update(step, stillRule)
	assert.False(t, pt.Alive, "dead on update 50")

	// Dead particles are not integrated further
	pt.Vel = r2.Vec{X: 100}
	pos := pt.Pos
	p.Update(step, func(k *Kinematic) r2.Vec { return r2.Vec{X: 1000} })
	assert.Equal(t, pos, pt.Pos)
	assert.False(t, pt.Alive)
}

func TestParticlePainterStampsAndMarksDirty(t *testing.T) {
	cfg := testPainterConfig()
	cfg.Emitter.SpeedX = Range{}
	cfg.Emitter.SpeedY = Range{}
	cfg.Emitter.Area = Rect{X: 40, Y: 60, Width: 0, Height: 0}
	p := NewParticlePainter(cfg, rand.New(rand.NewSource(2)))
	p.Emitter().SetOn(false)
	p.Emitter().Emit(1)
	p.Canvas().MarkClean()

	p.Update(16*time.Millisecond, stillRule)

	assert.True(t, p.Canvas().Dirty())
	pt := p.Emitter().Particles()[0]
	got := p.Canvas().Image().RGBAAt(40, 60)
	assert.Equal(t, pt.Color, got)
	assert.Equal(t, white, p.Canvas().Image().RGBAAt(90, 190))
}

func TestParticlePainterNotDirtyWhenEmpty(t *testing.T) {
	p := NewParticlePainter(testPainterConfig(), rand.New(rand.NewSource(3)))
	p.Emitter().SetOn(false)
	p.Canvas().MarkClean()

	p.Update(16*time.Millisecond, stillRule)
	assert.False(t, p.Canvas().Dirty())
}

func TestParticlePainterAppliesRule(t *testing.T) {
	cfg := testPainterConfig()
	cfg.Emitter.SpeedX = Range{}
	cfg.Emitter.SpeedY = Range{}
	p := NewParticlePainter(cfg, rand.New(rand.NewSource(4)))
	p.Emitter().SetOn(false)
	p.Emitter().Emit(1)

	for i := 0; i < 600; i++ {
		p.Update(16*time.Millisecond, func(k *Kinematic) r2.Vec { return r2.Vec{X: 0, Y: -1000} })
	}
	pt := p.Emitter().Particles()[0]
	assert.InDelta(t, 200, r2.Norm(pt.Vel), 1e-9, "speed capped at painter max velocity")
	assert.Equal(t, r2.Vec{X: 0, Y: -1000}, pt.Acc)
}

func TestEmitterFlowRate(t *testing.T) {
	cfg := testPainterConfig().Emitter
	e := NewEmitter(cfg, rand.New(rand.NewSource(5)))

	e.Tick(16 * time.Millisecond)
	assert.Equal(t, 1, e.AliveCount(), "first burst is immediate")

	for i := 0; i < 10; i++ {
		e.Tick(100 * time.Millisecond)
	}
	assert.Equal(t, 6, e.AliveCount(), "one burst per 200ms")

	e.SetFrequency(e.DefaultFrequency() * 5)
	for i := 0; i < 10; i++ {
		e.Tick(100 * time.Millisecond)
	}
	assert.Equal(t, 7, e.AliveCount())
}

func TestEmitterPoolExhaustionSkips(t *testing.T) {
	cfg := testPainterConfig().Emitter
	cfg.PoolSize = 3
	e := NewEmitter(cfg, rand.New(rand.NewSource(6)))

	assert.Equal(t, 3, e.Emit(5))
	assert.Equal(t, 0, e.Emit(1))
	assert.Len(t, e.Particles(), 3, "pool never grows")
}

func TestEmitterSpawnWithinArea(t *testing.T) {
	cfg := testPainterConfig().Emitter
	cfg.PoolSize = 200
	cfg.Area = Rect{X: 50, Y: 100, Width: 20, Height: 40}
	e := NewEmitter(cfg, rand.New(rand.NewSource(7)))
	e.Emit(200)

	for _, p := range e.Particles() {
		require.True(t, p.Alive)
		assert.GreaterOrEqual(t, p.Pos.X, 40.0)
		assert.LessOrEqual(t, p.Pos.X, 60.0)
		assert.GreaterOrEqual(t, p.Pos.Y, 80.0)
		assert.LessOrEqual(t, p.Pos.Y, 120.0)
		assert.GreaterOrEqual(t, p.Vel.Y, -200.0)
		assert.LessOrEqual(t, p.Vel.Y, 0.0)
		assert.Equal(t, uint8(255), p.Color.A)
		assert.Equal(t, 10*time.Second, p.Life)
	}
}

func TestClearParticlesAndResetEmitter(t *testing.T) {
	p := NewParticlePainter(testPainterConfig(), rand.New(rand.NewSource(8)))
	p.Emitter().Emit(5)
	p.Emitter().SetFrequency(time.Second)

	p.ClearParticles()
	assert.Equal(t, 0, p.Emitter().AliveCount())

	p.Emitter().SetOn(false)
	p.ResetEmitter()
	assert.True(t, p.Emitter().On())
	assert.Equal(t, 200*time.Millisecond, p.Emitter().Frequency())
}

func TestPaintCircleAndClearBitmap(t *testing.T) {
	p := NewParticlePainter(testPainterConfig(), rand.New(rand.NewSource(9)))
	p.Canvas().MarkClean()
	blue := color.RGBA{R: 0x95, G: 0xb6, B: 0xea, A: 255}

	p.PaintCircle(20, 20, 4, blue)
	assert.True(t, p.Canvas().Dirty())
	assert.Equal(t, blue, p.Canvas().Image().RGBAAt(20, 20))

	p.ClearBitmap()
	assert.Equal(t, white, p.Canvas().Image().RGBAAt(20, 20))
}
