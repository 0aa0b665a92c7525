package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/driftleaf/assets"
	"github.com/pthm-cable/driftleaf/components"
	"github.com/pthm-cable/driftleaf/config"
	"github.com/pthm-cable/driftleaf/systems"
	"github.com/pthm-cable/driftleaf/telemetry"
)

// Play is the river scene. The leaf alternates between calm sections and
// rapids full of rocks; every rapids section that is cleared scores a point.
type Play struct {
	cfg     *config.Config
	session *Session
	rng     *rand.Rand
	perf    *telemetry.PerfCollector

	world      *ecs.World
	leafMapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Acceleration,
		components.Body,
		components.Leaf,
	]
	rockMapper *ecs.Map3[components.Position, components.Body, components.Rock]
	rockFilter *ecs.Filter3[components.Position, components.Body, components.Rock]
	posMap     *ecs.Map1[components.Position]
	velMap     *ecs.Map1[components.Velocity]
	accMap     *ecs.Map1[components.Acceleration]
	bodyMap    *ecs.Map1[components.Body]
	leaf       ecs.Entity

	rasters    systems.RasterSource
	field      *systems.VectorField
	rockField  *systems.FieldRaster
	painter    *systems.ParticlePainter
	countdown  systems.Countdown
	leafPaint  color.RGBA
	rockBuffer []ecs.Entity

	phase            Phase
	rapidsCleared    int
	rapidsVelocity   float64
	flowAcceleration float64
	steerAccel       float64
	steering         float64
	over             bool
	err              error
	events           []Event

	// Debug enables the Advance input.
	Debug bool
}

// NewPlay builds the scene and generates the first river section. Runs
// after the first scored one start straight in the rapids.
func NewPlay(cfg *config.Config, cache *assets.Cache, session *Session, rng *rand.Rand) (*Play, error) {
	rockField, err := cache.Raster(assets.VFRock)
	if err != nil {
		return nil, fmt.Errorf("creating play scene: %w", err)
	}
	background, err := cache.Image(assets.GameBackground)
	if err != nil {
		return nil, fmt.Errorf("creating play scene: %w", err)
	}

	world := ecs.NewWorld()
	p := &Play{
		cfg:     cfg,
		session: session,
		rng:     rng,
		world:   world,
		leafMapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Acceleration,
			components.Body,
			components.Leaf,
		](world),
		rockMapper: ecs.NewMap3[components.Position, components.Body, components.Rock](world),
		rockFilter: ecs.NewFilter3[components.Position, components.Body, components.Rock](world),
		posMap:     ecs.NewMap1[components.Position](world),
		velMap:     ecs.NewMap1[components.Velocity](world),
		accMap:     ecs.NewMap1[components.Acceleration](world),
		bodyMap:    ecs.NewMap1[components.Body](world),

		rasters:          cache,
		field:            systems.NewVectorField(cfg.Screen.Width, cfg.Screen.Height),
		rockField:        rockField,
		painter:          systems.NewParticlePainter(systems.PainterConfigFrom(cfg), rng),
		leafPaint:        systems.ParseHexColor(cfg.Player.PaintColor, color.RGBA{R: 149, G: 182, B: 234, A: 255}),
		rapidsVelocity:   cfg.Player.RapidsVelocityBase - cfg.Player.RapidsVelocityIncrease,
		flowAcceleration: cfg.Water.FlowAcceleration,
		steerAccel:       cfg.Derived.SteerAccel,
	}
	p.painter.SetBaseImage(background)

	r := cfg.Player.Radius
	pos := components.Position{X: cfg.Derived.Width / 2, Y: cfg.Derived.Height * 0.85}
	vel := components.Velocity{}
	acc := components.Acceleration{}
	body := components.Body{Radius: r, HalfW: r, HalfH: r}
	p.leaf = p.leafMapper.NewEntity(&pos, &vel, &acc, &body, &components.Leaf{})

	if session.Played() {
		err = p.newRapids()
	} else {
		err = p.newCalm()
	}
	if err != nil {
		return nil, fmt.Errorf("creating play scene: %w", err)
	}
	return p, nil
}

// SetPerf attaches a collector that times the tick phases.
func (p *Play) SetPerf(perf *telemetry.PerfCollector) {
	p.perf = perf
}

// Update advances the scene by one tick and returns what happened.
// Once the run is over further calls do nothing. If a new river section
// cannot be built the run stops and Err reports why.
func (p *Play) Update(dt time.Duration, in Input) []Event {
	p.events = p.events[:0]
	if p.over {
		return nil
	}
	secs := dt.Seconds()

	p.startPhase(telemetry.PhaseCountdown)
	p.countdown.Update(dt)

	leafPos := p.posMap.Get(p.leaf)
	leafBody := p.bodyMap.Get(p.leaf)
	height := 2 * leafBody.HalfH

	// Off the top: the section is done.
	if leafPos.Y < -height/2 || (p.Debug && in.Advance) {
		var err error
		switch p.phase {
		case PhaseCalm:
			err = p.newRapids()
		case PhaseRapids:
			p.rapidsCleared++
			err = p.newCalm()
		}
		if err != nil {
			p.over = true
			p.err = err
			return nil
		}
		leafPos = p.posMap.Get(p.leaf)
	}

	if leafPos.X > p.cfg.Derived.Width || leafPos.X < 0 {
		p.endRun(EndOffSide)
		return p.events
	}

	if in.Next && p.countdown.Running() && p.phase == PhaseRapids {
		p.countdown.Skip()
	}

	p.steering = in.Steering(p.steerAccel)
	env := p.environment()

	p.startPhase(telemetry.PhasePainter)
	p.painter.Update(dt, env.Rule())
	p.painter.PaintCircle(leafPos.X, leafPos.Y, leafBody.HalfW, p.leafPaint)

	p.startPhase(telemetry.PhaseLeaf)
	p.integrateLeaf(env, secs)

	if p.countdown.Running() && p.phase == PhaseRapids {
		p.pinLeaf()
	}

	p.startPhase(telemetry.PhaseCollision)
	if p.LeafHitsRock() {
		p.endRun(EndRock)
	}
	return p.events
}

func (p *Play) environment() systems.Environment {
	return systems.Environment{
		Field:            p.field,
		FlowAcceleration: p.flowAcceleration,
		Steering:         p.steering,
	}
}

func (p *Play) integrateLeaf(env systems.Environment, secs float64) {
	pos := p.posMap.Get(p.leaf)
	vel := p.velMap.Get(p.leaf)
	acc := p.accMap.Get(p.leaf)

	k := systems.Kinematic{
		Pos: r2.Vec{X: pos.X, Y: pos.Y},
		Vel: r2.Vec{X: vel.X, Y: vel.Y},
	}
	systems.Integrate(&k, env, p.cfg.Player.MaxVelocity, secs)

	pos.X, pos.Y = k.Pos.X, k.Pos.Y
	vel.X, vel.Y = k.Vel.X, k.Vel.Y
	acc.X, acc.Y = k.Acc.X, k.Acc.Y
}

// pinLeaf holds the leaf just under the bottom edge while the rapids
// countdown runs.
func (p *Play) pinLeaf() {
	pos := p.posMap.Get(p.leaf)
	body := p.bodyMap.Get(p.leaf)
	pos.X = p.cfg.Derived.Width / 2
	pos.Y = p.cfg.Derived.Height + body.HalfH
}

// ResetWater returns the river to its neutral state: the field holds only
// the river current, there are no rocks and the canvas is blank.
func (p *Play) ResetWater() error {
	p.field.Reset(p.cfg.Water.MaxAcceleration)
	if err := p.field.AddAsset(p.rasters, assets.VFRiver, 0, 0); err != nil {
		return err
	}

	p.removeRocks()

	p.painter.ClearParticles()
	p.painter.ClearBitmap()
	p.painter.ResetEmitter()
	return nil
}

func (p *Play) newRapids() error {
	p.rapidsVelocity += p.cfg.Player.RapidsVelocityIncrease
	p.phase = PhaseRapids
	if err := p.ResetWater(); err != nil {
		return fmt.Errorf("new rapids: %w", err)
	}

	pos := p.posMap.Get(p.leaf)
	vel := p.velMap.Get(p.leaf)
	body := p.bodyMap.Get(p.leaf)
	pos.X = p.cfg.Derived.Width / 2
	pos.Y = p.cfg.Derived.Height + 3*body.HalfH
	*vel = components.Velocity{}

	for _, rock := range systems.RockLayout(p.cfg.Rocks, p.rng) {
		p.createRock(rock.X*p.cfg.Derived.Width, rock.Y*p.cfg.Derived.Height)
	}

	em := p.painter.Emitter()
	area := em.Area()
	area.Height = 1
	em.SetArea(area)
	em.SetOn(true)

	wait := max(p.cfg.Rapids.StartSeconds-p.rapidsCleared, 0)
	p.countdown.Start(time.Duration(wait)*time.Second, p.launch)

	slog.Info("rapids",
		"rapids_cleared", p.rapidsCleared,
		"rapids_velocity", p.rapidsVelocity,
		"countdown_s", wait,
	)
	p.emit(Event{Kind: EventPhaseChanged, Phase: PhaseRapids, RapidsCleared: p.rapidsCleared})
	return nil
}

// launch ends the rapids countdown: the water slows and the leaf is pushed
// upstream into the rocks.
func (p *Play) launch() {
	em := p.painter.Emitter()
	em.SetFrequency(time.Duration(float64(em.DefaultFrequency()) * p.cfg.Particles.SlowFactor))

	vel := p.velMap.Get(p.leaf)
	vel.Y = -p.rapidsVelocity
	p.emit(Event{Kind: EventRapidsLaunched, Phase: PhaseRapids, RapidsCleared: p.rapidsCleared})
}

func (p *Play) newCalm() error {
	p.phase = PhaseCalm
	p.countdown.Stop()
	if err := p.ResetWater(); err != nil {
		return fmt.Errorf("new calm: %w", err)
	}

	em := p.painter.Emitter()
	area := em.Area()
	area.Height = p.cfg.Derived.Height
	em.SetArea(area)

	pos := p.posMap.Get(p.leaf)
	pos.Y = p.cfg.Derived.Height

	slog.Info("calm", "rapids_cleared", p.rapidsCleared)
	p.emit(Event{Kind: EventPhaseChanged, Phase: PhaseCalm, RapidsCleared: p.rapidsCleared})
	return nil
}

// createRock places a rock of a random variant centred on (x, y) and adds
// its deflection field to the river.
func (p *Play) createRock(x, y float64) ecs.Entity {
	variant := p.rng.Intn(len(p.cfg.Rocks.Variants)) + 1
	ext := p.cfg.Rocks.Variants[variant-1]

	pos := components.Position{X: x, Y: y}
	body := components.Body{HalfW: float64(ext[0]), HalfH: float64(ext[1])}
	rock := components.Rock{Variant: variant}
	e := p.rockMapper.NewEntity(&pos, &body, &rock)

	p.field.AddCentered(p.rockField, x, y)
	return e
}

func (p *Play) removeRocks() {
	p.rockBuffer = p.rockBuffer[:0]
	query := p.rockFilter.Query()
	for query.Next() {
		p.rockBuffer = append(p.rockBuffer, query.Entity())
	}
	for _, e := range p.rockBuffer {
		p.world.RemoveEntity(e)
	}
}

// LeafHitsRock reports whether the leaf's circle overlaps any rock.
func (p *Play) LeafHitsRock() bool {
	pos := p.posMap.Get(p.leaf)
	body := p.bodyMap.Get(p.leaf)

	hit := false
	query := p.rockFilter.Query()
	for query.Next() {
		rpos, rbody, _ := query.Get()
		if systems.CircleIntersectsBox(pos.X, pos.Y, body.Radius, rpos.X, rpos.Y, rbody.HalfW, rbody.HalfH) {
			hit = true
			query.Close()
			break
		}
	}
	return hit
}

func (p *Play) endRun(reason EndReason) {
	p.over = true
	p.countdown.Stop()
	newHigh := p.session.EndRun(p.rapidsCleared)

	slog.Info("run over",
		"reason", reason.String(),
		"rapids_cleared", p.rapidsCleared,
		"high_score", p.session.HighScore,
		"new_high_score", newHigh,
	)
	p.emit(Event{
		Kind:          EventRunOver,
		Phase:         p.phase,
		RapidsCleared: p.rapidsCleared,
		Reason:        reason,
		NewHighScore:  newHigh,
	})
}

func (p *Play) emit(e Event) {
	p.events = append(p.events, e)
}

func (p *Play) startPhase(name string) {
	if p.perf != nil {
		p.perf.StartPhase(name)
	}
}

// Leaf returns the leaf's current kinematic state.
func (p *Play) Leaf() systems.Kinematic {
	pos := p.posMap.Get(p.leaf)
	vel := p.velMap.Get(p.leaf)
	acc := p.accMap.Get(p.leaf)
	return systems.Kinematic{
		Pos: r2.Vec{X: pos.X, Y: pos.Y},
		Vel: r2.Vec{X: vel.X, Y: vel.Y},
		Acc: r2.Vec{X: acc.X, Y: acc.Y},
	}
}

// LeafRadius returns the collision and trail radius of the leaf.
func (p *Play) LeafRadius() float64 {
	return p.bodyMap.Get(p.leaf).Radius
}

// SetLeaf moves the leaf, keeping its velocity.
func (p *Play) SetLeaf(x, y float64) {
	pos := p.posMap.Get(p.leaf)
	pos.X, pos.Y = x, y
}

// RockView is a read-only copy of a rock for rendering and steering.
type RockView struct {
	X, Y         float64
	HalfW, HalfH float64
	Variant      int
}

// Rocks appends the current rocks to dst.
func (p *Play) Rocks(dst []RockView) []RockView {
	query := p.rockFilter.Query()
	for query.Next() {
		pos, body, rock := query.Get()
		dst = append(dst, RockView{X: pos.X, Y: pos.Y, HalfW: body.HalfW, HalfH: body.HalfH, Variant: rock.Variant})
	}
	return dst
}

// Countdown reports the whole seconds left before the rapids launch, rounded
// to nearest, and whether the countdown is running.
func (p *Play) Countdown() (int, bool) {
	if !p.countdown.Running() || p.phase != PhaseRapids {
		return 0, false
	}
	return int(math.Round(p.countdown.Remaining().Seconds())), true
}

// Phase returns the current river section type.
func (p *Play) Phase() Phase { return p.phase }

// RapidsCleared is the current run's score.
func (p *Play) RapidsCleared() int { return p.rapidsCleared }

// RapidsVelocity is the launch speed of the current or next rapids.
func (p *Play) RapidsVelocity() float64 { return p.rapidsVelocity }

// Over reports whether the run has ended.
func (p *Play) Over() bool { return p.over }

// Err returns the error that stopped the scene, if any.
func (p *Play) Err() error { return p.err }

// Painter exposes the particle painter for rendering.
func (p *Play) Painter() *systems.ParticlePainter { return p.painter }

// Field exposes the vector field for the debug overlay.
func (p *Play) Field() *systems.VectorField { return p.field }

// FlowAcceleration returns the constant upstream push.
func (p *Play) FlowAcceleration() float64 { return p.flowAcceleration }

// SetFlowAcceleration tunes the upstream push at runtime.
func (p *Play) SetFlowAcceleration(v float64) { p.flowAcceleration = v }

// SteerAcceleration returns the lateral acceleration applied by the keys.
func (p *Play) SteerAcceleration() float64 { return p.steerAccel }

// SetSteerAcceleration tunes steering at runtime.
func (p *Play) SetSteerAcceleration(v float64) { p.steerAccel = v }
