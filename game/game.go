package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/driftleaf/assets"
	"github.com/pthm-cable/driftleaf/config"
	"github.com/pthm-cable/driftleaf/telemetry"
)

// Scene identifies the active scene.
type Scene int

const (
	SceneMenu Scene = iota
	ScenePlay
)

// Options configures a Game.
type Options struct {
	Seed      int64
	OutputDir string // Empty disables CSV output
	Debug     bool
	LogPerf   bool
	RiverPNG  string // Authored river field; empty uses the generated one
}

// Game drives the scenes one tick at a time and records finished runs.
// It owns no window; rendering and input belong to the caller.
type Game struct {
	cfg     *config.Config
	opts    Options
	cache   *assets.Cache
	session *Session
	rng     *rand.Rand

	scene Scene
	menu  *Menu
	play  *Play

	tick     int
	runStart int

	perf   *telemetry.PerfCollector
	output *telemetry.OutputManager
	stats  *telemetry.SessionStats
}

// NewGame builds the asset cache and opens the menu.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		cfg:     cfg,
		opts:    opts,
		cache:   assets.NewCache(cfg),
		session: &Session{},
		rng:     rand.New(rand.NewSource(opts.Seed)),
		perf:    telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output:  output,
		stats:   telemetry.NewSessionStats(),
	}
	if opts.RiverPNG != "" {
		if err := g.cache.LoadRasterFile(assets.VFRiver, opts.RiverPNG); err != nil {
			output.Close()
			return nil, err
		}
	}
	if err := g.cache.Preload(); err != nil {
		output.Close()
		return nil, err
	}
	if err := g.toMenu(); err != nil {
		output.Close()
		return nil, err
	}
	return g, nil
}

// Update runs one fixed tick of the active scene.
func (g *Game) Update(in Input) error {
	dt := g.cfg.Derived.TickDuration
	g.perf.StartTick()

	var err error
	switch g.scene {
	case SceneMenu:
		g.perf.StartPhase(telemetry.PhaseMenu)
		for _, ev := range g.menu.Update(dt, in) {
			if err = g.handle(ev); err != nil {
				break
			}
		}
	case ScenePlay:
		p := g.play
		for _, ev := range p.Update(dt, in) {
			if err = g.handle(ev); err != nil {
				break
			}
		}
		if err == nil && p.Err() != nil {
			err = fmt.Errorf("play scene: %w", p.Err())
		}
	}

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.tick++
	if g.tick%g.cfg.Derived.LogEveryNTicks == 0 {
		g.flushPerf()
	}
	g.perf.EndTick()
	return err
}

func (g *Game) handle(ev Event) error {
	switch ev.Kind {
	case EventStart:
		return g.toPlay()
	case EventRunOver:
		g.recordRun(ev)
		return g.toMenu()
	case EventLeafDropped:
		slog.Debug("leaf dropped")
	case EventRapidsLaunched:
		slog.Debug("rapids launched", "rapids_cleared", ev.RapidsCleared)
	}
	return nil
}

func (g *Game) toMenu() error {
	m, err := NewMenu(g.cfg, g.cache, g.session, g.rng)
	if err != nil {
		return err
	}
	g.menu, g.play = m, nil
	g.scene = SceneMenu
	return nil
}

func (g *Game) toPlay() error {
	p, err := NewPlay(g.cfg, g.cache, g.session, g.rng)
	if err != nil {
		return err
	}
	p.Debug = g.opts.Debug
	p.SetPerf(g.perf)

	g.play, g.menu = p, nil
	g.scene = ScenePlay
	g.runStart = g.tick
	slog.Info("run start", "run", g.session.Runs+1, "phase", p.Phase().String())
	return nil
}

func (g *Game) recordRun(ev Event) {
	rec := telemetry.RunRecord{
		Run:           g.session.Runs,
		Seed:          g.opts.Seed,
		StartTick:     g.runStart,
		EndTick:       g.tick,
		DurationSec:   float64(g.tick-g.runStart) * g.cfg.Physics.DT,
		RapidsCleared: ev.RapidsCleared,
		Reason:        ev.Reason.String(),
		HighScore:     g.session.HighScore,
		NewHighScore:  ev.NewHighScore,
	}
	g.stats.Add(rec)
	slog.Info("run recorded", "record", rec)
	if err := g.output.WriteRun(rec); err != nil {
		slog.Error("failed to write run", "error", err)
	}
}

func (g *Game) flushPerf() {
	stats := g.perf.Stats()
	if g.opts.LogPerf {
		stats.LogStats()
	}
	if err := g.output.WritePerf(stats, g.tick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// RecordFrame feeds frame timing to the perf collector in windowed mode.
func (g *Game) RecordFrame() {
	g.perf.RecordFrame()
}

// Close logs the session summary and closes the output files.
func (g *Game) Close() error {
	slog.Info("session", "summary", g.stats.Summary())
	return g.output.Close()
}

// Scene returns the active scene.
func (g *Game) Scene() Scene { return g.scene }

// Menu returns the menu scene, or nil while playing.
func (g *Game) Menu() *Menu { return g.menu }

// Play returns the play scene, or nil on the menu.
func (g *Game) Play() *Play { return g.play }

// Session returns the cross-run state.
func (g *Game) Session() *Session { return g.session }

// Stats returns the finished-run accumulator.
func (g *Game) Stats() *telemetry.SessionStats { return g.stats }

// Tick returns the number of ticks run so far.
func (g *Game) Tick() int { return g.tick }

// Config returns the configuration the game was built with.
func (g *Game) Config() *config.Config { return g.cfg }

// PerfStats aggregates the current perf window.
func (g *Game) PerfStats() telemetry.PerfStats { return g.perf.Stats() }
