package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftleaf/config"
	"github.com/pthm-cable/driftleaf/game"
	"github.com/pthm-cable/driftleaf/renderer"
	"github.com/pthm-cable/driftleaf/ui"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, steered by the autopilot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	debug := flag.Bool("debug", false, "Enable debug keys and the tuning panel")
	autopilot := flag.Bool("autopilot", false, "Let the autopilot steer in windowed mode")
	logPerf := flag.Bool("log-perf", false, "Log per-phase tick timings")
	riverPNG := flag.String("river-field", "", "PNG river field to use instead of the generated one")

	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	opts := game.Options{
		Seed:      rngSeed,
		OutputDir: *outputDir,
		Debug:     *debug,
		LogPerf:   *logPerf,
		RiverPNG:  *riverPNG,
	}

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := g.Close(); err != nil {
			slog.Error("closing game", "error", err)
		}
	}()

	if *headless {
		runHeadless(g, cfg, rngSeed, *maxTicks)
		return
	}
	runWindow(g, cfg, *debug, *autopilot, *maxTicks)
}

func runHeadless(g *game.Game, cfg *config.Config, seed int64, maxTicks int) {
	pilot := game.NewAutopilot(cfg.Autopilot)
	slog.Info("starting headless run", "seed", seed, "max_ticks", maxTicks)

	for maxTicks <= 0 || g.Tick() < maxTicks {
		if err := g.Update(pilot.Input(g)); err != nil {
			slog.Error("update failed", "tick", g.Tick(), "error", err)
			return
		}
	}
	slog.Info("max ticks reached", "tick", g.Tick())
}

func runWindow(g *game.Game, cfg *config.Config, debug, useAutopilot bool, maxTicks int) {
	scale := int32(max(cfg.Screen.Scale, 1))
	rl.InitWindow(int32(cfg.Screen.Width)*scale, int32(cfg.Screen.Height)*scale, "A Leaf on The Water")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	scene := renderer.NewSceneRenderer(cfg.Screen.Width, cfg.Screen.Height)
	defer scene.Unload()
	hud := ui.NewHUD(cfg.Screen.Width, cfg.Screen.Height)
	panel := ui.NewDebugPanel(8, 8, 300)
	var flags ui.DebugFlags

	camera := rl.Camera2D{Zoom: float32(scale)}
	var pilot *game.Autopilot
	if useAutopilot {
		pilot = game.NewAutopilot(cfg.Autopilot)
	}

	for !rl.WindowShouldClose() {
		if debug && rl.IsKeyPressed(rl.KeyF1) {
			panel.Toggle()
		}

		in := readInput(debug)
		if pilot != nil {
			auto := pilot.Input(g)
			auto.Advance = in.Advance
			in = auto
		}
		if err := g.Update(in); err != nil {
			slog.Error("update failed", "tick", g.Tick(), "error", err)
			return
		}
		g.RecordFrame()

		scene.ShowField = flags.ShowField
		scene.ShowBodies = flags.ShowBodies

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		rl.BeginMode2D(camera)
		scene.DrawScene(g)
		hud.Draw(g)
		rl.EndMode2D()
		panel.Draw(g, &flags, g.PerfStats())
		rl.EndDrawing()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			break
		}
	}
}

// readInput maps the keyboard onto game input.
func readInput(debug bool) game.Input {
	return game.Input{
		Left:    rl.IsKeyDown(rl.KeyLeft),
		Right:   rl.IsKeyDown(rl.KeyRight),
		Next:    rl.IsKeyPressed(rl.KeyEnter),
		Advance: debug && rl.IsKeyPressed(rl.KeyUp),
	}
}
