// Field preview tool: interactive view of the river and rock fields with
// sliders for the procedural asset parameters. Click to drop a rock,
// press C to clear them, press S to save the river as an authored PNG
// that the game loads with -river-field.
//
// Usage: go run ./cmd/fieldpreview [-config path] [-out river.png]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/driftleaf/assets"
	"github.com/pthm-cable/driftleaf/config"
	"github.com/pthm-cable/driftleaf/renderer"
	"github.com/pthm-cable/driftleaf/systems"
)

const panelWidth = 320

type slider struct {
	label    string
	min, max float32
	value    *float64
	format   string
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "river.png", "Where S saves the river field")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	w, h := cfg.Screen.Width, cfg.Screen.Height

	rl.InitWindow(int32(w+panelWidth), int32(h), "Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	overlay := renderer.NewFieldOverlay(w, h, 16)
	defer overlay.Unload()

	seed := float64(cfg.Assets.Seed)
	radius := float64(cfg.Rocks.FieldRadius)
	sliders := []slider{
		{"Bank width", 0, 0.4, &cfg.Assets.RiverBankWidth, "%.2f"},
		{"Turbulence", 0, 1, &cfg.Assets.RiverTurbulence, "%.2f"},
		{"Noise scale", 0.001, 0.1, &cfg.Assets.RiverNoiseScale, "%.3f"},
		{"Seed", 0, 100, &seed, "%.0f"},
		{"Max acceleration", 10, 200, &cfg.Water.MaxAcceleration, "%.0f"},
		{"Rock radius", 8, 96, &radius, "%.0f"},
		{"Rock strength", 0, 1, &cfg.Rocks.FieldStrength, "%.2f"},
	}

	field := systems.NewVectorField(w, h)
	var rocks []rl.Vector2
	needsRegen := true

	for !rl.WindowShouldClose() {
		mouse := rl.GetMousePosition()
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && int(mouse.X) < w {
			rocks = append(rocks, mouse)
			needsRegen = true
		}
		if rl.IsKeyPressed(rl.KeyC) {
			rocks = rocks[:0]
			needsRegen = true
		}
		if rl.IsKeyPressed(rl.KeyS) {
			if err := assets.NewCache(cfg).SaveRasterFile(assets.VFRiver, *outPath); err != nil {
				slog.Error("saving river field", "error", err)
			} else {
				slog.Info("saved river field", "path", *outPath)
			}
		}

		if needsRegen {
			cfg.Assets.Seed = int64(seed)
			cfg.Rocks.FieldRadius = int(radius)
			rebuild(field, cfg, rocks)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)
		overlay.Draw(field)
		for _, r := range rocks {
			rl.DrawCircleLines(int32(r.X), int32(r.Y), 4, rl.Maroon)
		}

		x := float32(w + 12)
		y := float32(10)
		rl.DrawText("Field Parameters", int32(x), int32(y), 20, rl.DarkGray)
		y += 35
		for _, s := range sliders {
			rl.DrawText(s.label, int32(x), int32(y), 14, rl.Gray)
			y += 18
			v := gui.SliderBar(
				rl.Rectangle{X: x, Y: y, Width: panelWidth - 90, Height: 18},
				"", fmt.Sprintf(s.format, *s.value),
				float32(*s.value), s.min, s.max,
			)
			if v != float32(*s.value) {
				*s.value = float64(v)
				needsRegen = true
			}
			y += 30
		}

		if gui.Button(rl.Rectangle{X: x, Y: y, Width: 120, Height: 24}, "Clear rocks") {
			rocks = rocks[:0]
			needsRegen = true
		}
		y += 40

		mean, peak := magnitudes(field)
		rl.DrawText(fmt.Sprintf("Mean accel: %.1f", mean), int32(x), int32(y), 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Max accel: %.1f", peak), int32(x), int32(y+20), 16, rl.DarkGray)
		if int(mouse.X) < w {
			v := field.Sample(float64(mouse.X), float64(mouse.Y))
			rl.DrawText(fmt.Sprintf("Cursor: %.1f, %.1f", v.X, v.Y), int32(x), int32(y+40), 16, rl.DarkGray)
		}
		rl.EndDrawing()
	}
}

// rebuild composes the river field plus one rock field per click, the
// same way a rapids section is laid out.
func rebuild(field *systems.VectorField, cfg *config.Config, rocks []rl.Vector2) {
	field.Reset(cfg.Water.MaxAcceleration)
	field.Add(assets.RiverField(cfg), 0, 0)
	if len(rocks) == 0 {
		return
	}
	rock := assets.RockField(cfg)
	for _, r := range rocks {
		field.AddCentered(rock, float64(r.X), float64(r.Y))
	}
}

// magnitudes returns the mean and peak acceleration over a coarse grid.
func magnitudes(field *systems.VectorField) (mean, peak float64) {
	w, h := field.Size()
	var mags []float64
	for y := 0; y < h; y += 8 {
		for x := 0; x < w; x += 8 {
			m := r2.Norm(field.Sample(float64(x), float64(y)))
			mags = append(mags, m)
			peak = max(peak, m)
		}
	}
	return stat.Mean(mags, nil), peak
}
