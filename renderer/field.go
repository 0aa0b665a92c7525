package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftleaf/systems"
)

// FieldOverlay draws a vector field for debugging: the raw raster as a
// translucent image plus a grid of sampled acceleration arrows.
type FieldOverlay struct {
	tex         rl.Texture2D
	pixels      []color.RGBA
	w, h        int
	generation  int
	spacing     int
	initialized bool
}

// NewFieldOverlay creates an overlay for a field of the given size.
// Arrows are drawn every spacing pixels.
func NewFieldOverlay(w, h, spacing int) *FieldOverlay {
	return &FieldOverlay{w: w, h: h, spacing: spacing, generation: -1}
}

func (o *FieldOverlay) init() {
	img := rl.GenImageColor(o.w, o.h, rl.Blank)
	o.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	o.pixels = make([]color.RGBA, o.w*o.h)
	o.initialized = true
}

// Draw renders the overlay, re-uploading the raster if the field changed.
func (o *FieldOverlay) Draw(f *systems.VectorField) {
	raster := f.Raster()
	if raster == nil || raster.Width != o.w || raster.Height != o.h {
		return
	}
	if !o.initialized {
		o.init()
	}
	if f.Generation() != o.generation {
		for i, c := range raster.Cells {
			// Speed drives opacity so empty water stays clear.
			o.pixels[i] = color.RGBA{R: c.XPos, G: c.XNeg, B: c.YPos, A: c.Speed / 2}
		}
		rl.UpdateTexture(o.tex, o.pixels)
		o.generation = f.Generation()
	}
	rl.DrawTexture(o.tex, 0, 0, rl.White)
	if f.MaxSpeed() <= 0 {
		return
	}

	scale := float32(o.spacing) / float32(2*f.MaxSpeed())
	for y := o.spacing / 2; y < o.h; y += o.spacing {
		for x := o.spacing / 2; x < o.w; x += o.spacing {
			v := f.Sample(float64(x), float64(y))
			if v.X == 0 && v.Y == 0 {
				continue
			}
			from := rl.Vector2{X: float32(x), Y: float32(y)}
			to := rl.Vector2{X: from.X + float32(v.X)*scale, Y: from.Y + float32(v.Y)*scale}
			rl.DrawLineV(from, to, rl.DarkBlue)
			rl.DrawCircleV(to, 1.5, rl.DarkBlue)
		}
	}
}

// Unload frees GPU resources.
func (o *FieldOverlay) Unload() {
	if !o.initialized {
		return
	}
	rl.UnloadTexture(o.tex)
	o.initialized = false
}
