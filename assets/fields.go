package assets

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/driftleaf/config"
	"github.com/pthm-cable/driftleaf/systems"
)

// RiverField generates the viewport-sized river current. The banks push
// back toward the middle of the channel; the open water carries simplex
// turbulence on the lateral axis and a weak downstream drag.
func RiverField(cfg *config.Config) *systems.FieldRaster {
	w, h := cfg.Screen.Width, cfg.Screen.Height
	a := cfg.Assets
	r := systems.NewFieldRaster(w, h)

	lateral := opensimplex.New(a.Seed)
	drag := opensimplex.New(a.Seed + 1)
	bank := a.RiverBankWidth * float64(w)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fx := float64(x) + 0.5
			var push float64
			if bank > 0 {
				if fx < bank {
					push = (bank - fx) / bank
				} else if right := float64(w) - fx; right < bank {
					push = -(bank - right) / bank
				}
			}

			nx := float64(x) * a.RiverNoiseScale
			ny := float64(y) * a.RiverNoiseScale
			lat := clamp(push+lateral.Eval2(nx, ny)*a.RiverTurbulence, -1, 1)
			down := math.Max(drag.Eval2(nx, ny), 0) * a.RiverTurbulence

			r.Set(x, y, systems.FieldCell{
				XPos:  channel(math.Max(lat, 0)),
				XNeg:  channel(math.Max(-lat, 0)),
				YPos:  channel(down),
				Speed: channel(math.Max(math.Abs(lat), down)),
			})
		}
	}
	return r
}

// RockField generates the square raster added around every rock. Water is
// deflected radially away from the rock centre, strongest at the rock and
// fading to nothing at the field radius. Only the downstream half can push
// in +y.
func RockField(cfg *config.Config) *systems.FieldRaster {
	radius := cfg.Rocks.FieldRadius
	size := 2*radius + 1
	r := systems.NewFieldRaster(size, size)
	if radius <= 0 {
		return r
	}

	rad := float64(radius)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x - radius)
			dy := float64(y - radius)
			d := math.Hypot(dx, dy)
			if d == 0 || d > rad {
				continue
			}
			ux, uy := dx/d, dy/d
			strength := (1 - d/rad) * cfg.Rocks.FieldStrength
			r.Set(x, y, systems.FieldCell{
				XPos:  channel(math.Max(ux, 0)),
				XNeg:  channel(math.Max(-ux, 0)),
				YPos:  channel(math.Max(uy, 0)),
				Speed: channel(strength),
			})
		}
	}
	return r
}

// channel maps [0,1] to a byte, rounding.
func channel(v float64) uint8 {
	return uint8(math.Round(clamp(v, 0, 1) * 255))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
