package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/driftleaf/config"
)

// RockPlacement is a rock position in viewport fractions.
type RockPlacement struct {
	X, Y    float64
	Ordered bool // Placed in a band rather than uniformly
	Band    int  // 1-based band index for ordered rocks, 0 otherwise
}

// RockCounts splits n rocks into ordered and random placements.
// random = round(n * fraction).
func RockCounts(n int, fraction float64) (ordered, random int) {
	random = int(math.Round(float64(n) * fraction))
	random = clampInt(random, 0, max(n, 0))
	return n - random, random
}

// BandCenters returns the vertical centre of each ordered band, in band
// order. Band i sits at i/ordered of the spawn span.
func BandCenters(cfg config.RocksConfig) []float64 {
	ordered, _ := RockCounts(cfg.Count, cfg.RandomFraction)
	centers := make([]float64, ordered)
	span := cfg.MaxY - cfg.MinY
	for i := 1; i <= ordered; i++ {
		centers[i-1] = float64(i) / float64(ordered) * span
	}
	return centers
}

// RockLayout places cfg.Count rocks. Ordered rocks are jittered within
// cfg.Range of their band centre, clipped to [MinY, MaxY]; random rocks are
// uniform over [MinY, MaxY]. X is uniform inside the horizontal padding.
func RockLayout(cfg config.RocksConfig, rng *rand.Rand) []RockPlacement {
	_, random := RockCounts(cfg.Count, cfg.RandomFraction)
	centers := BandCenters(cfg)
	out := make([]RockPlacement, 0, len(centers)+random)

	xr := Range{Min: cfg.XPadding, Max: 1 - cfg.XPadding}
	for i, c := range centers {
		yr := Range{
			Min: math.Max(c-cfg.Range, cfg.MinY),
			Max: math.Min(c+cfg.Range, cfg.MaxY),
		}
		out = append(out, RockPlacement{
			X:       xr.sample(rng),
			Y:       yr.sample(rng),
			Ordered: true,
			Band:    i + 1,
		})
	}

	yr := Range{Min: cfg.MinY, Max: cfg.MaxY}
	for i := 0; i < random; i++ {
		out = append(out, RockPlacement{X: xr.sample(rng), Y: yr.sample(rng)})
	}
	return out
}

// CircleIntersectsBox reports whether a circle overlaps an axis-aligned box
// given by its centre and half extents.
func CircleIntersectsBox(cx, cy, r, bx, by, halfW, halfH float64) bool {
	nx := math.Max(bx-halfW, math.Min(cx, bx+halfW))
	ny := math.Max(by-halfH, math.Min(cy, by+halfH))
	dx := cx - nx
	dy := cy - ny
	return dx*dx+dy*dy < r*r
}
