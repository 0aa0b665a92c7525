package systems

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// RasterSource resolves symbolic asset names to field rasters.
type RasterSource interface {
	Raster(name string) (*FieldRaster, error)
}

// VectorField stores an acceleration field as a raster and answers point
// queries against it. Reset must be called before Add or Sample.
type VectorField struct {
	width, height int
	raster        *FieldRaster
	maxSpeed      float64
	generation    int
}

// NewVectorField creates a field sized to the viewport. No cells are
// allocated until the first Reset.
func NewVectorField(width, height int) *VectorField {
	return &VectorField{width: width, height: height}
}

// Reset clears the field and sets the magnitude of a full-speed cell.
// The backing raster is reused if it already has the right size.
func (f *VectorField) Reset(maxSpeed float64) {
	if f.raster == nil || f.raster.Width != f.width || f.raster.Height != f.height {
		f.raster = NewFieldRaster(f.width, f.height)
	} else {
		f.raster.Clear()
	}
	f.maxSpeed = maxSpeed
	f.generation++
}

// Add screen-blends src into the field with its origin at (x, y).
func (f *VectorField) Add(src *FieldRaster, x, y int) {
	f.mustBeReset()
	BlendAt(f.raster, src, x, y)
	f.generation++
}

// AddAsset resolves name through src and adds it at (x, y).
func (f *VectorField) AddAsset(src RasterSource, name string, x, y int) error {
	raster, err := src.Raster(name)
	if err != nil {
		return fmt.Errorf("adding %q to vector field: %w", name, err)
	}
	f.Add(raster, x, y)
	return nil
}

// AddCentered adds src so that its centre lands on (cx, cy).
func (f *VectorField) AddCentered(src *FieldRaster, cx, cy float64) {
	f.Add(src, int(math.Round(cx))-src.Width/2, int(math.Round(cy))-src.Height/2)
}

// Sample returns the acceleration vector at (x, y). Coordinates are rounded
// to the nearest cell and clamped into the field; there is no wraparound.
func (f *VectorField) Sample(x, y float64) r2.Vec {
	f.mustBeReset()
	if f.width == 0 || f.height == 0 {
		return r2.Vec{}
	}

	cx := clampInt(roundHalfUp(x), 0, f.width-1)
	cy := clampInt(roundHalfUp(y), 0, f.height-1)
	return f.cellVector(f.raster.At(cx, cy))
}

// cellVector converts a cell into an acceleration. The y axis only carries
// the +y channel; upstream push is supplied separately as flow.
func (f *VectorField) cellVector(c FieldCell) r2.Vec {
	dir := r2.Vec{X: float64(c.XPos) - float64(c.XNeg), Y: float64(c.YPos)}
	if dir.X == 0 && dir.Y == 0 {
		return r2.Vec{}
	}
	mag := float64(c.Speed) / 255 * f.maxSpeed
	return r2.Scale(mag, r2.Unit(dir))
}

// MaxSpeed returns the magnitude of a full-speed cell.
func (f *VectorField) MaxSpeed() float64 {
	return f.maxSpeed
}

// Size returns the field dimensions.
func (f *VectorField) Size() (int, int) {
	return f.width, f.height
}

// Generation increases every time the raster contents change.
func (f *VectorField) Generation() int {
	return f.generation
}

// Raster returns the composed raster, or nil before the first Reset.
func (f *VectorField) Raster() *FieldRaster {
	return f.raster
}

func (f *VectorField) mustBeReset() {
	if f.raster == nil {
		panic("systems: VectorField used before Reset")
	}
}

// roundHalfUp rounds halves toward +Inf.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
