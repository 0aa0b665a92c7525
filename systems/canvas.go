package systems

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fogleman/gg"
)

// Canvas is the persistent background raster that particles and the leaf
// trail paint onto. Paint stays until Clear.
type Canvas struct {
	img   *image.RGBA
	dc    *gg.Context // Draws straight into img
	fill  color.RGBA
	base  image.Image
	dirty bool
}

// NewCanvas allocates a canvas cleared to fill.
func NewCanvas(width, height int, fill color.RGBA) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	c := &Canvas{
		img:  img,
		dc:   gg.NewContextForRGBA(img),
		fill: fill,
	}
	c.Clear()
	return c
}

// SetBase sets an image drawn over the fill on every Clear. nil removes it.
func (c *Canvas) SetBase(img image.Image) {
	c.base = img
}

// Clear resets the canvas to the fill colour and base image.
func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{C: c.fill}, image.Point{}, draw.Src)
	if c.base != nil {
		draw.Draw(c.img, c.img.Bounds(), c.base, c.base.Bounds().Min, draw.Over)
	}
	c.dirty = true
}

// FillCircle paints an anti-aliased filled circle centred on (cx, cy),
// blended source-over with col. Parts outside the canvas are clipped.
func (c *Canvas) FillCircle(cx, cy, r float64, col color.RGBA) {
	if r <= 0 || col.A == 0 {
		return
	}
	c.dc.DrawCircle(cx, cy, r)
	c.dc.SetColor(col)
	c.dc.Fill()
	c.dirty = true
}

// MarkDirty flags the canvas for re-upload by the renderer.
func (c *Canvas) MarkDirty() {
	c.dirty = true
}

// Dirty reports whether the canvas changed since the last MarkClean.
func (c *Canvas) Dirty() bool {
	return c.dirty
}

// MarkClean is called by the renderer after uploading the canvas.
func (c *Canvas) MarkClean() {
	c.dirty = false
}

// Image returns the backing image. Callers must not retain it across ticks.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Bounds returns the canvas bounds.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}
