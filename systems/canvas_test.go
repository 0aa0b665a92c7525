package systems

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanvasFillCircleShape(t *testing.T) {
	c := NewCanvas(50, 50, white)
	red := color.RGBA{R: 255, A: 255}
	c.FillCircle(25, 25, 5, red)

	assert.Equal(t, red, c.Image().RGBAAt(25, 25))
	assert.Equal(t, red, c.Image().RGBAAt(21, 24))
	assert.Equal(t, white, c.Image().RGBAAt(31, 25))
	assert.Equal(t, white, c.Image().RGBAAt(29, 29), "outside the radius diagonally")
}

func TestCanvasFillCircleClipsEdges(t *testing.T) {
	c := NewCanvas(10, 10, white)
	red := color.RGBA{R: 255, A: 255}
	assert.NotPanics(t, func() {
		c.FillCircle(-2, -2, 6, red)
		c.FillCircle(12, 12, 6, red)
		c.FillCircle(-100, 5, 4, red)
	})
	assert.Equal(t, red, c.Image().RGBAAt(0, 0))
	assert.Equal(t, red, c.Image().RGBAAt(9, 9))
	assert.Equal(t, white, c.Image().RGBAAt(0, 9))
}

func TestCanvasFillCircleAntialiasedEdge(t *testing.T) {
	c := NewCanvas(20, 20, white)
	c.FillCircle(10, 10, 4.5, color.RGBA{A: 255})

	// Pixel (14,10) spans x 14..15 and the edge crosses it at x 14.5.
	edge := c.Image().RGBAAt(14, 10)
	assert.Greater(t, edge.R, uint8(0), "edge pixel is only partly covered")
	assert.Less(t, edge.R, uint8(255))
	assert.Equal(t, uint8(255), edge.A)
	assert.Equal(t, color.RGBA{A: 255}, c.Image().RGBAAt(10, 10))
}

func TestCanvasTranslucentBlend(t *testing.T) {
	c := NewCanvas(4, 4, color.RGBA{A: 255})
	half := color.RGBA{R: 128, G: 128, B: 128, A: 128}
	c.FillCircle(2, 2, 2, half)

	got := c.Image().RGBAAt(1, 1)
	assert.InDelta(t, 128, int(got.R), 1)
	assert.Equal(t, uint8(255), got.A)
}

func TestCanvasClearRestoresBase(t *testing.T) {
	c := NewCanvas(8, 8, white)
	base := image.NewRGBA(image.Rect(0, 0, 8, 8))
	green := color.RGBA{G: 200, A: 255}
	base.SetRGBA(3, 3, green)
	c.SetBase(base)

	c.FillCircle(4, 4, 3, color.RGBA{R: 255, A: 255})
	c.MarkClean()
	c.Clear()

	assert.True(t, c.Dirty())
	assert.Equal(t, green, c.Image().RGBAAt(3, 3))
	assert.Equal(t, white, c.Image().RGBAAt(5, 5), "transparent base pixels keep the fill")
}
