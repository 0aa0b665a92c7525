package systems

import (
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreenChannel(t *testing.T) {
	assert.Equal(t, uint8(0), screenChannel(0, 0))
	assert.Equal(t, uint8(255), screenChannel(255, 0))
	assert.Equal(t, uint8(255), screenChannel(255, 255))
	assert.Equal(t, uint8(77), screenChannel(77, 0))
	assert.Equal(t, uint8(192), screenChannel(128, 128))
}

func TestScreenBlendNeverDarkens(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			out := screenChannel(uint8(a), uint8(b))
			if int(out) < max(a, b) {
				t.Fatalf("screen(%d,%d)=%d darkens", a, b, out)
			}
			if out != screenChannel(uint8(b), uint8(a)) {
				t.Fatalf("screen(%d,%d) not symmetric", a, b)
			}
		}
	}
}

func TestScreenBlendPure(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	a := randomRaster(rng, 8, 8)
	b := randomRaster(rng, 8, 8)
	aCopy := append([]FieldCell(nil), a.Cells...)

	out := ScreenBlend(a, b)
	require.NotNil(t, out)
	assert.Equal(t, aCopy, a.Cells, "inputs must not change")
	for i := range out.Cells {
		assert.Equal(t, ScreenCell(a.Cells[i], b.Cells[i]), out.Cells[i])
	}

	assert.Nil(t, ScreenBlend(a, NewFieldRaster(4, 8)))
}

func TestBlendNonOverlappingCommutes(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	left := randomRaster(rng, 10, 20)
	right := randomRaster(rng, 10, 20)

	ab := NewFieldRaster(20, 20)
	BlendAt(ab, left, 0, 0)
	BlendAt(ab, right, 10, 0)

	ba := NewFieldRaster(20, 20)
	BlendAt(ba, right, 10, 0)
	BlendAt(ba, left, 0, 0)

	assert.Equal(t, ab.Cells, ba.Cells)
}

func TestBlendAtClipsNegativeOffsets(t *testing.T) {
	dst := NewFieldRaster(4, 4)
	src := UniformFieldRaster(3, 3, FieldCell{Speed: 200})
	BlendAt(dst, src, -2, -2)

	assert.Equal(t, uint8(200), dst.At(0, 0).Speed)
	assert.Equal(t, uint8(0), dst.At(1, 0).Speed)
	assert.Equal(t, uint8(0), dst.At(0, 1).Speed)
}

func TestFieldRasterImageRoundtrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 40})

	r := FieldRasterFromImage(img)
	require.Equal(t, 3, r.Width)
	require.Equal(t, 2, r.Height)
	assert.Equal(t, FieldCell{XPos: 10, XNeg: 20, YPos: 30, Speed: 40}, r.At(1, 1))
	assert.Equal(t, img.Pix, r.Image().Pix)
}
