package systems

import (
	"image"
	"image/color"
)

// FieldCell is one cell of a raster-encoded vector field.
// XPos and XNeg encode signed x acceleration, YPos only encodes +y
// acceleration, Speed scales the magnitude relative to the field's max speed.
type FieldCell struct {
	XPos, XNeg, YPos, Speed uint8
}

// FieldRaster is a width x height grid of field cells, row-major.
type FieldRaster struct {
	Width, Height int
	Cells         []FieldCell
}

// NewFieldRaster allocates a cleared raster.
func NewFieldRaster(width, height int) *FieldRaster {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &FieldRaster{
		Width:  width,
		Height: height,
		Cells:  make([]FieldCell, width*height),
	}
}

// UniformFieldRaster allocates a raster with every cell set to c.
func UniformFieldRaster(width, height int, c FieldCell) *FieldRaster {
	r := NewFieldRaster(width, height)
	r.Fill(c)
	return r
}

// In reports whether (x, y) is a valid cell.
func (r *FieldRaster) In(x, y int) bool {
	return x >= 0 && x < r.Width && y >= 0 && y < r.Height
}

// At returns the cell at (x, y). Coordinates must be in range.
func (r *FieldRaster) At(x, y int) FieldCell {
	return r.Cells[y*r.Width+x]
}

// Set stores c at (x, y). Coordinates must be in range.
func (r *FieldRaster) Set(x, y int, c FieldCell) {
	r.Cells[y*r.Width+x] = c
}

// Fill sets every cell to c.
func (r *FieldRaster) Fill(c FieldCell) {
	for i := range r.Cells {
		r.Cells[i] = c
	}
}

// Clear zeroes every cell.
func (r *FieldRaster) Clear() {
	clear(r.Cells)
}

// screenChannel blends two channel values with the screen rule
// 255 - (255-a)(255-b)/255, rounded. The result is never below max(a, b).
func screenChannel(a, b uint8) uint8 {
	inv := (255 - uint32(a)) * (255 - uint32(b))
	return uint8(255 - (inv+127)/255)
}

// ScreenCell blends two cells channel by channel.
func ScreenCell(a, b FieldCell) FieldCell {
	return FieldCell{
		XPos:  screenChannel(a.XPos, b.XPos),
		XNeg:  screenChannel(a.XNeg, b.XNeg),
		YPos:  screenChannel(a.YPos, b.YPos),
		Speed: screenChannel(a.Speed, b.Speed),
	}
}

// ScreenBlend returns a new raster holding the screen blend of two equally
// sized rasters. Neither input is modified. It returns nil if sizes differ.
func ScreenBlend(a, b *FieldRaster) *FieldRaster {
	if a.Width != b.Width || a.Height != b.Height {
		return nil
	}
	out := NewFieldRaster(a.Width, a.Height)
	for i := range out.Cells {
		out.Cells[i] = ScreenCell(a.Cells[i], b.Cells[i])
	}
	return out
}

// BlendAt screen-blends src into dst with src's origin at (ox, oy).
// Cells falling outside dst are dropped.
func BlendAt(dst, src *FieldRaster, ox, oy int) {
	x0 := max(ox, 0)
	y0 := max(oy, 0)
	x1 := min(ox+src.Width, dst.Width)
	y1 := min(oy+src.Height, dst.Height)

	for y := y0; y < y1; y++ {
		drow := y * dst.Width
		srow := (y - oy) * src.Width
		for x := x0; x < x1; x++ {
			d := &dst.Cells[drow+x]
			*d = ScreenCell(*d, src.Cells[srow+x-ox])
		}
	}
}

// FieldRasterFromImage converts an authored field image.
// Red is XPos, green XNeg, blue YPos and alpha Speed (non-premultiplied).
func FieldRasterFromImage(img image.Image) *FieldRaster {
	b := img.Bounds()
	r := NewFieldRaster(b.Dx(), b.Dy())
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			r.Set(x, y, FieldCell{XPos: c.R, XNeg: c.G, YPos: c.B, Speed: c.A})
		}
	}
	return r
}

// Image encodes the raster back into the authored RGBA layout.
func (r *FieldRaster) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for i, c := range r.Cells {
		o := i * 4
		img.Pix[o] = c.XPos
		img.Pix[o+1] = c.XNeg
		img.Pix[o+2] = c.YPos
		img.Pix[o+3] = c.Speed
	}
	return img
}
