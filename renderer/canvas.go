package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftleaf/systems"
)

// CanvasRenderer mirrors a systems.Canvas in a GPU texture. The texture is
// re-uploaded only when the canvas has been painted since the last sync.
type CanvasRenderer struct {
	tex         rl.Texture2D
	pixels      []color.RGBA
	w, h        int
	initialized bool
}

// NewCanvasRenderer creates a renderer for a canvas of the given size.
func NewCanvasRenderer(w, h int) *CanvasRenderer {
	return &CanvasRenderer{w: w, h: h}
}

// Init creates the texture (must be called after the raylib window exists).
func (r *CanvasRenderer) Init() {
	if r.initialized {
		return
	}
	img := rl.GenImageColor(r.w, r.h, rl.Blank)
	r.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	r.pixels = make([]color.RGBA, r.w*r.h)
	r.initialized = true
}

// Sync uploads the canvas if it is dirty and marks it clean.
// A canvas of a different size is ignored.
func (r *CanvasRenderer) Sync(c *systems.Canvas) {
	if !r.initialized {
		r.Init()
	}
	if !c.Dirty() {
		return
	}
	img := c.Image()
	b := img.Bounds()
	if b.Dx() != r.w || b.Dy() != r.h {
		return
	}

	pix := img.Pix
	for i := range r.pixels {
		o := i * 4
		r.pixels[i] = color.RGBA{R: pix[o], G: pix[o+1], B: pix[o+2], A: pix[o+3]}
	}
	rl.UpdateTexture(r.tex, r.pixels)
	c.MarkClean()
}

// Draw renders the texture at the origin.
func (r *CanvasRenderer) Draw() {
	if !r.initialized {
		return
	}
	rl.DrawTexture(r.tex, 0, 0, rl.White)
}

// Unload frees GPU resources.
func (r *CanvasRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadTexture(r.tex)
	r.initialized = false
}
