package assets

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/driftleaf/config"
)

var (
	bankGreen = colorful.Color{R: 0.36, G: 0.55, B: 0.33}
	mossGreen = colorful.Color{R: 0.62, G: 0.74, B: 0.52}
	deepWater = colorful.Color{R: 0.55, G: 0.70, B: 0.88}
)

// GameBackdrop draws the river banks as opaque strips along both edges.
// The channel between them is left transparent so the canvas fill shows.
func GameBackdrop(cfg *config.Config) image.Image {
	w, h := cfg.Screen.Width, cfg.Screen.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	bank := int(cfg.Assets.RiverBankWidth * float64(w) / 2)
	if bank <= 0 {
		return img
	}
	for x := 0; x < bank; x++ {
		t := float64(x) / float64(bank)
		c := toRGBA(bankGreen.BlendHcl(mossGreen, t).Clamped(), 255)
		for y := 0; y < h; y++ {
			img.SetRGBA(x, y, c)
			img.SetRGBA(w-1-x, y, c)
		}
	}
	return img
}

// MenuBackdrop fades from transparent at the top to a water tint along the
// bottom quarter, under the menu's drifting particles.
func MenuBackdrop(cfg *config.Config) image.Image {
	w, h := cfg.Screen.Width, cfg.Screen.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	start := int(float64(h) * (1 - 2*cfg.Menu.EmitterHeight))
	for y := max(start, 0); y < h; y++ {
		t := float64(y-start) / float64(h-start)
		c := toRGBA(deepWater, uint8(t*160))
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// toRGBA converts to premultiplied RGBA with the given alpha.
func toRGBA(c colorful.Color, alpha uint8) color.RGBA {
	r, g, b := c.RGB255()
	a := uint32(alpha)
	return color.RGBA{
		R: uint8(uint32(r) * a / 255),
		G: uint8(uint32(g) * a / 255),
		B: uint8(uint32(b) * a / 255),
		A: alpha,
	}
}
