package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/driftleaf/game"
)

var (
	leafFill = rl.Color{R: 196, G: 120, B: 48, A: 255}
	leafVein = rl.Color{R: 120, G: 68, B: 24, A: 255}
)

// rockShades indexed by variant - 1.
var rockShades = []rl.Color{
	{R: 112, G: 108, B: 104, A: 255},
	{R: 96, G: 98, B: 102, A: 255},
	{R: 128, G: 120, B: 110, A: 255},
	{R: 84, G: 86, B: 82, A: 255},
}

// DrawLeaf draws the leaf centred on (x, y), pointing along its velocity.
func DrawLeaf(x, y, radius, vx, vy float64) {
	angle := float32(-90)
	if vx != 0 || vy != 0 {
		angle = float32(math.Atan2(vy, vx) * 180 / math.Pi)
	}
	center := rl.Vector2{X: float32(x), Y: float32(y)}
	r := float32(radius)

	body := rl.Rectangle{X: center.X, Y: center.Y, Width: 2 * r, Height: 1.2 * r}
	rl.DrawRectanglePro(body, rl.Vector2{X: r, Y: 0.6 * r}, angle, leafFill)

	rad := float64(angle) * math.Pi / 180
	dx := float32(math.Cos(rad)) * r
	dy := float32(math.Sin(rad)) * r
	rl.DrawLineEx(rl.Vector2{X: center.X - dx, Y: center.Y - dy}, rl.Vector2{X: center.X + dx, Y: center.Y + dy}, 1.5, leafVein)
}

// DrawRock draws a rock body centred on its position.
func DrawRock(r game.RockView) {
	shade := rockShades[(r.Variant-1+len(rockShades))%len(rockShades)]
	rec := rl.Rectangle{
		X:      float32(r.X - r.HalfW),
		Y:      float32(r.Y - r.HalfH),
		Width:  float32(2 * r.HalfW),
		Height: float32(2 * r.HalfH),
	}
	rl.DrawRectangleRounded(rec, 0.6, 8, shade)
	rl.DrawRectangleRoundedLinesEx(rec, 0.6, 8, 1, rl.Fade(rl.Black, 0.3))
}
