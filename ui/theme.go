// Package ui draws the text overlays and the debug tuning panel.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	Title       rl.Color
	Text        rl.Color
	Muted       rl.Color
	Label       rl.Color

	TitleSize    int32
	TextSize     int32
	SmallSize    int32
	CountSize    int32
	Padding      int32
	LineHeight   int32
	LabelWidth   int32
	SliderHeight float32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:      rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder:  rl.Color{R: 60, G: 70, B: 80, A: 255},
		Title:        rl.White,
		Text:         rl.Color{R: 40, G: 60, B: 90, A: 255},
		Muted:        rl.Color{R: 70, G: 90, B: 120, A: 255},
		Label:        rl.LightGray,
		TitleSize:    30,
		TextSize:     22,
		SmallSize:    16,
		CountSize:    40,
		Padding:      10,
		LineHeight:   18,
		LabelWidth:   110,
		SliderHeight: 16,
	}
}

// drawCentered draws text horizontally centred in a band of the given width.
func drawCentered(text string, width, y, size int32, col rl.Color) int32 {
	w := rl.MeasureText(text, size)
	rl.DrawText(text, (width-w)/2, y, size, col)
	return y + size + size/3
}

// drawPanel draws a panel background with border.
func (t Theme) drawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, t.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, t.PanelBorder)
}
