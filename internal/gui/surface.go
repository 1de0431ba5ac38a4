package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// windowSurface draws straight into the current raylib frame. It reports a
// zero size until the window exists, so frames are skipped before that.
type windowSurface struct {
	width, height float64
	background    color.RGBA
}

func (s *windowSurface) Size() (float64, float64) {
	if !rl.IsWindowReady() {
		return 0, 0
	}
	return s.width, s.height
}

func (s *windowSurface) Clear(x, y, w, h float64) {
	if x <= 0 && y <= 0 && w >= s.width && h >= s.height {
		rl.ClearBackground(s.background)
		return
	}
	rl.DrawRectangleV(rl.NewVector2(float32(x), float32(y)), rl.NewVector2(float32(w), float32(h)), s.background)
}

// raylib has no path state; each circle is its own draw call.
func (s *windowSurface) BeginPath() {}
func (s *windowSurface) ClosePath() {}

func (s *windowSurface) FillCircle(cx, cy, r float64, c color.Color) {
	rl.DrawCircleV(rl.NewVector2(float32(cx), float32(cy)), float32(r), toRGBA(c))
}

func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return rl.Black
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}
