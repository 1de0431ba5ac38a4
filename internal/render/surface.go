// Package render defines the drawing surface the simulation paints onto and
// the per-frame draw pass.
package render

import (
	"image/color"

	"github.com/san-kum/ballpit/internal/particle"
)

// Surface is a 2D drawing target. Implementations exist for a raylib
// window, a braille terminal canvas and an SVG document.
type Surface interface {
	Size() (width, height float64)
	Clear(x, y, w, h float64)
	BeginPath()
	FillCircle(cx, cy, r float64, c color.Color)
	ClosePath()
}

// Ready reports whether s can be drawn on. A nil surface or one without an
// area is treated as not ready yet.
func Ready(s Surface) bool {
	if s == nil {
		return false
	}
	w, h := s.Size()
	return w > 0 && h > 0
}

// Frame clears s and draws every particle at its current position. It
// returns false without drawing when s is not ready.
func Frame(s Surface, ps []particle.Particle, st Style) bool {
	if !Ready(s) {
		return false
	}
	w, h := s.Size()
	s.Clear(0, 0, w, h)
	for _, p := range ps {
		s.BeginPath()
		s.FillCircle(p.Pos.X, p.Pos.Y, p.Radius(), st.Fill)
		s.ClosePath()
	}
	return true
}

// Discard is a ready surface that draws nothing. Headless runs use it.
type Discard struct {
	Width, Height float64
}

func (d Discard) Size() (float64, float64)                  { return d.Width, d.Height }
func (Discard) Clear(x, y, w, h float64)                    {}
func (Discard) BeginPath()                                  {}
func (Discard) FillCircle(cx, cy, r float64, c color.Color) {}
func (Discard) ClosePath()                                  {}
