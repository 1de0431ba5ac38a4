package viz

import (
	"image/color"
	"math"
)

// Surface draws a model-space scene onto a braille Canvas. The model size
// is mapped onto the canvas' full sub-pixel grid, one axis at a time.
type Surface struct {
	canvas        *Canvas
	width, height float64
}

func NewSurface(c *Canvas, width, height float64) *Surface {
	return &Surface{canvas: c, width: width, height: height}
}

func (s *Surface) Size() (float64, float64) {
	if s.canvas == nil || s.canvas.Width == 0 || s.canvas.Height == 0 {
		return 0, 0
	}
	return s.width, s.height
}

// Clear wipes the whole canvas. The canvas has no partial clear.
func (s *Surface) Clear(x, y, w, h float64) { s.canvas.Clear() }

func (s *Surface) BeginPath() {}
func (s *Surface) ClosePath() {}

// FillCircle ignores the colour; the view applies the theme colour to the
// whole canvas.
func (s *Surface) FillCircle(cx, cy, r float64, _ color.Color) {
	px, py := s.project(cx, cy)
	sx, sy := s.scale()
	s.canvas.FillCircle(px, py, int(math.Round(r*math.Min(sx, sy))))
}

// Line draws a straight segment between two model-space points.
func (s *Surface) Line(x0, y0, x1, y1 float64) {
	ax, ay := s.project(x0, y0)
	bx, by := s.project(x1, y1)
	s.canvas.DrawLine(ax, ay, bx, by)
}

// ToModel maps a canvas cell to the model-space point at its centre.
func (s *Surface) ToModel(col, row float64) (float64, float64) {
	sx, sy := s.scale()
	return (col*2 + 1) / sx, (row*4 + 2) / sy
}

func (s *Surface) scale() (float64, float64) {
	return float64(s.canvas.Width*2) / s.width, float64(s.canvas.Height*4) / s.height
}

func (s *Surface) project(x, y float64) (int, int) {
	sx, sy := s.scale()
	return int(math.Floor(x * sx)), int(math.Floor(y * sy))
}
