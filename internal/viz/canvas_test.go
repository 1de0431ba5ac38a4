package viz

import (
	"math"
	"strings"
	"testing"
)

func TestCanvasSetAndLit(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(3, 5)
	if !c.Lit(3, 5) {
		t.Error("expected pixel to be lit")
	}
	if c.Lit(2, 5) {
		t.Error("expected neighbour to stay dark")
	}

	// Out of range writes are dropped.
	c.Set(-1, 0)
	c.Set(100, 100)

	c.Clear()
	if c.Lit(3, 5) {
		t.Error("expected clear to reset pixel")
	}
}

func TestCanvasFillCircle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.FillCircle(20, 20, 5)

	tests := []struct {
		x, y int
		lit  bool
	}{
		{20, 20, true},
		{25, 20, true},
		{20, 15, true},
		{24, 24, false},
		{26, 20, false},
	}
	for _, tt := range tests {
		if got := c.Lit(tt.x, tt.y); got != tt.lit {
			t.Errorf("Lit(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.lit)
		}
	}
}

func TestCanvasFillCircleDegenerate(t *testing.T) {
	c := NewCanvas(4, 4)
	c.FillCircle(3, 3, 0)
	if !c.Lit(3, 3) {
		t.Error("expected zero radius to light the centre")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if lines[0] != "⠀⠀⠀" {
		t.Errorf("expected blank braille row, got %q", lines[0])
	}
}

func TestSurfaceMapping(t *testing.T) {
	c := NewCanvas(64, 32)
	s := NewSurface(c, 800, 800)

	w, h := s.Size()
	if w != 800 || h != 800 {
		t.Errorf("expected model size 800x800, got %gx%g", w, h)
	}

	x, y := s.ToModel(0, 0)
	if math.Abs(x-6.25) > 1e-9 || math.Abs(y-12.5) > 1e-9 {
		t.Errorf("expected first cell centre (6.25,12.5), got (%f,%f)", x, y)
	}

	s.FillCircle(400, 400, 20, nil)
	if !c.Lit(64, 64) {
		t.Error("expected centre sub-pixel lit")
	}
	if c.Lit(0, 0) {
		t.Error("expected far corner dark")
	}

	s.Clear(0, 0, 800, 800)
	if c.Lit(64, 64) {
		t.Error("expected clear to wipe the canvas")
	}
}

func TestSurfaceNotReady(t *testing.T) {
	s := NewSurface(nil, 800, 800)
	if w, h := s.Size(); w != 0 || h != 0 {
		t.Errorf("expected zero size without a canvas, got %gx%g", w, h)
	}
}

func TestSurfaceLine(t *testing.T) {
	c := NewCanvas(64, 32)
	s := NewSurface(c, 800, 800)
	s.Line(0, 400, 799, 400)
	for x := 0; x < 128; x += 16 {
		if !c.Lit(x, 64) {
			t.Errorf("expected line through sub-pixel (%d,64)", x)
		}
	}
}
