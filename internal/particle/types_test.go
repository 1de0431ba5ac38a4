package particle

import (
	"errors"
	"math"
	"testing"
)

func TestNew_Radius(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		valid  bool
	}{
		{"positive", 20, true},
		{"tiny", 1e-9, true},
		{"zero", 0, false},
		{"negative", -1, false},
		{"NaN", math.NaN(), false},
		{"+Inf", math.Inf(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(1, 2, tt.radius)
			if tt.valid {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if p.Radius() != tt.radius {
					t.Errorf("Radius() = %v, want %v", p.Radius(), tt.radius)
				}
				return
			}
			if !errors.Is(err, ErrInvalidRadius) {
				t.Errorf("expected ErrInvalidRadius, got %v", err)
			}
		})
	}
}

func TestParticle_Contains(t *testing.T) {
	p := Must(New(100, 100, 20))

	tests := []struct {
		x, y float64
		want bool
	}{
		{100, 100, true},
		{120, 100, true},
		{100, 80, true},
		{120.001, 100, false},
		{115, 115, false},
	}

	for _, tt := range tests {
		if got := p.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestVec2_Arithmetic(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{4, 6}

	if got := b.Sub(a); got != (Vec2{3, 4}) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Add(b); got != (Vec2{5, 8}) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := a.Scale(2); got != (Vec2{2, 4}) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := b.Sub(a).Len(); got != 5 {
		t.Errorf("Len failed: got %v", got)
	}
}

func TestParticle_KineticEnergy(t *testing.T) {
	p := Must(New(0, 0, 1)).WithVelocity(3, 4)
	if got := p.KineticEnergy(); got != 12.5 {
		t.Errorf("KineticEnergy() = %v, want 12.5", got)
	}
}
