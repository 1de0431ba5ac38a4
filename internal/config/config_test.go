package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/ballpit/internal/particle"
	"github.com/san-kum/ballpit/internal/physics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Width != 800 || cfg.Height != 800 {
		t.Errorf("expected 800x800, got %gx%g", cfg.Width, cfg.Height)
	}
	if cfg.Layout.Count != 5 {
		t.Errorf("expected 5 particles, got %d", cfg.Layout.Count)
	}
	if cfg.Physics != physics.DefaultParams() {
		t.Errorf("expected default physics, got %+v", cfg.Physics)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestInitialParticlesReferenceRow(t *testing.T) {
	ps, err := DefaultConfig().InitialParticles()
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != 5 {
		t.Fatalf("expected 5 particles, got %d", len(ps))
	}

	h := math.Sqrt(3) * 20 / 2
	expected := []particle.Vec2{
		{X: 350, Y: 400},
		{X: 400, Y: 400 + h},
		{X: 450, Y: 400},
		{X: 500, Y: 400 + h},
		{X: 550, Y: 400},
	}
	for i, p := range ps {
		if math.Abs(p.Pos.X-expected[i].X) > 1e-9 || math.Abs(p.Pos.Y-expected[i].Y) > 1e-9 {
			t.Errorf("particle %d: expected %v, got %v", i, expected[i], p.Pos)
		}
		if p.Radius() != 20 {
			t.Errorf("particle %d: expected radius 20, got %f", i, p.Radius())
		}
		if p.Vel != (particle.Vec2{}) {
			t.Errorf("particle %d: expected zero velocity, got %v", i, p.Vel)
		}
	}
}

func TestInitialParticlesExplicit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Particles = []ParticleConfig{
		{X: 10, Y: 20, VX: 1, VY: -1},
		{X: 100, Y: 200, Radius: 7},
	}

	ps, err := cfg.InitialParticles()
	if err != nil {
		t.Fatal(err)
	}
	if ps[0].Radius() != 20 {
		t.Errorf("expected layout radius fallback, got %f", ps[0].Radius())
	}
	if ps[0].Vel != (particle.Vec2{X: 1, Y: -1}) {
		t.Errorf("expected velocity (1,-1), got %v", ps[0].Vel)
	}
	if ps[1].Radius() != 7 {
		t.Errorf("expected radius 7, got %f", ps[1].Radius())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, ErrInvalidSize},
		{"negative height", func(c *Config) { c.Height = -1 }, ErrInvalidSize},
		{"zero radius", func(c *Config) { c.Layout.Radius = 0 }, particle.ErrInvalidRadius},
		{"negative particle radius", func(c *Config) {
			c.Particles = []ParticleConfig{{X: 1, Y: 1, Radius: -3}}
		}, particle.ErrInvalidRadius},
		{"gain too large", func(c *Config) { c.Physics.Gain = 2 }, physics.ErrParameterBounds},
		{"negative damping", func(c *Config) { c.Physics.Damping = -0.1 }, physics.ErrParameterBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestValidateStyleAndCounts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad fill", func(c *Config) { c.Style.Fill = "blue-ish" }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"negative frames", func(c *Config) { c.Frames = -1 }},
		{"empty layout", func(c *Config) { c.Layout.Count = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("pair")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Particles) != 2 {
		t.Fatalf("expected 2 particles, got %d", len(cfg.Particles))
	}
	if cfg.Particles[1].X != 430 {
		t.Errorf("expected second particle at x=430, got %f", cfg.Particles[1].X)
	}

	cfg.Particles[0].X = -1
	if Presets["pair"].Particles[0].X != 400 {
		t.Error("GetPreset must return a copy")
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultConfig()
	base.FPS = 15
	base.Physics.Damping = 0.9

	cfg := ApplyPreset(base, "pair")
	if cfg == nil {
		t.Fatal("expected pair preset")
	}
	if len(cfg.Particles) != 2 || cfg.Particles[1].X != 430 {
		t.Errorf("expected pair particles, got %+v", cfg.Particles)
	}
	if cfg.FPS != 15 || cfg.Physics.Damping != 0.9 {
		t.Errorf("base settings lost: fps=%d damping=%v", cfg.FPS, cfg.Physics.Damping)
	}

	cfg.Particles[0].X = 1
	if Presets["pair"].Particles[0].X != 400 {
		t.Error("ApplyPreset must not share the preset's particles")
	}
	if ApplyPreset(base, "nope") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("expected sorted names, got %v", names)
		}
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			if err := GetPreset(name).Validate(); err != nil {
				t.Errorf("preset %s invalid: %v", name, err)
			}
		})
	}
}

func TestBreakPresetMatchesRow(t *testing.T) {
	row, err := Row(DefaultWidth, DefaultHeight, DefaultConfig().Layout)
	if err != nil {
		t.Fatal(err)
	}
	ps, err := GetPreset("break").InitialParticles()
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range row {
		if math.Abs(ps[i].Pos.X-p.Pos.X) > 1e-9 || math.Abs(ps[i].Pos.Y-p.Pos.Y) > 1e-9 {
			t.Errorf("particle %d: expected %v, got %v", i, p.Pos, ps[i].Pos)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ballpit.yaml")

	cfg := GetPreset("corner")
	cfg.Physics.Damping = 0.95
	cfg.Style.Fill = "#ff0000"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Physics.Damping != 0.95 {
		t.Errorf("expected damping 0.95, got %f", loaded.Physics.Damping)
	}
	if loaded.Style.Fill != "#ff0000" {
		t.Errorf("expected fill #ff0000, got %s", loaded.Style.Fill)
	}
	if len(loaded.Particles) != len(cfg.Particles) || loaded.Particles[0].VX != -9 {
		t.Errorf("particles not preserved: %+v", loaded.Particles)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("width: 400\nheight: 300\n"), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Width != 400 || loaded.Height != 300 {
		t.Errorf("expected 400x300, got %gx%g", loaded.Width, loaded.Height)
	}
	if loaded.FPS != DefaultFPS {
		t.Errorf("expected default fps, got %d", loaded.FPS)
	}
	if loaded.Physics != physics.DefaultParams() {
		t.Errorf("expected default physics, got %+v", loaded.Physics)
	}
}

func TestLoadOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  damping: 0.9\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("pair")
	loaded, err := LoadOver(path, base)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Physics.Damping != 0.9 {
		t.Errorf("expected damping 0.9, got %f", loaded.Physics.Damping)
	}
	if loaded.Physics.Gain != physics.DefaultGain {
		t.Errorf("expected gain kept from base, got %f", loaded.Physics.Gain)
	}
	if len(loaded.Particles) != 2 {
		t.Errorf("expected preset particles kept, got %d", len(loaded.Particles))
	}
	if base.Physics.Damping != physics.DefaultDamping {
		t.Error("LoadOver must not modify base")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
