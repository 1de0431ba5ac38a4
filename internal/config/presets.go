package config

import "sort"

var Presets = map[string]*Config{
	"triangle": DefaultConfig(),
	"pair": withParticles(
		ParticleConfig{X: 400, Y: 400},
		ParticleConfig{X: 430, Y: 400},
	),
	"stacked": withParticles(
		ParticleConfig{X: 400, Y: 400},
		ParticleConfig{X: 400, Y: 400},
		ParticleConfig{X: 400, Y: 400},
	),
	"corner": withParticles(
		ParticleConfig{X: 120, Y: 100, VX: -9, VY: -7},
		ParticleConfig{X: 680, Y: 700, VX: 6, VY: 8, Radius: 30},
	),
	"break": withParticles(
		ParticleConfig{X: 350, Y: 400},
		ParticleConfig{X: 400, Y: 417.32050807568875},
		ParticleConfig{X: 450, Y: 400},
		ParticleConfig{X: 500, Y: 417.32050807568875},
		ParticleConfig{X: 550, Y: 400},
		ParticleConfig{X: 100, Y: 405, VX: 18},
	),
}

func withParticles(ps ...ParticleConfig) *Config {
	cfg := DefaultConfig()
	cfg.Particles = ps
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset returns a copy of base with the named preset's scene (layout
// and particles). Size, timing, style and physics stay as in base.
func ApplyPreset(base *Config, name string) *Config {
	preset, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := base.Clone()
	cfg.Layout = preset.Layout
	cfg.Particles = append([]ParticleConfig(nil), preset.Particles...)
	return cfg
}
