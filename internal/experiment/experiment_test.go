package experiment

import (
	"context"
	"testing"

	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/interaction"
	"github.com/san-kum/ballpit/internal/particle"
)

func TestRegistryScripts(t *testing.T) {
	r := NewRegistry()

	names := r.ListScripts()
	expected := []string{"flick-pair", "fling", "none"}
	if len(names) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("expected %s at %d, got %s", expected[i], i, names[i])
		}
	}

	if _, err := r.GetScript("nonexistent"); err == nil {
		t.Error("expected error for unknown script")
	}
	if _, err := r.GetScript(""); err != nil {
		t.Errorf("empty name should mean none: %v", err)
	}
}

func TestDrag(t *testing.T) {
	from := particle.Vec2{X: 100, Y: 100}
	to := particle.Vec2{X: 40, Y: 130}

	cues := Drag(10, from, to, 3)
	if len(cues) != 5 {
		t.Fatalf("expected 5 cues, got %d", len(cues))
	}

	if cues[0].Frame != 10 || cues[0].Event.Kind != interaction.Down {
		t.Errorf("expected down at frame 10, got %+v", cues[0])
	}
	if cues[0].Event.X != 100 || cues[0].Event.Y != 100 {
		t.Errorf("expected press at origin, got %+v", cues[0].Event)
	}

	last := cues[3]
	if last.Frame != 13 || last.Event.Kind != interaction.Move {
		t.Errorf("expected final move at frame 13, got %+v", last)
	}
	if last.Event.X != 40 || last.Event.Y != 130 {
		t.Errorf("expected final move at target, got %+v", last.Event)
	}

	if cues[4].Frame != 14 || cues[4].Event.Kind != interaction.Up {
		t.Errorf("expected up at frame 14, got %+v", cues[4])
	}
}

func TestScriptsTargetParticles(t *testing.T) {
	r := NewRegistry()
	ps, err := config.DefaultConfig().InitialParticles()
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"fling", "flick-pair"} {
		t.Run(name, func(t *testing.T) {
			script, _ := r.GetScript(name)
			cues := script(ps)
			if len(cues) == 0 {
				t.Fatal("expected cues")
			}

			store, _ := particle.NewStore(ps)
			for _, c := range cues {
				if c.Event.Kind == interaction.Down && store.IndexAt(c.Event.X, c.Event.Y) < 0 {
					t.Errorf("press at (%f,%f) misses every particle", c.Event.X, c.Event.Y)
				}
			}
		})
	}
}

func TestExperimentRun(t *testing.T) {
	tests := []struct {
		name   string
		script string
		moving bool
	}{
		{"resting layout", "none", false},
		{"fling", "fling", true},
		{"flick pair", "flick-pair", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			exp := New(Config{App: config.DefaultConfig(), Script: tt.script, Frames: 300})
			if err := exp.Setup(r, nil, r.DefaultMetrics()); err != nil {
				t.Fatalf("setup: %v", err)
			}

			result, err := exp.Run(context.Background())
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if result.FramesRun != 300 {
				t.Errorf("expected 300 frames, got %d", result.FramesRun)
			}
			if result.CuesPlayed != len(exp.Cues()) {
				t.Errorf("expected %d cues played, got %d", len(exp.Cues()), result.CuesPlayed)
			}

			energy := result.Metrics["kinetic_energy"]
			if tt.moving && energy == 0 {
				t.Error("expected the script to set particles moving")
			}
			if !tt.moving && energy != 0 {
				t.Errorf("expected resting layout to stay still, got energy %f", energy)
			}
		})
	}
}

func TestExperimentRestingLayoutSettlesImmediately(t *testing.T) {
	r := NewRegistry()
	exp := New(Config{Script: "none", Frames: 5})
	if err := exp.Setup(r, nil, r.DefaultMetrics()); err != nil {
		t.Fatal(err)
	}
	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.Metrics["rest_frame"] != 1 {
		t.Errorf("expected rest at frame 1, got %f", result.Metrics["rest_frame"])
	}
	if result.Metrics["peak_overlap"] != 0 {
		t.Errorf("expected no overlap, got %f", result.Metrics["peak_overlap"])
	}
}

func TestExperimentSetupErrors(t *testing.T) {
	r := NewRegistry()

	bad := config.DefaultConfig()
	bad.Layout.Radius = -1
	if err := New(Config{App: bad}).Setup(r, nil, nil); err == nil {
		t.Error("expected error for invalid config")
	}

	if err := New(Config{Script: "nonexistent"}).Setup(r, nil, nil); err == nil {
		t.Error("expected error for unknown script")
	}
}

func TestExperimentRunWithoutSetup(t *testing.T) {
	if _, err := New(Config{}).Run(context.Background()); err == nil {
		t.Error("expected error when running before setup")
	}
}
