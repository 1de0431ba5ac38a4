package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/ballpit/internal/interaction"
	"github.com/san-kum/ballpit/internal/metrics"
	"github.com/san-kum/ballpit/internal/particle"
	"github.com/san-kum/ballpit/internal/sim"
)

// Script turns the starting particle set into timed pointer cues.
type Script func(ps []particle.Particle) []sim.Cue

type Registry struct {
	scripts map[string]Script
}

func NewRegistry() *Registry {
	r := &Registry{
		scripts: make(map[string]Script),
	}

	r.scripts["none"] = func(ps []particle.Particle) []sim.Cue { return nil }

	// Grab the first particle and pull it back and slightly down, so it is
	// released travelling right into the rest of the set.
	r.scripts["fling"] = func(ps []particle.Particle) []sim.Cue {
		if len(ps) == 0 {
			return nil
		}
		from := ps[0].Pos
		return Drag(30, from, from.Add(particle.Vec2{X: -100, Y: 20}), 5)
	}

	// Send the first particle left and the last one right.
	r.scripts["flick-pair"] = func(ps []particle.Particle) []sim.Cue {
		if len(ps) == 0 {
			return nil
		}
		first := ps[0].Pos
		cues := Drag(1, first, first.Add(particle.Vec2{X: 80}), 2)
		if len(ps) > 1 {
			last := ps[len(ps)-1].Pos
			cues = append(cues, Drag(4, last, last.Add(particle.Vec2{X: -80}), 2)...)
		}
		return cues
	}

	return r
}

// Drag presses at from on the given frame, walks the pointer to `to` over
// the next steps frames, then releases one frame later.
func Drag(frame int, from, to particle.Vec2, steps int) []sim.Cue {
	if steps < 1 {
		steps = 1
	}
	cues := make([]sim.Cue, 0, steps+2)
	cues = append(cues, sim.Cue{Frame: frame, Event: interaction.Event{Kind: interaction.Down, X: from.X, Y: from.Y}})

	delta := to.Sub(from)
	for i := 1; i <= steps; i++ {
		p := from.Add(delta.Scale(float64(i) / float64(steps)))
		cues = append(cues, sim.Cue{Frame: frame + i, Event: interaction.Event{Kind: interaction.Move, X: p.X, Y: p.Y}})
	}

	cues = append(cues, sim.Cue{Frame: frame + steps + 1, Event: interaction.Event{Kind: interaction.Up}})
	return cues
}

func (r *Registry) GetScript(name string) (Script, error) {
	if name == "" {
		name = "none"
	}
	fn, ok := r.scripts[name]
	if !ok {
		return nil, fmt.Errorf("unknown script: %s", name)
	}
	return fn, nil
}

func (r *Registry) ListScripts() []string {
	names := make([]string, 0, len(r.scripts))
	for name := range r.scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewEnergy(),
		metrics.NewPeakOverlap(),
		metrics.NewRestFrame(),
	}
}
