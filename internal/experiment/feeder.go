package experiment

import (
	"sort"

	"github.com/san-kum/ballpit/internal/interaction"
	"github.com/san-kum/ballpit/internal/particle"
	"github.com/san-kum/ballpit/internal/sim"
)

// Feeder replays a script into an event channel for hosts that drive
// Simulator.Loop. As an observer it queues every cue whose frame has been
// reached, so the loop handles it before the next tick.
type Feeder struct {
	cues   []sim.Cue
	next   int
	events chan interaction.Event
}

func NewFeeder(cues []sim.Cue) *Feeder {
	sorted := make([]sim.Cue, len(cues))
	copy(sorted, cues)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Frame < sorted[j].Frame })
	return &Feeder{
		cues:   sorted,
		events: make(chan interaction.Event, len(sorted)),
	}
}

func (f *Feeder) Events() <-chan interaction.Event { return f.events }

// Prime queues the cues due before the first frame.
func (f *Feeder) Prime() { f.release(0) }

func (f *Feeder) OnFrame(frame int, ps []particle.Particle) { f.release(frame) }

func (f *Feeder) Done() bool { return f.next >= len(f.cues) }

func (f *Feeder) release(frame int) {
	for f.next < len(f.cues) && f.cues[f.next].Frame <= frame {
		f.events <- f.cues[f.next].Event
		f.next++
	}
}
