package experiment

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/san-kum/ballpit/internal/interaction"
	"github.com/san-kum/ballpit/internal/particle"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/render"
	"github.com/san-kum/ballpit/internal/sim"
)

func TestFeederReleasesByFrame(t *testing.T) {
	cues := Drag(0, particle.Vec2{X: 400, Y: 400}, particle.Vec2{X: 300, Y: 400}, 2)
	f := NewFeeder(cues)

	f.Prime()
	if got := len(f.Events()); got != 1 {
		t.Fatalf("expected 1 queued cue before frame 1, got %d", got)
	}
	f.OnFrame(1, nil)
	f.OnFrame(2, nil)
	if got := len(f.Events()); got != 3 {
		t.Fatalf("expected 3 queued cues after frame 2, got %d", got)
	}
	f.OnFrame(3, nil)
	if !f.Done() {
		t.Error("expected feeder done after the release frame")
	}

	kinds := []interaction.Kind{interaction.Down, interaction.Move, interaction.Move, interaction.Up}
	for i, k := range kinds {
		ev := <-f.Events()
		if ev.Kind != k {
			t.Errorf("cue %d: expected %s, got %s", i, k, ev.Kind)
		}
	}
}

type frameSignal chan int

func (c frameSignal) OnFrame(frame int, ps []particle.Particle) { c <- frame }

func TestFeederDrivesLoop(t *testing.T) {
	store, _ := particle.NewStore([]particle.Particle{particle.Must(particle.New(400, 400, 20))})
	s := sim.New(store, physics.NewWorld(800, 800), render.Discard{Width: 800, Height: 800}, render.DefaultStyle())

	f := NewFeeder(Drag(0, particle.Vec2{X: 400, Y: 400}, particle.Vec2{X: 300, Y: 400}, 1))
	frames := make(frameSignal, 8)
	s.AddObserver(f)
	s.AddObserver(frames)
	f.Prime()

	ticks := make(chan time.Time)
	done := make(chan error, 1)
	go func() { done <- s.Loop(context.Background(), ticks, f.Events()) }()

	// Each tick goes out only once the cues queued by the previous frame
	// have been taken by the loop.
	for i := 1; i <= 3; i++ {
		waitDrained(t, f)
		ticks <- time.Now()
		if got := <-frames; got != i {
			t.Fatalf("expected frame %d, got %d", i, got)
		}
	}
	waitDrained(t, f)
	close(ticks)
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	if s.Controller().State() != interaction.Idle {
		t.Error("expected the drag to be released")
	}
	p, _ := store.At(0)
	if p.Vel.X <= 0 || math.IsNaN(p.Vel.X) {
		t.Errorf("expected particle flung to the right, got %v", p.Vel)
	}
}

func waitDrained(t *testing.T, f *Feeder) {
	t.Helper()
	deadline := time.After(time.Second)
	for len(f.Events()) > 0 {
		select {
		case <-deadline:
			t.Fatal("events not consumed")
		default:
			time.Sleep(time.Millisecond)
		}
	}
}
