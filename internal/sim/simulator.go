package sim

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/ballpit/internal/interaction"
	"github.com/san-kum/ballpit/internal/particle"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/render"
)

// Simulator owns one particle set and drives it one frame at a time. It
// never schedules itself: a host calls Tick from its own loop, or hands
// Loop a tick channel.
type Simulator struct {
	store     *particle.Store
	world     *physics.World
	ctrl      *interaction.Controller
	surface   render.Surface
	style     render.Style
	metrics   []Metric
	observers []Observer
	frame     int
}

func New(store *particle.Store, world *physics.World, surface render.Surface, style render.Style) *Simulator {
	return &Simulator{
		store:     store,
		world:     world,
		ctrl:      interaction.NewController(store),
		surface:   surface,
		style:     style,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Store() *particle.Store              { return s.store }
func (s *Simulator) World() *physics.World               { return s.world }
func (s *Simulator) Controller() *interaction.Controller { return s.ctrl }
func (s *Simulator) Surface() render.Surface             { return s.surface }
func (s *Simulator) Style() render.Style                 { return s.style }
func (s *Simulator) Frame() int                          { return s.frame }

func (s *Simulator) SetSurface(surface render.Surface) { s.surface = surface }
func (s *Simulator) SetStyle(style render.Style)       { s.style = style }

// Tick steps the whole set once and renders it. It returns false without
// touching the particles when there is no usable surface.
func (s *Simulator) Tick() bool {
	if s.store == nil || s.world == nil {
		return false
	}
	if !render.Ready(s.surface) {
		log.Debug("surface not ready, frame skipped", "frame", s.frame)
		return false
	}

	ps := s.store.Particles()
	s.world.Step(ps)
	s.frame++

	render.Frame(s.surface, ps, s.style)

	for _, m := range s.metrics {
		m.Observe(s.frame, ps)
	}
	for _, obs := range s.observers {
		obs.OnFrame(s.frame, ps)
	}
	return true
}

// Redraw renders the current positions without stepping.
func (s *Simulator) Redraw() bool {
	if s.store == nil {
		return false
	}
	return render.Frame(s.surface, s.store.Particles(), s.style)
}

func (s *Simulator) Handle(ev interaction.Event) { s.ctrl.Handle(ev) }

// Reset restores the starting layout, drops any drag and clears metrics.
func (s *Simulator) Reset() {
	if s.store != nil {
		s.store.Reset()
	}
	s.ctrl.Reset()
	s.frame = 0
	for _, m := range s.metrics {
		m.Reset()
	}
}

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	cues := make([]Cue, len(cfg.Script))
	copy(cues, cfg.Script)
	sort.SliceStable(cues, func(i, j int) bool { return cues[i].Frame < cues[j].Frame })

	result := &Result{
		Energy:  make([]float64, 0, cfg.Frames),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	next := 0
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		for next < len(cues) && cues[next].Frame <= i {
			s.Handle(cues[next].Event)
			next++
			result.CuesPlayed++
		}

		if !s.Tick() {
			break
		}
		result.FramesRun++
		result.Energy = append(result.Energy, s.store.KineticEnergy())

		if cfg.ValidateState && !s.store.IsValid() {
			s.finish(result)
			return result, &particle.SimulationError{Frame: s.frame, Wrapped: particle.ErrNonFinite}
		}
	}

	s.finish(result)
	return result, nil
}

func (s *Simulator) finish(result *Result) {
	result.Final = s.store.Snapshot()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if s.store == nil || s.world == nil {
		return fmt.Errorf("simulator has no particle store or world")
	}
	if cfg.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", cfg.Frames)
	}
	for _, c := range cfg.Script {
		if c.Frame < 0 {
			return fmt.Errorf("cue frame must not be negative, got %d", c.Frame)
		}
	}
	return nil
}

// Loop serves a host that supplies frame ticks and pointer events. Both are
// handled on the calling goroutine, so a frame sees a drag velocity write
// entirely or not at all. Events already queued when a tick arrives are
// handled before that frame steps. A closed tick channel ends the loop; a
// closed event channel only stops input.
func (s *Simulator) Loop(ctx context.Context, ticks <-chan time.Time, events <-chan interaction.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			s.Handle(ev)
		case _, ok := <-ticks:
			if !ok {
				return nil
			}
			events = s.drain(events)
			s.Tick()
		}
	}
}

// drain handles every event that is ready without blocking. It returns nil
// once events is closed.
func (s *Simulator) drain(events <-chan interaction.Event) <-chan interaction.Event {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			s.Handle(ev)
		default:
			return events
		}
	}
}
