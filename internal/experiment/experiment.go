package experiment

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/particle"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/render"
	"github.com/san-kum/ballpit/internal/sim"
)

type Config struct {
	App    *config.Config
	Script string
	Frames int
}

// Experiment is one headless run: a configured particle set, a world and a
// pointer script.
type Experiment struct {
	cfg       Config
	simulator *sim.Simulator
	cues      []sim.Cue
}

func New(cfg Config) *Experiment {
	if cfg.App == nil {
		cfg.App = config.DefaultConfig()
	}
	if cfg.Frames <= 0 {
		cfg.Frames = cfg.App.Frames
	}
	return &Experiment{cfg: cfg}
}

// Setup builds the simulator. A nil surface gets a Discard surface of the
// configured size so the run still steps.
func (e *Experiment) Setup(registry *Registry, surface render.Surface, metrics []sim.Metric) error {
	app := e.cfg.App
	if err := app.Validate(); err != nil {
		return err
	}

	ps, err := app.InitialParticles()
	if err != nil {
		return err
	}
	store, err := particle.NewStore(ps)
	if err != nil {
		return err
	}

	script, err := registry.GetScript(e.cfg.Script)
	if err != nil {
		return err
	}
	e.cues = script(store.Snapshot())

	style, err := app.RenderStyle()
	if err != nil {
		return err
	}

	world := physics.NewWorld(app.Width, app.Height)
	world.Params = app.Physics

	if surface == nil {
		surface = render.Discard{Width: app.Width, Height: app.Height}
	}

	e.simulator = sim.New(store, world, surface, style)
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}

	log.Debug("experiment ready", "particles", store.Len(), "script", e.cfg.Script, "cues", len(e.cues))
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	simCfg := sim.Config{
		Frames:        e.cfg.Frames,
		Script:        e.cues,
		ValidateState: true,
	}

	return e.simulator.Run(ctx, simCfg)
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

func (e *Experiment) Cues() []sim.Cue { return e.cues }
