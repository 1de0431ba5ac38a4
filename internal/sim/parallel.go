package sim

import (
	"context"
	"sync"

	"github.com/san-kum/ballpit/internal/particle"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/render"
)

// Sweep runs the same layout and script under several parameter sets. Each
// run owns its own store, world and simulator, so runs share nothing.
type Sweep struct {
	layout  []particle.Particle
	width   float64
	height  float64
	metrics func() []Metric
}

func NewSweep(layout []particle.Particle, width, height float64, metrics func() []Metric) *Sweep {
	return &Sweep{layout: layout, width: width, height: height, metrics: metrics}
}

func (sw *Sweep) Run(ctx context.Context, params []physics.Params, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(params))
	errs := make([]error, len(params))

	var wg sync.WaitGroup
	for i := range params {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			if err := params[idx].Validate(); err != nil {
				errs[idx] = err
				return
			}
			store, err := particle.NewStore(sw.layout)
			if err != nil {
				errs[idx] = err
				return
			}
			world := physics.NewWorld(sw.width, sw.height)
			world.Params = params[idx]

			s := New(store, world, render.Discard{Width: sw.width, Height: sw.height}, render.DefaultStyle())
			if sw.metrics != nil {
				for _, m := range sw.metrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
