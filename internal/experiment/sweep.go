package experiment

import (
	"context"
	"sync"

	"github.com/san-kum/scenelab/internal/catalog"
	"github.com/san-kum/scenelab/internal/engine"
	"github.com/san-kum/scenelab/internal/physstate"
)

// SweepResult is one preset's headless run: the load report, the sampled
// trajectory of the tracked object, and its final readout.
type SweepResult struct {
	Preset    string
	Report    *LoadReport
	Samples   []physstate.Sample
	Final     *physstate.State
	Gravity   float64
	TimeScale float64
	Err       error
}

// Sweep runs presets headless in parallel, one session per preset.
// Sessions share nothing, so runs are independent and deterministic.
type Sweep struct {
	catalog *catalog.Catalog
	width   float64
	height  float64
}

func NewSweep(cat *catalog.Catalog, width, height float64) *Sweep {
	return &Sweep{catalog: cat, width: width, height: height}
}

// Run simulates every preset for the given duration, tracking the first
// placed object. A preset that fails to load reports its error in the
// result instead of aborting the sweep; ctx cancellation stops every run
// at its next tick.
func (s *Sweep) Run(ctx context.Context, presets []string, duration float64) []SweepResult {
	results := make([]SweepResult, len(presets))

	var wg sync.WaitGroup
	for i, presetID := range presets {
		wg.Add(1)
		go func(idx int, id string) {
			defer wg.Done()
			results[idx] = s.runOne(ctx, id, duration)
		}(i, presetID)
	}
	wg.Wait()

	return results
}

func (s *Sweep) runOne(ctx context.Context, presetID string, duration float64) SweepResult {
	res := SweepResult{Preset: presetID}

	session := NewSession(s.catalog, s.width, s.height)
	report, err := session.LoadExperiment(presetID)
	if err != nil {
		res.Err = err
		return res
	}
	res.Report = report

	if objects := session.Registry().Objects(); len(objects) > 0 {
		session.Select(objects[0].ID)
	}

	buffer := physstate.NewGraphBuffer(physstate.ExtendedRetention)
	ticks := int(duration * engine.TicksPerSecond)
	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			res.Err = ctx.Err()
			return res
		default:
		}
		session.Tick()
		if state, ok := session.SelectedState(); ok {
			buffer.Push(physstate.SampleOf(session.World().Time(), state))
		}
	}

	res.Samples = buffer.Samples()
	res.Gravity = session.World().Gravity()
	res.TimeScale = session.World().TimeScale()
	if state, ok := session.SelectedState(); ok {
		res.Final = &state
	}
	return res
}
