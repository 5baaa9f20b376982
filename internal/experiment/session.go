package experiment

import (
	"github.com/san-kum/scenelab/internal/catalog"
	"github.com/san-kum/scenelab/internal/engine"
	"github.com/san-kum/scenelab/internal/forcefield"
	"github.com/san-kum/scenelab/internal/overlay"
	"github.com/san-kum/scenelab/internal/physstate"
	"github.com/san-kum/scenelab/internal/scene"
)

// TickContext is the stable snapshot of the externally committed values
// for the duration of one tick. Hooks read it instead of the live session
// fields, so a selection or settings change mid-frame never partially
// applies.
type TickContext struct {
	Tick         uint64
	Time         float64
	Selection    scene.ObjectID
	Settings     overlay.Settings
	GravityScale float64
}

// Session wires the whole layer together: it owns the world, registry,
// loader, force-field evaluator, overlay generator and graph buffer, and
// drives them from the engine's tick hooks. All session methods must be
// called from the goroutine that drives ticking.
type Session struct {
	world     *engine.World
	registry  *scene.Registry
	catalog   *catalog.Catalog
	loader    *Loader
	evaluator *forcefield.Evaluator
	generator *overlay.Generator
	graph     *physstate.GraphBuffer

	floorY float64

	selection scene.ObjectID
	settings  overlay.Settings
	paused    bool

	ctx       TickContext
	lastFrame overlay.Frame
	lastState *physstate.State
}

// NewSession builds a session over a fresh world with boundary walls for a
// width×height simulation surface.
func NewSession(cat *catalog.Catalog, width, height float64) *Session {
	world := engine.NewWorld()
	registry := scene.NewRegistry(world)
	registry.AddBoundaries(width, height, 60)

	s := &Session{
		world:     world,
		registry:  registry,
		catalog:   cat,
		evaluator: forcefield.New(registry),
		generator: overlay.NewGenerator(),
		graph:     physstate.NewGraphBuffer(physstate.DefaultRetention),
		floorY:    height,
		settings:  overlay.Settings{Trails: true, VelocityVectors: true},
	}
	s.loader = NewLoader(cat, registry)
	s.loader.OnCleared = s.resetDerived

	world.OnBeforeStep(func(w *engine.World, dt float64) {
		s.ctx = TickContext{
			Tick:         w.Tick(),
			Time:         w.Time(),
			Selection:    s.selection,
			Settings:     s.settings,
			GravityScale: w.Gravity(),
		}
		s.evaluator.Apply(w)
	})
	world.OnAfterStep(func(w *engine.World, dt float64) {
		s.sample(w)
	})

	return s
}

func (s *Session) sample(w *engine.World) {
	var selected *engine.Body
	s.lastState = nil
	if s.ctx.Selection != scene.NoObject {
		if b, ok := s.registry.Body(s.ctx.Selection); ok {
			selected = b
			state := physstate.Compute(b, s.ctx.GravityScale, s.floorY)
			s.lastState = &state
			s.graph.Push(physstate.SampleOf(s.ctx.Time, state))
		}
	}
	s.lastFrame = s.generator.Frame(w, selected, s.ctx.GravityScale, s.ctx.Settings)
}

func (s *Session) resetDerived() {
	s.generator.Reset()
	s.graph.Reset()
	s.selection = scene.NoObject
	s.lastState = nil
	s.lastFrame = overlay.Frame{}
}

// Tick advances one frame unless paused.
func (s *Session) Tick() {
	if s.paused {
		return
	}
	s.world.Step()
}

// StepOnce performs exactly one fixed-duration integration while paused.
func (s *Session) StepOnce() {
	s.world.Step()
}

func (s *Session) Pause()       { s.paused = true }
func (s *Session) Resume()      { s.paused = false }
func (s *Session) Paused() bool { return s.paused }

// LoadExperiment atomically replaces the scene from a preset, then applies
// the preset's initial globals.
func (s *Session) LoadExperiment(presetID string) (*LoadReport, error) {
	report, err := s.loader.Load(presetID)
	if err != nil {
		return nil, err
	}
	if st := report.Settings; st != nil {
		if st.Gravity != nil {
			s.world.SetGravity(*st.Gravity)
		}
		if st.TimeScale != nil {
			s.world.SetTimeScale(*st.TimeScale)
		}
		if st.ShowTrails != nil {
			s.settings.Trails = *st.ShowTrails
		}
		if st.ShowVelocity != nil {
			s.settings.VelocityVectors = *st.ShowVelocity
		}
		if st.ShowForces != nil {
			s.settings.ForceVectors = *st.ShowForces
		}
	}
	return report, nil
}

// Drop resolves a definition id and places it at a position, the
// drag-and-drop entry point. Malformed payloads leave the scene untouched.
func (s *Session) Drop(definitionID string, pos engine.Vec2) (*scene.Object, error) {
	def, err := s.catalog.ResolveDefinition(definitionID)
	if err != nil {
		return nil, err
	}
	return s.registry.AddObject(def, pos, scene.Overrides{})
}

// Remove deletes one object, its constraints, its trail and, if it was
// selected, the selection.
func (s *Session) Remove(id scene.ObjectID) {
	if b, ok := s.registry.Body(id); ok {
		s.generator.DropTrail(b.ID())
	}
	s.registry.RemoveObject(id)
	if s.selection == id {
		s.selection = scene.NoObject
		s.lastState = nil
	}
}

// Clear empties the scene (boundaries survive) and resets all derived
// buffers.
func (s *Session) Clear() {
	s.registry.Clear()
	s.resetDerived()
}

// Reset restores every object to its initial placement and drops derived
// buffers; the selection is kept.
func (s *Session) Reset() {
	s.registry.ResetPositions()
	s.generator.Reset()
	s.graph.Reset()
}

// Select commits a new selection; it takes effect at the next tick
// boundary.
func (s *Session) Select(id scene.ObjectID) {
	if _, ok := s.registry.Object(id); ok {
		s.selection = id
	}
}

func (s *Session) ClearSelection() {
	s.selection = scene.NoObject
	s.lastState = nil
}

func (s *Session) Selection() scene.ObjectID { return s.selection }

// SelectAt selects the topmost object under a point, if any.
func (s *Session) SelectAt(p engine.Vec2) (scene.ObjectID, bool) {
	id, ok := s.registry.ObjectAt(p)
	if ok {
		s.selection = id
	}
	return id, ok
}

func (s *Session) Settings() overlay.Settings { return s.settings }

func (s *Session) SetSettings(settings overlay.Settings) { s.settings = settings }

func (s *Session) SetGravity(scale float64) { s.world.SetGravity(scale) }

func (s *Session) SetTimeScale(scale float64) { s.world.SetTimeScale(scale) }

// SelectedState returns the readout computed at the last completed tick,
// or false when nothing is selected.
func (s *Session) SelectedState() (physstate.State, bool) {
	if s.lastState == nil {
		return physstate.State{}, false
	}
	return *s.lastState, true
}

// OverlayFrame returns the draw instructions from the last completed tick.
func (s *Session) OverlayFrame() overlay.Frame { return s.lastFrame }

func (s *Session) Graph() *physstate.GraphBuffer { return s.graph }

func (s *Session) Registry() *scene.Registry { return s.registry }

func (s *Session) World() *engine.World { return s.world }

func (s *Session) Catalog() *catalog.Catalog { return s.catalog }
