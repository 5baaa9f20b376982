package experiment

import (
	"errors"
	"testing"

	"github.com/san-kum/scenelab/internal/catalog"
	"github.com/san-kum/scenelab/internal/engine"
	"github.com/san-kum/scenelab/internal/scene"
)

func TestTickRespectsPauseAndStepOnce(t *testing.T) {
	s := NewSession(testCatalog(t), 800, 600)

	s.Pause()
	before := s.World().Tick()
	s.Tick()
	s.Tick()
	if s.World().Tick() != before {
		t.Error("Tick advanced the world while paused")
	}

	s.StepOnce()
	if s.World().Tick() != before+1 {
		t.Error("StepOnce must advance exactly one frame while paused")
	}

	s.Resume()
	s.Tick()
	if s.World().Tick() != before+2 {
		t.Error("Tick did not advance after resume")
	}
}

func TestDropUnknownDefinitionLeavesSceneUntouched(t *testing.T) {
	s := NewSession(testCatalog(t), 800, 600)

	_, err := s.Drop("ghost", engine.Vec2{X: 100, Y: 100})
	if !errors.Is(err, catalog.ErrUnknownDefinition) {
		t.Fatalf("expected ErrUnknownDefinition, got %v", err)
	}
	if s.Registry().Count() != 0 {
		t.Error("failed drop created an object")
	}
}

func TestDropPlacesObject(t *testing.T) {
	s := NewSession(testCatalog(t), 800, 600)

	obj, err := s.Drop("ball", engine.Vec2{X: 150, Y: 200})
	if err != nil {
		t.Fatal(err)
	}
	b, ok := s.Registry().Body(obj.ID)
	if !ok {
		t.Fatal("dropped object has no body")
	}
	if b.Position != (engine.Vec2{X: 150, Y: 200}) {
		t.Errorf("body at %v", b.Position)
	}
}

func TestSelectedStateTracksSelection(t *testing.T) {
	s := NewSession(testCatalog(t), 800, 600)
	obj, err := s.Drop("ball", engine.Vec2{X: 100, Y: 100})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := s.SelectedState(); ok {
		t.Error("state available before any selection")
	}

	s.Select(obj.ID)
	if _, ok := s.SelectedState(); ok {
		t.Error("selection must only take effect at the next tick boundary")
	}

	s.Tick()
	st, ok := s.SelectedState()
	if !ok {
		t.Fatal("no state after a tick with a selection")
	}
	if st.Mass <= 0 {
		t.Errorf("mass = %f", st.Mass)
	}
	if s.Graph().Len() != 1 {
		t.Errorf("graph samples = %d", s.Graph().Len())
	}
}

func TestSelectRejectsUnknownObject(t *testing.T) {
	s := NewSession(testCatalog(t), 800, 600)
	obj, err := s.Drop("ball", engine.Vec2{X: 100, Y: 100})
	if err != nil {
		t.Fatal(err)
	}
	s.Select(obj.ID)

	s.Select(scene.ObjectID(9999))
	if s.Selection() != obj.ID {
		t.Error("selecting an unknown id must keep the current selection")
	}
}

func TestRemoveClearsSelectionAndState(t *testing.T) {
	s := NewSession(testCatalog(t), 800, 600)
	obj, err := s.Drop("ball", engine.Vec2{X: 100, Y: 100})
	if err != nil {
		t.Fatal(err)
	}
	s.Select(obj.ID)
	s.Tick()

	s.Remove(obj.ID)
	if s.Selection() != scene.NoObject {
		t.Error("selection survived removal")
	}
	if _, ok := s.SelectedState(); ok {
		t.Error("state readout survived removal")
	}

	s.Tick() // must not panic with a stale selection
}

func TestResetRestoresPositionsAndKeepsSelection(t *testing.T) {
	s := NewSession(testCatalog(t), 800, 600)
	obj, err := s.Drop("ball", engine.Vec2{X: 100, Y: 100})
	if err != nil {
		t.Fatal(err)
	}
	s.Select(obj.ID)

	for i := 0; i < 30; i++ {
		s.Tick()
	}
	b, _ := s.Registry().Body(obj.ID)
	if b.Position.Y == 100 {
		t.Fatal("body never fell; gravity broken")
	}

	s.Reset()
	if b.Position != (engine.Vec2{X: 100, Y: 100}) {
		t.Errorf("position after reset = %v", b.Position)
	}
	if b.Velocity != (engine.Vec2{}) {
		t.Errorf("velocity after reset = %v", b.Velocity)
	}
	if s.Selection() != obj.ID {
		t.Error("reset dropped the selection")
	}
	if s.Graph().Len() != 0 {
		t.Error("reset kept stale graph samples")
	}
}

func TestSelectAtIgnoresBoundaries(t *testing.T) {
	s := NewSession(testCatalog(t), 800, 600)

	// the floor spans the bottom edge; clicking it selects nothing
	if _, ok := s.SelectAt(engine.Vec2{X: 400, Y: 620}); ok {
		t.Error("boundary body was selectable")
	}

	obj, err := s.Drop("crate", engine.Vec2{X: 300, Y: 200})
	if err != nil {
		t.Fatal(err)
	}
	id, ok := s.SelectAt(engine.Vec2{X: 300, Y: 200})
	if !ok || id != obj.ID {
		t.Errorf("SelectAt = %v, %v", id, ok)
	}
	if s.Selection() != obj.ID {
		t.Error("SelectAt did not commit the selection")
	}
}

func TestTickContextSnapshotsSettings(t *testing.T) {
	s := NewSession(testCatalog(t), 800, 600)
	obj, err := s.Drop("ball", engine.Vec2{X: 100, Y: 100})
	if err != nil {
		t.Fatal(err)
	}
	s.Select(obj.ID)

	settings := s.Settings()
	settings.Trails = false
	s.SetSettings(settings)
	s.Tick()

	if len(s.OverlayFrame().Trails) != 0 {
		t.Error("frame carried trails after the toggle was committed")
	}
}
