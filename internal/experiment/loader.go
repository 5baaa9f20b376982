// Package experiment orchestrates atomic scene transitions and owns the
// per-tick frame plumbing: the Loader replaces the whole scene from a
// declarative preset, and the Session drives the world's hooks with a
// stable per-tick context.
package experiment

import (
	"fmt"

	"github.com/san-kum/scenelab/internal/catalog"
	"github.com/san-kum/scenelab/internal/engine"
	"github.com/san-kum/scenelab/internal/scene"
)

type loaderState int

const (
	stateIdle loaderState = iota
	stateLoading
)

// ItemError records one skipped placement or constraint by its original
// preset index.
type ItemError struct {
	Index int
	Err   error
}

func (e ItemError) Error() string {
	return fmt.Sprintf("preset item %d: %v", e.Index, e.Err)
}

// LoadReport is the outcome of one load. Created maps original preset
// placement indices to object handles; skipped placements leave holes, so
// constraint resolution never sees shifted indices.
type LoadReport struct {
	PresetID           string
	Created            map[int]scene.ObjectID
	SkippedPlacements  []ItemError
	SkippedConstraints []ItemError
	Settings           *catalog.Settings
}

// Loader is a two-state machine (idle/loading). A load either fully
// replaces the scene or, when the preset is unknown, leaves it untouched.
type Loader struct {
	catalog  *catalog.Catalog
	registry *scene.Registry
	state    loaderState

	// OnCleared runs after the old scene is gone and before any new
	// entity exists; the session drops trails, selection and graph data
	// here.
	OnCleared func()
}

func NewLoader(cat *catalog.Catalog, registry *scene.Registry) *Loader {
	return &Loader{catalog: cat, registry: registry}
}

// Load resolves and instantiates a preset. An unknown preset id fails with
// no mutation; individual bad placements or constraints are skipped and
// reported while the rest of the load continues.
func (l *Loader) Load(presetID string) (*LoadReport, error) {
	if l.state == stateLoading {
		return nil, fmt.Errorf("load already in progress")
	}

	preset, err := l.catalog.ResolvePreset(presetID)
	if err != nil {
		return nil, err
	}

	l.state = stateLoading
	defer func() { l.state = stateIdle }()

	l.registry.Clear()
	if l.OnCleared != nil {
		l.OnCleared()
	}

	report := &LoadReport{
		PresetID: presetID,
		Created:  make(map[int]scene.ObjectID, len(preset.Placements)),
		Settings: preset.Settings,
	}

	for i, pl := range preset.Placements {
		def, err := l.catalog.ResolveDefinition(pl.Definition)
		if err != nil {
			report.SkippedPlacements = append(report.SkippedPlacements, ItemError{Index: i, Err: err})
			continue
		}
		ov := scene.Overrides{Angle: pl.Angle, Static: pl.Static}
		if pl.Velocity != nil {
			ov.Velocity = &engine.Vec2{X: pl.Velocity.X, Y: pl.Velocity.Y}
		}
		obj, err := l.registry.AddObject(def, engine.Vec2{X: pl.Position.X, Y: pl.Position.Y}, ov)
		if err != nil {
			report.SkippedPlacements = append(report.SkippedPlacements, ItemError{Index: i, Err: err})
			continue
		}
		report.Created[i] = obj.ID
	}

	for i, cs := range preset.Constraints {
		params, err := l.resolveConstraint(cs, report.Created)
		if err != nil {
			report.SkippedConstraints = append(report.SkippedConstraints, ItemError{Index: i, Err: err})
			continue
		}
		if _, err := l.registry.AddConstraint(params); err != nil {
			report.SkippedConstraints = append(report.SkippedConstraints, ItemError{Index: i, Err: err})
		}
	}

	return report, nil
}

func (l *Loader) resolveConstraint(cs catalog.ConstraintSpec, created map[int]scene.ObjectID) (scene.ConstraintParams, error) {
	a, ok := created[cs.A]
	if !ok {
		return scene.ConstraintParams{}, fmt.Errorf("%w: placement index %d", scene.ErrDanglingConstraint, cs.A)
	}

	params := scene.ConstraintParams{
		Kind:      constraintKind(cs.Type),
		A:         a,
		B:         scene.NoObject,
		Length:    cs.Length,
		Stiffness: cs.Stiffness,
	}
	if cs.B != nil {
		b, ok := created[*cs.B]
		if !ok {
			return scene.ConstraintParams{}, fmt.Errorf("%w: placement index %d", scene.ErrDanglingConstraint, *cs.B)
		}
		params.B = b
	} else if cs.Anchor != nil {
		params.Anchor = engine.Vec2{X: cs.Anchor.X, Y: cs.Anchor.Y}
	} else {
		return scene.ConstraintParams{}, fmt.Errorf("%w: no second endpoint", scene.ErrDanglingConstraint)
	}
	return params, nil
}

func constraintKind(t string) engine.ConstraintKind {
	switch t {
	case "spring":
		return engine.ConstraintSpring
	case "rope":
		return engine.ConstraintRope
	default:
		return engine.ConstraintPin
	}
}
