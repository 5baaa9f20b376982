// Package forcefield evaluates non-contact emitter forces (fans, magnets,
// gravity wells, rockets) against every eligible body once per tick, before
// integration. The evaluation is deterministic: identical positions, masses
// and emitter parameters produce identical forces on every call.
package forcefield

import (
	"github.com/san-kum/scenelab/internal/catalog"
	"github.com/san-kum/scenelab/internal/engine"
	"github.com/san-kum/scenelab/internal/scene"
)

// Falloff is the distance law for one emitter type. Force is zero outside
// (MinDistance, MaxDistance). Linear laws scale strength by
// 1 - d/MaxDistance; inverse-square laws by mass·Gain/d². Directional laws
// push along the emitter's configured angle, the rest attract toward the
// emitter.
type Falloff struct {
	MinDistance   float64
	MaxDistance   float64
	InverseSquare bool
	MassScaled    bool
	Directional   bool
	Gain          float64
}

// FanRadius is the fan's falloff cutoff in world units.
const FanRadius = 300

// Falloffs is the per-type law table. The laws are configuration of the
// emitter type, not of individual objects.
var Falloffs = map[catalog.EmitterType]Falloff{
	catalog.EmitterFan: {
		MaxDistance: FanRadius,
		Directional: true,
	},
	catalog.EmitterGravityWell: {
		MinDistance:   30,
		MaxDistance:   250,
		InverseSquare: true,
		MassScaled:    true,
		Gain:          50000,
	},
	catalog.EmitterMagnet: {
		MinDistance:   20,
		MaxDistance:   220,
		InverseSquare: true,
		MassScaled:    true,
		Gain:          30000,
	},
	catalog.EmitterRocket: {
		MaxDistance: 160,
		Directional: true,
	},
}

// ForceOn computes the force an emitter exerts on a body at bodyPos with
// the given mass. Pure; returns the zero vector outside the law's distance
// band.
func ForceOn(spec catalog.EmitterSpec, emitterPos, bodyPos engine.Vec2, bodyMass float64) engine.Vec2 {
	law, ok := Falloffs[spec.Type]
	if !ok {
		return engine.Vec2{}
	}

	delta := emitterPos.Sub(bodyPos)
	dist := delta.Len()
	if dist >= law.MaxDistance {
		return engine.Vec2{}
	}
	if law.MinDistance > 0 && dist <= law.MinDistance {
		return engine.Vec2{}
	}

	var magnitude float64
	if law.InverseSquare {
		magnitude = spec.Strength * law.Gain / (dist * dist)
		if law.MassScaled {
			magnitude *= bodyMass
		}
	} else {
		magnitude = spec.Strength * (1 - dist/law.MaxDistance)
	}

	if law.Directional {
		return engine.FromDegrees(spec.Direction).Scale(magnitude)
	}
	// attractive: from body toward emitter
	return delta.Scale(magnitude / dist)
}

// Evaluator walks the registry's emitters each tick and perturbs the force
// accumulators of every other dynamic, non-boundary body in range.
type Evaluator struct {
	registry *scene.Registry
}

func New(registry *scene.Registry) *Evaluator {
	return &Evaluator{registry: registry}
}

// Hook adapts the evaluator to the engine's pre-integration hook slot.
func (e *Evaluator) Hook() engine.Hook {
	return func(w *engine.World, dt float64) {
		e.Apply(w)
	}
}

// Apply runs one evaluation pass. Forces are accumulated into the engine's
// per-tick accumulator, which the engine clears after integration, so the
// pass never compounds across ticks.
func (e *Evaluator) Apply(w *engine.World) {
	for _, obj := range e.registry.Objects() {
		if obj.Emitter == nil {
			continue
		}
		emitterBody, ok := e.registry.Body(obj.ID)
		if !ok {
			continue
		}
		spec := *obj.Emitter
		for _, b := range w.Bodies() {
			if b.ID() == emitterBody.ID() || b.Static() || b.Boundary {
				continue
			}
			f := ForceOn(spec, emitterBody.Position, b.Position, b.Mass)
			if f != (engine.Vec2{}) {
				b.ApplyForce(f)
			}
		}
	}
}
