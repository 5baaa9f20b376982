// Package physstate derives human-meaningful kinematic and energy readouts
// from raw body state. Compute is a pure function and is intended to run
// once per frame for the selected object only; its cost never depends on
// the total body count.
package physstate

import (
	"math"

	"github.com/san-kum/scenelab/internal/engine"
)

const (
	// PixelsPerMeter converts world units to metres before energy math.
	PixelsPerMeter = 100.0

	// EnergyDisplayScale makes energy values legible at UI scale. It is a
	// presentation convention, not a physical law, and is applied to every
	// energy figure shown or graphed.
	EnergyDisplayScale = 100.0

	// StandardGravity is g at gravity scale 1.0, in m/s².
	StandardGravity = 9.81
)

// State is the derived per-frame readout for one body. Velocity, speed and
// momentum use a per-second convention; energies use the display
// convention above.
type State struct {
	Position        engine.Vec2
	Velocity        engine.Vec2
	Acceleration    engine.Vec2
	Angle           float64
	AngularVelocity float64
	Force           engine.Vec2
	Mass            float64
	Speed           float64
	KineticEnergy   float64
	PotentialEnergy float64
	TotalEnergy     float64
	Momentum        engine.Vec2
}

// Compute derives the readout for a body. referenceHeight is the y of the
// fixed reference plane (the simulation floor); height above it counts
// toward potential energy, which is clamped to zero below the plane.
func Compute(b *engine.Body, gravityScale, referenceHeight float64) State {
	speed := b.Velocity.Len()

	speedM := speed / PixelsPerMeter
	ke := 0.5 * b.Mass * speedM * speedM * EnergyDisplayScale

	heightM := (referenceHeight - b.Position.Y) / PixelsPerMeter
	pe := b.Mass * gravityScale * StandardGravity * heightM * EnergyDisplayScale
	pe = math.Max(pe, 0)

	var accel engine.Vec2
	if !b.Static() && b.Mass > 0 {
		accel = b.LastForce().Scale(1 / b.Mass)
	}

	return State{
		Position:        b.Position,
		Velocity:        b.Velocity,
		Acceleration:    accel,
		Angle:           b.Angle,
		AngularVelocity: b.AngularVelocity,
		Force:           b.LastForce(),
		Mass:            b.Mass,
		Speed:           speed,
		KineticEnergy:   ke,
		PotentialEnergy: pe,
		TotalEnergy:     ke + pe,
		Momentum:        b.Velocity.Scale(b.Mass),
	}
}
