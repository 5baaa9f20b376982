package engine

type ConstraintKind int

const (
	// ConstraintPin keeps two anchor points coincident (a very stiff,
	// critically damped spring).
	ConstraintPin ConstraintKind = iota
	// ConstraintSpring pulls the anchors toward a rest length with a
	// configurable stiffness.
	ConstraintSpring
	// ConstraintRope only resists stretching beyond the rest length.
	ConstraintRope
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintPin:
		return "pin"
	case ConstraintSpring:
		return "spring"
	case ConstraintRope:
		return "rope"
	default:
		return "unknown"
	}
}

// Constraint links body A to body B, or to a fixed world point when BodyB
// is NoBody.
type Constraint struct {
	id int

	Kind        ConstraintKind
	BodyA       int
	BodyB       int
	WorldAnchor Vec2
	Length      float64
	Stiffness   float64
	Damping     float64
}

// NoBody marks an absent second endpoint.
const NoBody = -1

func (c *Constraint) ID() int { return c.id }

const pinStiffness = 60.0

func (w *World) applyConstraintForces() {
	for _, id := range w.constraintOrder {
		c := w.constraints[id]
		a := w.bodies[c.BodyA]
		if a == nil {
			continue
		}
		var bPos, bVel Vec2
		var b *Body
		if c.BodyB != NoBody {
			b = w.bodies[c.BodyB]
			if b == nil {
				continue
			}
			bPos, bVel = b.Position, b.Velocity
		} else {
			bPos = c.WorldAnchor
		}

		axis := bPos.Sub(a.Position)
		dist := axis.Len()
		if dist < 1e-9 {
			continue
		}
		dir := axis.Scale(1 / dist)
		stretch := dist - c.Length

		var k, damping float64
		switch c.Kind {
		case ConstraintPin:
			k, damping = pinStiffness, 2.0
		case ConstraintSpring:
			k, damping = c.Stiffness, c.Damping
		case ConstraintRope:
			if stretch <= 0 {
				continue
			}
			k, damping = c.Stiffness, c.Damping
		}

		relVel := bVel.Sub(a.Velocity).Dot(dir)
		mag := k*stretch + damping*relVel

		a.ApplyForce(dir.Scale(mag * a.Mass))
		if b != nil {
			b.ApplyForce(dir.Scale(-mag * b.Mass))
		}
	}
}
