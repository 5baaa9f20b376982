// Package engine implements the rigid-body collaborator: a small
// deterministic 2D world with fixed-timestep integration, impulse-based
// contact resolution, distance constraints, and pre/post integration hooks.
//
// The world owns bodies and constraints and assigns their numeric ids.
// Callers drive it one tick at a time via [World.Step]; per-tick force
// accumulators are cleared after each integration, so non-contact forces
// must be re-applied every tick from a pre-step hook.
package engine

const (
	// TicksPerSecond is the fixed stepping rate. One Step advances the
	// world by 1/TicksPerSecond seconds before time scaling.
	TicksPerSecond = 60

	// GravityAccel is the downward acceleration at gravity scale 1.0,
	// in world units (pixels) per second squared; 100 px per metre.
	GravityAccel = 981.0
)

// Hook runs synchronously inside Step, before or after integration.
type Hook func(w *World, dt float64)

type World struct {
	nextBodyID       int
	nextConstraintID int

	bodies          map[int]*Body
	bodyOrder       []int
	constraints     map[int]*Constraint
	constraintOrder []int

	gravityScale float64
	timeScale    float64

	preHooks  []Hook
	postHooks []Hook

	tick uint64
	time float64
}

func NewWorld() *World {
	return &World{
		nextBodyID:       1,
		nextConstraintID: 1,
		bodies:           make(map[int]*Body),
		constraints:      make(map[int]*Constraint),
		gravityScale:     1.0,
		timeScale:        1.0,
	}
}

// AddBody creates a body from a shape primitive and material and returns it.
// Mass is derived from density and shape area; static bodies get infinite
// effective mass.
func (w *World) AddBody(shape Shape, mat Material, pos Vec2) *Body {
	mass := mat.Density * shape.Area()
	if mass <= 0 {
		mass = 1
	}
	b := &Body{
		id:          w.nextBodyID,
		Shape:       shape,
		Label:       mat.Label,
		Tint:        mat.Tint,
		Sensor:      mat.Sensor,
		Position:    pos,
		Mass:        mass,
		invMass:     1 / mass,
		Friction:    mat.Friction,
		Restitution: mat.Restitution,
		AirDrag:     mat.AirDrag,
		static:      mat.Static,
	}
	if b.static {
		b.invMass = 0
	}
	w.nextBodyID++
	w.bodies[b.id] = b
	w.bodyOrder = append(w.bodyOrder, b.id)
	return b
}

// RemoveBody erases the body and every constraint attached to it. Unknown
// ids are ignored.
func (w *World) RemoveBody(id int) {
	if _, ok := w.bodies[id]; !ok {
		return
	}
	for _, cid := range append([]int(nil), w.constraintOrder...) {
		c := w.constraints[cid]
		if c.BodyA == id || c.BodyB == id {
			w.RemoveConstraint(cid)
		}
	}
	delete(w.bodies, id)
	w.bodyOrder = removeID(w.bodyOrder, id)
}

func (w *World) Body(id int) *Body { return w.bodies[id] }

// Bodies returns all bodies in insertion order. The slice is freshly
// allocated; the bodies are live.
func (w *World) Bodies() []*Body {
	out := make([]*Body, 0, len(w.bodyOrder))
	for _, id := range w.bodyOrder {
		out = append(out, w.bodies[id])
	}
	return out
}

// BodyAt returns the most recently added body containing the point, or nil.
func (w *World) BodyAt(p Vec2) *Body {
	for i := len(w.bodyOrder) - 1; i >= 0; i-- {
		b := w.bodies[w.bodyOrder[i]]
		if b.Contains(p) {
			return b
		}
	}
	return nil
}

// AddConstraint registers a constraint between existing bodies. BodyB may
// be NoBody to anchor body A to c.WorldAnchor.
func (w *World) AddConstraint(c Constraint) *Constraint {
	c.id = w.nextConstraintID
	w.nextConstraintID++
	stored := c
	w.constraints[stored.id] = &stored
	w.constraintOrder = append(w.constraintOrder, stored.id)
	return &stored
}

func (w *World) RemoveConstraint(id int) {
	if _, ok := w.constraints[id]; !ok {
		return
	}
	delete(w.constraints, id)
	w.constraintOrder = removeID(w.constraintOrder, id)
}

func (w *World) Constraint(id int) *Constraint { return w.constraints[id] }

func (w *World) Constraints() []*Constraint {
	out := make([]*Constraint, 0, len(w.constraintOrder))
	for _, id := range w.constraintOrder {
		out = append(out, w.constraints[id])
	}
	return out
}

// SetStatic toggles a body between static and dynamic. Becoming static
// zeroes its motion.
func (w *World) SetStatic(id int, static bool) {
	b := w.bodies[id]
	if b == nil || b.static == static {
		return
	}
	b.static = static
	if static {
		b.invMass = 0
		b.Velocity = Vec2{}
		b.AngularVelocity = 0
		b.force = Vec2{}
		b.torque = 0
	} else {
		b.invMass = 1 / b.Mass
	}
}

func (w *World) SetGravity(scale float64) { w.gravityScale = scale }
func (w *World) Gravity() float64         { return w.gravityScale }

func (w *World) SetTimeScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	w.timeScale = scale
}
func (w *World) TimeScale() float64 { return w.timeScale }

func (w *World) OnBeforeStep(h Hook) { w.preHooks = append(w.preHooks, h) }
func (w *World) OnAfterStep(h Hook)  { w.postHooks = append(w.postHooks, h) }

func (w *World) Tick() uint64 { return w.tick }
func (w *World) Time() float64 { return w.time }

// Step advances the world by exactly one fixed tick: pre hooks, gravity and
// constraint forces, integration, contact resolution, post hooks. The force
// accumulators are cleared once integration has consumed them.
func (w *World) Step() {
	dt := (1.0 / TicksPerSecond) * w.timeScale

	for _, h := range w.preHooks {
		h(w, dt)
	}

	gravity := Vec2{0, GravityAccel * w.gravityScale}
	for _, id := range w.bodyOrder {
		b := w.bodies[id]
		if b.static {
			continue
		}
		b.ApplyForce(gravity.Scale(b.Mass))
	}

	w.applyConstraintForces()

	for _, id := range w.bodyOrder {
		b := w.bodies[id]
		b.lastForce = b.force
		if !b.static {
			b.Velocity = b.Velocity.Add(b.force.Scale(b.invMass * dt))
			b.Velocity = b.Velocity.Scale(1 - b.AirDrag)
			b.Position = b.Position.Add(b.Velocity.Scale(dt))
			b.AngularVelocity += b.torque * b.invMass * dt
			b.AngularVelocity *= 1 - b.AirDrag
			b.Angle += b.AngularVelocity * dt
		}
		b.force = Vec2{}
		b.torque = 0
	}

	w.resolveContacts()

	for _, h := range w.postHooks {
		h(w, dt)
	}

	w.tick++
	w.time += dt
}

func removeID(ids []int, id int) []int {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
