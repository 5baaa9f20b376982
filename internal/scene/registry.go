// Package scene owns the authoritative mapping between engine bodies and
// domain objects. All scene mutation goes through the Registry; it
// guarantees that its records and the engine world never disagree about
// which non-boundary bodies exist.
package scene

import (
	"errors"
	"fmt"

	"github.com/san-kum/scenelab/internal/catalog"
	"github.com/san-kum/scenelab/internal/engine"
)

var (
	ErrDanglingConstraint = errors.New("dangling constraint reference")
	ErrUnknownObject      = errors.New("unknown object")
)

// ObjectID is the opaque public handle for a tracked scene object. Raw
// engine ids never leave this package.
type ObjectID int

// NoObject marks an absent constraint endpoint.
const NoObject ObjectID = 0

type ConstraintID int

// Object is a domain record exclusively owned by the Registry. It exists
// iff its referenced body exists in the engine world.
type Object struct {
	ID              ObjectID
	DefinitionID    string
	InitialPosition engine.Vec2
	InitialAngle    float64
	Emitter         *catalog.EmitterSpec

	bodyID int
}

type Constraint struct {
	ID   ConstraintID
	Kind engine.ConstraintKind
	A    ObjectID
	B    ObjectID // NoObject when anchored to a world point

	constraintID int
}

// Overrides adjusts a freshly placed object; nil fields keep the
// definition's defaults.
type Overrides struct {
	Angle    *float64
	Velocity *engine.Vec2
	Static   *bool
}

type Registry struct {
	world *engine.World

	nextObject     ObjectID
	nextConstraint ConstraintID

	objects         map[ObjectID]*Object
	objectOrder     []ObjectID
	byBody          map[int]ObjectID
	constraints     map[ConstraintID]*Constraint
	constraintOrder []ConstraintID

	boundaries []int
}

func NewRegistry(world *engine.World) *Registry {
	return &Registry{
		world:          world,
		nextObject:     1,
		nextConstraint: 1,
		objects:        make(map[ObjectID]*Object),
		byBody:         make(map[int]ObjectID),
		constraints:    make(map[ConstraintID]*Constraint),
	}
}

// AddBoundaries builds the floor and side walls of the simulation surface.
// Boundary bodies are never tracked as scene objects and survive Clear.
func (r *Registry) AddBoundaries(width, height, thickness float64) {
	mat := engine.Material{Density: 1, Friction: 0.6, Restitution: 0.1, Static: true, Label: "boundary"}
	walls := []struct {
		shape engine.Shape
		pos   engine.Vec2
	}{
		{engine.Shape{Kind: engine.ShapeRectangle, Width: width, Height: thickness},
			engine.Vec2{X: width / 2, Y: height + thickness/2}},
		{engine.Shape{Kind: engine.ShapeRectangle, Width: thickness, Height: height},
			engine.Vec2{X: -thickness / 2, Y: height / 2}},
		{engine.Shape{Kind: engine.ShapeRectangle, Width: thickness, Height: height},
			engine.Vec2{X: width + thickness/2, Y: height / 2}},
	}
	for _, wl := range walls {
		b := r.world.AddBody(wl.shape, mat, wl.pos)
		b.Boundary = true
		r.boundaries = append(r.boundaries, b.ID())
	}
}

// AddObject creates an engine body from the definition plus overrides and
// registers it. On any failure nothing is mutated.
func (r *Registry) AddObject(def catalog.Definition, pos engine.Vec2, ov Overrides) (*Object, error) {
	shape, err := def.Shape.Build()
	if err != nil {
		return nil, err
	}
	mat := def.BuildMaterial()
	if ov.Static != nil {
		mat.Static = *ov.Static
	}

	body := r.world.AddBody(shape, mat, pos)
	if ov.Angle != nil {
		body.Angle = *ov.Angle
	}
	if ov.Velocity != nil && !body.Static() {
		body.Velocity = *ov.Velocity
	}

	obj := &Object{
		ID:              r.nextObject,
		DefinitionID:    def.ID,
		InitialPosition: pos,
		InitialAngle:    body.Angle,
		bodyID:          body.ID(),
	}
	if def.Emitter != nil {
		e := *def.Emitter
		obj.Emitter = &e
	}
	r.nextObject++
	r.objects[obj.ID] = obj
	r.objectOrder = append(r.objectOrder, obj.ID)
	r.byBody[body.ID()] = obj.ID
	return obj, nil
}

// RemoveObject cascades: every constraint touching the object goes first,
// then the engine body, then the record. Unknown ids are a no-op.
func (r *Registry) RemoveObject(id ObjectID) {
	obj, ok := r.objects[id]
	if !ok {
		return
	}
	for _, cid := range append([]ConstraintID(nil), r.constraintOrder...) {
		c := r.constraints[cid]
		if c.A == id || c.B == id {
			r.RemoveConstraint(cid)
		}
	}
	r.world.RemoveBody(obj.bodyID)
	delete(r.byBody, obj.bodyID)
	delete(r.objects, id)
	r.objectOrder = removeObjectID(r.objectOrder, id)
}

// ConstraintParams describes a constraint between tracked objects. B may be
// NoObject to anchor A at Anchor. A zero Length defaults to the current
// distance between the endpoints.
type ConstraintParams struct {
	Kind      engine.ConstraintKind
	A         ObjectID
	B         ObjectID
	Anchor    engine.Vec2
	Length    float64
	Stiffness float64
}

func (r *Registry) AddConstraint(p ConstraintParams) (*Constraint, error) {
	objA, ok := r.objects[p.A]
	if !ok {
		return nil, fmt.Errorf("%w: endpoint a=%d", ErrDanglingConstraint, p.A)
	}
	bodyB := engine.NoBody
	anchor := p.Anchor
	if p.B != NoObject {
		objB, ok := r.objects[p.B]
		if !ok {
			return nil, fmt.Errorf("%w: endpoint b=%d", ErrDanglingConstraint, p.B)
		}
		bodyB = objB.bodyID
		anchor = engine.Vec2{}
	}

	length := p.Length
	if length == 0 {
		if bodyB != engine.NoBody {
			length = r.world.Body(bodyB).Position.Sub(r.world.Body(objA.bodyID).Position).Len()
		} else {
			length = anchor.Sub(r.world.Body(objA.bodyID).Position).Len()
		}
	}
	stiffness := p.Stiffness
	if stiffness == 0 {
		stiffness = 10
	}

	ec := r.world.AddConstraint(engine.Constraint{
		Kind:        p.Kind,
		BodyA:       objA.bodyID,
		BodyB:       bodyB,
		WorldAnchor: anchor,
		Length:      length,
		Stiffness:   stiffness,
		Damping:     0.5,
	})

	c := &Constraint{
		ID:           r.nextConstraint,
		Kind:         p.Kind,
		A:            p.A,
		B:            p.B,
		constraintID: ec.ID(),
	}
	r.nextConstraint++
	r.constraints[c.ID] = c
	r.constraintOrder = append(r.constraintOrder, c.ID)
	return c, nil
}

func (r *Registry) RemoveConstraint(id ConstraintID) {
	c, ok := r.constraints[id]
	if !ok {
		return
	}
	r.world.RemoveConstraint(c.constraintID)
	delete(r.constraints, id)
	r.constraintOrder = removeConstraintID(r.constraintOrder, id)
}

// Clear removes every tracked object and constraint. Boundary bodies are a
// protected subset and stay in the world.
func (r *Registry) Clear() {
	for _, cid := range append([]ConstraintID(nil), r.constraintOrder...) {
		r.RemoveConstraint(cid)
	}
	for _, oid := range append([]ObjectID(nil), r.objectOrder...) {
		obj := r.objects[oid]
		r.world.RemoveBody(obj.bodyID)
		delete(r.byBody, obj.bodyID)
		delete(r.objects, oid)
	}
	r.objectOrder = r.objectOrder[:0]
}

// ResetPosition restores one object's recorded initial placement and zeroes
// its motion. Unknown ids are a no-op.
func (r *Registry) ResetPosition(id ObjectID) {
	obj, ok := r.objects[id]
	if !ok {
		return
	}
	b := r.world.Body(obj.bodyID)
	b.Position = obj.InitialPosition
	b.Angle = obj.InitialAngle
	b.Velocity = engine.Vec2{}
	b.AngularVelocity = 0
}

func (r *Registry) ResetPositions() {
	for _, id := range r.objectOrder {
		r.ResetPosition(id)
	}
}

func (r *Registry) Object(id ObjectID) (*Object, bool) {
	obj, ok := r.objects[id]
	return obj, ok
}

// Objects returns all tracked objects in creation order.
func (r *Registry) Objects() []*Object {
	out := make([]*Object, 0, len(r.objectOrder))
	for _, id := range r.objectOrder {
		out = append(out, r.objects[id])
	}
	return out
}

func (r *Registry) Constraints() []*Constraint {
	out := make([]*Constraint, 0, len(r.constraintOrder))
	for _, id := range r.constraintOrder {
		out = append(out, r.constraints[id])
	}
	return out
}

// Body returns the live engine body backing an object.
func (r *Registry) Body(id ObjectID) (*engine.Body, bool) {
	obj, ok := r.objects[id]
	if !ok {
		return nil, false
	}
	return r.world.Body(obj.bodyID), true
}

// ByBody maps an engine body id back to its object handle.
func (r *Registry) ByBody(bodyID int) (ObjectID, bool) {
	id, ok := r.byBody[bodyID]
	return id, ok
}

// ObjectAt returns the topmost tracked object containing the point.
// Boundary bodies are ignored.
func (r *Registry) ObjectAt(p engine.Vec2) (ObjectID, bool) {
	b := r.world.BodyAt(p)
	if b == nil || b.Boundary {
		return NoObject, false
	}
	return r.ByBody(b.ID())
}

func (r *Registry) SetStatic(id ObjectID, static bool) error {
	obj, ok := r.objects[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownObject, id)
	}
	r.world.SetStatic(obj.bodyID, static)
	return nil
}

func (r *Registry) SetPosition(id ObjectID, pos engine.Vec2) error {
	b, ok := r.Body(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownObject, id)
	}
	b.Position = pos
	return nil
}

func (r *Registry) SetVelocity(id ObjectID, vel engine.Vec2) error {
	b, ok := r.Body(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownObject, id)
	}
	b.Velocity = vel
	return nil
}

func (r *Registry) SetEmitterStrength(id ObjectID, strength float64) error {
	obj, ok := r.objects[id]
	if !ok || obj.Emitter == nil {
		return fmt.Errorf("%w: %d has no emitter", ErrUnknownObject, id)
	}
	obj.Emitter.Strength = strength
	return nil
}

func (r *Registry) Count() int           { return len(r.objects) }
func (r *Registry) ConstraintCount() int { return len(r.constraints) }

func removeObjectID(ids []ObjectID, id ObjectID) []ObjectID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func removeConstraintID(ids []ConstraintID, id ConstraintID) []ConstraintID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
