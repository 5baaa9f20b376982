package engine

import "math"

// contact is a single resolved collision between two bodies.
type contact struct {
	a, b        *Body
	normal      Vec2 // from a toward b
	penetration float64
}

const (
	correctionPercent = 0.8
	penetrationSlop   = 0.02
)

func (w *World) resolveContacts() {
	n := len(w.bodyOrder)
	for i := 0; i < n; i++ {
		a := w.bodies[w.bodyOrder[i]]
		for j := i + 1; j < n; j++ {
			b := w.bodies[w.bodyOrder[j]]
			if a.static && b.static {
				continue
			}
			if a.Sensor || b.Sensor {
				continue
			}
			if c, ok := collide(a, b); ok {
				resolveContact(c)
			}
		}
	}
}

func collide(a, b *Body) (contact, bool) {
	switch {
	case a.Shape.Kind == ShapeCircle && b.Shape.Kind == ShapeCircle:
		return circleCircle(a, b)
	case a.Shape.Kind == ShapeCircle:
		c, ok := circleBox(a, b)
		return c, ok
	case b.Shape.Kind == ShapeCircle:
		c, ok := circleBox(b, a)
		c.a, c.b = a, b
		c.normal = c.normal.Scale(-1)
		return c, ok
	default:
		return boxBox(a, b)
	}
}

func circleCircle(a, b *Body) (contact, bool) {
	d := b.Position.Sub(a.Position)
	rsum := a.Shape.Radius + b.Shape.Radius
	distSq := d.LenSq()
	if distSq >= rsum*rsum {
		return contact{}, false
	}
	dist := math.Sqrt(distSq)
	normal := Vec2{1, 0}
	if dist > 1e-9 {
		normal = d.Scale(1 / dist)
	}
	return contact{a: a, b: b, normal: normal, penetration: rsum - dist}, true
}

// circleBox treats rectangles and polygons as boxes via their bounds; the
// circle center is clamped to the box to find the closest point.
func circleBox(circle, box *Body) (contact, bool) {
	min, max := box.Bounds()
	closest := Vec2{
		math.Max(min.X, math.Min(circle.Position.X, max.X)),
		math.Max(min.Y, math.Min(circle.Position.Y, max.Y)),
	}
	d := closest.Sub(circle.Position)
	r := circle.Shape.Radius
	if d.LenSq() >= r*r {
		return contact{}, false
	}
	dist := d.Len()
	var normal Vec2
	var penetration float64
	if dist > 1e-9 {
		normal = d.Scale(1 / dist)
		penetration = r - dist
	} else {
		// center inside the box: push out along the shallowest axis
		left := circle.Position.X - min.X
		right := max.X - circle.Position.X
		top := circle.Position.Y - min.Y
		bottom := max.Y - circle.Position.Y
		least := math.Min(math.Min(left, right), math.Min(top, bottom))
		switch least {
		case left:
			normal = Vec2{-1, 0}
		case right:
			normal = Vec2{1, 0}
		case top:
			normal = Vec2{0, -1}
		default:
			normal = Vec2{0, 1}
		}
		penetration = r + least
	}
	return contact{a: circle, b: box, normal: normal, penetration: penetration}, true
}

func boxBox(a, b *Body) (contact, bool) {
	amin, amax := a.Bounds()
	bmin, bmax := b.Bounds()
	overlapX := math.Min(amax.X, bmax.X) - math.Max(amin.X, bmin.X)
	overlapY := math.Min(amax.Y, bmax.Y) - math.Max(amin.Y, bmin.Y)
	if overlapX <= 0 || overlapY <= 0 {
		return contact{}, false
	}
	var normal Vec2
	var penetration float64
	if overlapX < overlapY {
		penetration = overlapX
		if b.Position.X > a.Position.X {
			normal = Vec2{1, 0}
		} else {
			normal = Vec2{-1, 0}
		}
	} else {
		penetration = overlapY
		if b.Position.Y > a.Position.Y {
			normal = Vec2{0, 1}
		} else {
			normal = Vec2{0, -1}
		}
	}
	return contact{a: a, b: b, normal: normal, penetration: penetration}, true
}

func resolveContact(c contact) {
	a, b := c.a, c.b
	invSum := a.invMass + b.invMass
	if invSum == 0 {
		return
	}

	rv := b.Velocity.Sub(a.Velocity)
	velAlongNormal := rv.Dot(c.normal)
	if velAlongNormal <= 0 {
		e := math.Min(a.Restitution, b.Restitution)
		j := -(1 + e) * velAlongNormal / invSum
		impulse := c.normal.Scale(j)
		a.Velocity = a.Velocity.Sub(impulse.Scale(a.invMass))
		b.Velocity = b.Velocity.Add(impulse.Scale(b.invMass))

		// Coulomb friction along the contact tangent
		rv = b.Velocity.Sub(a.Velocity)
		tangent := rv.Sub(c.normal.Scale(rv.Dot(c.normal))).Normalized()
		jt := -rv.Dot(tangent) / invSum
		mu := math.Sqrt(a.Friction * b.Friction)
		if math.Abs(jt) > j*mu {
			jt = -j * mu * math.Copysign(1, jt)
		}
		frictionImpulse := tangent.Scale(jt)
		a.Velocity = a.Velocity.Sub(frictionImpulse.Scale(a.invMass))
		b.Velocity = b.Velocity.Add(frictionImpulse.Scale(b.invMass))
	}

	depth := c.penetration - penetrationSlop
	if depth > 0 {
		correction := c.normal.Scale(depth / invSum * correctionPercent)
		a.Position = a.Position.Sub(correction.Scale(a.invMass))
		b.Position = b.Position.Add(correction.Scale(b.invMass))
	}
}
