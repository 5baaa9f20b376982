package engine

import "math"

type ShapeKind int

const (
	ShapeRectangle ShapeKind = iota
	ShapeCircle
	ShapePolygon
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRectangle:
		return "rectangle"
	case ShapeCircle:
		return "circle"
	case ShapePolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Shape is a closed primitive variant. Exactly the fields for its kind are
// meaningful: Width/Height for rectangles, Radius for circles, Vertices
// (local coordinates, counter-clockwise) for polygons.
type Shape struct {
	Kind     ShapeKind
	Width    float64
	Height   float64
	Radius   float64
	Vertices []Vec2
}

// Area returns the enclosed area, used to derive mass from density.
func (s Shape) Area() float64 {
	switch s.Kind {
	case ShapeRectangle:
		return s.Width * s.Height
	case ShapeCircle:
		return math.Pi * s.Radius * s.Radius
	case ShapePolygon:
		// shoelace formula
		a := 0.0
		n := len(s.Vertices)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			a += s.Vertices[i].X*s.Vertices[j].Y - s.Vertices[j].X*s.Vertices[i].Y
		}
		return math.Abs(a) / 2
	default:
		return 0
	}
}

// BoundingRadius returns the radius of the smallest centered circle
// containing the shape, used for broad checks and point queries.
func (s Shape) BoundingRadius() float64 {
	switch s.Kind {
	case ShapeRectangle:
		return math.Hypot(s.Width/2, s.Height/2)
	case ShapeCircle:
		return s.Radius
	case ShapePolygon:
		r := 0.0
		for _, v := range s.Vertices {
			r = math.Max(r, v.Len())
		}
		return r
	default:
		return 0
	}
}

// Material bundles the physical and render parameters a body is built from.
type Material struct {
	Density     float64
	Friction    float64
	Restitution float64
	AirDrag     float64
	Static      bool
	Sensor      bool
	Label       string
	Tint        string
}

// Body is a rigid body owned by the World. Engine ids are assigned on
// creation and never reused within a World's lifetime.
type Body struct {
	id int

	Shape    Shape
	Label    string
	Tint     string
	Sensor   bool
	Boundary bool

	Position        Vec2
	Velocity        Vec2
	Angle           float64
	AngularVelocity float64

	Mass        float64
	invMass     float64
	Friction    float64
	Restitution float64
	AirDrag     float64

	static bool

	// per-tick accumulator, cleared by the world after integration
	force  Vec2
	torque float64

	// snapshot of force at the moment of the last integration, kept for
	// post-step readouts after the accumulator is cleared
	lastForce Vec2
}

// LastForce returns the total force consumed by the most recent
// integration, including gravity.
func (b *Body) LastForce() Vec2 { return b.lastForce }

func (b *Body) ID() int { return b.id }

func (b *Body) Static() bool { return b.static }

// ApplyForce accumulates a force for the current tick. Forces on static
// bodies are ignored.
func (b *Body) ApplyForce(f Vec2) {
	if b.static {
		return
	}
	b.force = b.force.Add(f)
}

func (b *Body) ApplyTorque(t float64) {
	if b.static {
		return
	}
	b.torque += t
}

// Bounds returns the axis-aligned bounding box of the body at its current
// position and angle as (min, max) corners.
func (b *Body) Bounds() (Vec2, Vec2) {
	switch b.Shape.Kind {
	case ShapeCircle:
		r := b.Shape.Radius
		return Vec2{b.Position.X - r, b.Position.Y - r}, Vec2{b.Position.X + r, b.Position.Y + r}
	case ShapeRectangle:
		hw, hh := b.Shape.Width/2, b.Shape.Height/2
		c, s := math.Abs(math.Cos(b.Angle)), math.Abs(math.Sin(b.Angle))
		ex := hw*c + hh*s
		ey := hw*s + hh*c
		return Vec2{b.Position.X - ex, b.Position.Y - ey}, Vec2{b.Position.X + ex, b.Position.Y + ey}
	default:
		min := Vec2{math.Inf(1), math.Inf(1)}
		max := Vec2{math.Inf(-1), math.Inf(-1)}
		c, s := math.Cos(b.Angle), math.Sin(b.Angle)
		for _, v := range b.Shape.Vertices {
			p := Vec2{b.Position.X + v.X*c - v.Y*s, b.Position.Y + v.X*s + v.Y*c}
			min.X = math.Min(min.X, p.X)
			min.Y = math.Min(min.Y, p.Y)
			max.X = math.Max(max.X, p.X)
			max.Y = math.Max(max.Y, p.Y)
		}
		return min, max
	}
}

// Contains reports whether a world point lies inside the body.
func (b *Body) Contains(p Vec2) bool {
	d := p.Sub(b.Position)
	switch b.Shape.Kind {
	case ShapeCircle:
		return d.LenSq() <= b.Shape.Radius*b.Shape.Radius
	case ShapeRectangle:
		// rotate into body frame
		c, s := math.Cos(-b.Angle), math.Sin(-b.Angle)
		lx := d.X*c - d.Y*s
		ly := d.X*s + d.Y*c
		return math.Abs(lx) <= b.Shape.Width/2 && math.Abs(ly) <= b.Shape.Height/2
	case ShapePolygon:
		c, s := math.Cos(-b.Angle), math.Sin(-b.Angle)
		lp := Vec2{d.X*c - d.Y*s, d.X*s + d.Y*c}
		return pointInPolygon(lp, b.Shape.Vertices)
	default:
		return false
	}
}

func pointInPolygon(p Vec2, verts []Vec2) bool {
	inside := false
	n := len(verts)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi, vj := verts[i], verts[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) &&
			p.X < (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
	}
	return inside
}
