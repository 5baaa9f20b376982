package catalog

// Builtin returns the catalog shipped with the binary: the standard object
// palette and the named experiments.
func Builtin() *Catalog {
	c := New()
	for _, d := range builtinDefinitions {
		if err := c.AddDefinition(d); err != nil {
			panic(err) // built-in tables must be valid
		}
	}
	for _, p := range builtinPresets {
		if err := c.AddPreset(p); err != nil {
			panic(err)
		}
	}
	return c
}

var builtinDefinitions = []Definition{
	{
		ID:    "wooden-crate",
		Label: "Wooden Crate",
		Shape: ShapeSpec{Kind: "rectangle", Width: 60, Height: 60},
		Material: MaterialSpec{
			Density: 0.002, Friction: 0.4, Restitution: 0.2, AirDrag: 0.01,
		},
		Tint: "#b8793e",
	},
	{
		ID:    "metal-box",
		Label: "Metal Box",
		Shape: ShapeSpec{Kind: "rectangle", Width: 50, Height: 50},
		Material: MaterialSpec{
			Density: 0.008, Friction: 0.2, Restitution: 0.1, AirDrag: 0.005,
		},
		Tint: "#8a8f98",
	},
	{
		ID:    "bouncy-ball",
		Label: "Bouncy Ball",
		Shape: ShapeSpec{Kind: "circle", Radius: 20},
		Material: MaterialSpec{
			Density: 0.001, Friction: 0.05, Restitution: 0.9, AirDrag: 0.005,
		},
		Tint: "#e84a5f",
	},
	{
		ID:    "bowling-ball",
		Label: "Bowling Ball",
		Shape: ShapeSpec{Kind: "circle", Radius: 25},
		Material: MaterialSpec{
			Density: 0.01, Friction: 0.3, Restitution: 0.15, AirDrag: 0.002,
		},
		Tint: "#2a363b",
	},
	{
		ID:    "billiard-ball",
		Label: "Billiard Ball",
		Shape: ShapeSpec{Kind: "circle", Radius: 15},
		Material: MaterialSpec{
			Density: 0.004, Friction: 0, Restitution: 0.9, AirDrag: 0,
		},
		Tint: "#f9ed69",
	},
	{
		ID:    "platform",
		Label: "Platform",
		Shape: ShapeSpec{Kind: "rectangle", Width: 220, Height: 20},
		Material: MaterialSpec{
			Density: 0.005, Friction: 0.6, Restitution: 0.1, Static: true,
		},
		Tint: "#555b6e",
	},
	{
		ID:    "ramp",
		Label: "Ramp",
		Shape: ShapeSpec{Kind: "polygon", Vertices: []Point{
			{X: -100, Y: 40}, {X: 100, Y: 40}, {X: 100, Y: -40},
		}},
		Material: MaterialSpec{
			Density: 0.005, Friction: 0.3, Restitution: 0.05, Static: true,
		},
		Tint: "#6a7ba2",
	},
	{
		ID:    "fan",
		Label: "Fan",
		Shape: ShapeSpec{Kind: "rectangle", Width: 40, Height: 80},
		Material: MaterialSpec{
			Density: 0.004, Friction: 0.4, Restitution: 0.1, Static: true,
		},
		Tint:    "#98d9c2",
		Emitter: &EmitterSpec{Type: EmitterFan, Strength: 0.02},
	},
	{
		ID:    "gravity-well",
		Label: "Gravity Well",
		Shape: ShapeSpec{Kind: "circle", Radius: 18},
		Material: MaterialSpec{
			Density: 0.02, Friction: 0.1, Restitution: 0, Static: true, Sensor: true,
		},
		Tint:    "#6c5b7b",
		Emitter: &EmitterSpec{Type: EmitterGravityWell, Strength: 0.0005},
	},
	{
		ID:    "magnet",
		Label: "Magnet",
		Shape: ShapeSpec{Kind: "rectangle", Width: 36, Height: 36},
		Material: MaterialSpec{
			Density: 0.015, Friction: 0.4, Restitution: 0, Static: true,
		},
		Tint:    "#c06c84",
		Emitter: &EmitterSpec{Type: EmitterMagnet, Strength: 0.001},
	},
	{
		ID:    "rocket",
		Label: "Rocket",
		Shape: ShapeSpec{Kind: "rectangle", Width: 20, Height: 50},
		Material: MaterialSpec{
			Density: 0.003, Friction: 0.2, Restitution: 0.1, AirDrag: 0.01,
		},
		Tint:    "#f67280",
		Emitter: &EmitterSpec{Type: EmitterRocket, Strength: 0.03, Direction: -90},
	},
}

var builtinPresets = []Preset{
	{
		ID:          "free-fall",
		Label:       "Free Fall",
		Description: "two bodies of different mass dropped from the same height",
		Placements: []Placement{
			{Definition: "bouncy-ball", Position: Point{X: 300, Y: 100}},
			{Definition: "bowling-ball", Position: Point{X: 500, Y: 100}},
		},
	},
	{
		// Momentum conservation demo. Friction and air drag are zeroed on
		// the billiard-ball definition so the 0.9 restitution is the only
		// source of kinetic-energy loss.
		ID:          "elastic-collision",
		Label:       "Elastic Collision",
		Description: "equal masses, opposite velocities, no gravity",
		Placements: []Placement{
			{Definition: "billiard-ball", Position: Point{X: 250, Y: 300},
				Velocity: &Point{X: 120, Y: 0}},
			{Definition: "billiard-ball", Position: Point{X: 550, Y: 300},
				Velocity: &Point{X: -120, Y: 0}},
		},
		Settings: &Settings{
			Gravity:      fptr(0),
			ShowVelocity: bptr(true),
			ShowTrails:   bptr(true),
		},
	},
	{
		ID:          "wind-tunnel",
		Label:       "Wind Tunnel",
		Description: "a fan pushing a light ball against gravity",
		Placements: []Placement{
			{Definition: "fan", Position: Point{X: 120, Y: 400}},
			{Definition: "bouncy-ball", Position: Point{X: 280, Y: 400}},
			{Definition: "platform", Position: Point{X: 400, Y: 500}},
		},
		Settings: &Settings{ShowForces: bptr(true)},
	},
	{
		ID:          "orbital-well",
		Label:       "Orbital Well",
		Description: "bodies circling a central gravity well",
		Placements: []Placement{
			{Definition: "gravity-well", Position: Point{X: 400, Y: 300}},
			{Definition: "billiard-ball", Position: Point{X: 400, Y: 160},
				Velocity: &Point{X: 95, Y: 0}},
			{Definition: "billiard-ball", Position: Point{X: 400, Y: 460},
				Velocity: &Point{X: -95, Y: 0}},
		},
		Settings: &Settings{Gravity: fptr(0), ShowTrails: bptr(true)},
	},
	{
		ID:          "spring-pendulum",
		Label:       "Spring Pendulum",
		Description: "a ball suspended from a platform on a spring",
		Placements: []Placement{
			{Definition: "platform", Position: Point{X: 400, Y: 100}},
			{Definition: "bowling-ball", Position: Point{X: 460, Y: 280}},
		},
		Constraints: []ConstraintSpec{
			{Type: "spring", A: 0, B: iptr(1), Length: 150, Stiffness: 12},
		},
		Settings: &Settings{ShowVelocity: bptr(true)},
	},
	{
		ID:          "ramp-race",
		Label:       "Ramp Race",
		Description: "crate and ball released on a ramp",
		Placements: []Placement{
			{Definition: "ramp", Position: Point{X: 300, Y: 450}},
			{Definition: "wooden-crate", Position: Point{X: 240, Y: 340}},
			{Definition: "bouncy-ball", Position: Point{X: 300, Y: 320}},
		},
	},
}

func fptr(v float64) *float64 { return &v }
func bptr(v bool) *bool       { return &v }
func iptr(v int) *int         { return &v }
