package catalog

import (
	"errors"
	"fmt"

	"github.com/san-kum/scenelab/internal/engine"
)

var (
	ErrInvalidDefinition = errors.New("invalid definition")
	ErrUnknownDefinition = errors.New("unknown definition")
	ErrUnknownPreset     = errors.New("unknown preset")
)

type EmitterType string

const (
	EmitterFan         EmitterType = "fan"
	EmitterMagnet      EmitterType = "magnet"
	EmitterGravityWell EmitterType = "gravity_well"
	EmitterRocket      EmitterType = "rocket"
)

func (t EmitterType) Valid() bool {
	switch t {
	case EmitterFan, EmitterMagnet, EmitterGravityWell, EmitterRocket:
		return true
	}
	return false
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ShapeSpec is the declarative form of a shape primitive. Kind is a closed
// tag; exactly the parameters for the tagged kind must be present.
type ShapeSpec struct {
	Kind     string  `yaml:"kind"`
	Width    float64 `yaml:"width,omitempty"`
	Height   float64 `yaml:"height,omitempty"`
	Radius   float64 `yaml:"radius,omitempty"`
	Vertices []Point `yaml:"vertices,omitempty"`
}

func (s ShapeSpec) Validate() error {
	switch s.Kind {
	case "rectangle":
		if s.Width <= 0 || s.Height <= 0 {
			return fmt.Errorf("%w: rectangle needs positive width and height", ErrInvalidDefinition)
		}
	case "circle":
		if s.Radius <= 0 {
			return fmt.Errorf("%w: circle needs a positive radius", ErrInvalidDefinition)
		}
	case "polygon":
		if len(s.Vertices) < 3 {
			return fmt.Errorf("%w: polygon needs at least 3 vertices", ErrInvalidDefinition)
		}
	default:
		return fmt.Errorf("%w: unknown shape kind %q", ErrInvalidDefinition, s.Kind)
	}
	return nil
}

// Build converts the spec into an engine shape. The spec must be valid.
func (s ShapeSpec) Build() (engine.Shape, error) {
	if err := s.Validate(); err != nil {
		return engine.Shape{}, err
	}
	switch s.Kind {
	case "rectangle":
		return engine.Shape{Kind: engine.ShapeRectangle, Width: s.Width, Height: s.Height}, nil
	case "circle":
		return engine.Shape{Kind: engine.ShapeCircle, Radius: s.Radius}, nil
	default:
		verts := make([]engine.Vec2, len(s.Vertices))
		for i, v := range s.Vertices {
			verts[i] = engine.Vec2{X: v.X, Y: v.Y}
		}
		return engine.Shape{Kind: engine.ShapePolygon, Vertices: verts}, nil
	}
}

type MaterialSpec struct {
	Density     float64 `yaml:"density"`
	Friction    float64 `yaml:"friction"`
	Restitution float64 `yaml:"restitution"`
	AirDrag     float64 `yaml:"air_drag"`
	Static      bool    `yaml:"static,omitempty"`
	Sensor      bool    `yaml:"sensor,omitempty"`
}

// EmitterSpec marks a definition as a force source. Direction is in degrees,
// 0 pointing along +x; it only matters for directional emitter types.
type EmitterSpec struct {
	Type      EmitterType `yaml:"type"`
	Strength  float64     `yaml:"strength"`
	Direction float64     `yaml:"direction,omitempty"`
}

// Definition maps a catalog id to everything needed to build one body: a
// shape primitive, material, render tint, and optional emitter parameters.
type Definition struct {
	ID       string       `yaml:"id"`
	Label    string       `yaml:"label"`
	Shape    ShapeSpec    `yaml:"shape"`
	Material MaterialSpec `yaml:"material"`
	Tint     string       `yaml:"tint,omitempty"`
	Emitter  *EmitterSpec `yaml:"emitter,omitempty"`
}

func (d Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidDefinition)
	}
	if err := d.Shape.Validate(); err != nil {
		return fmt.Errorf("%s: %w", d.ID, err)
	}
	if d.Material.Density < 0 {
		return fmt.Errorf("%w: %s: negative density", ErrInvalidDefinition, d.ID)
	}
	if d.Emitter != nil && !d.Emitter.Type.Valid() {
		return fmt.Errorf("%w: %s: unknown emitter type %q", ErrInvalidDefinition, d.ID, d.Emitter.Type)
	}
	return nil
}

// BuildMaterial converts the material and render parameters into the
// engine's form.
func (d Definition) BuildMaterial() engine.Material {
	return engine.Material{
		Density:     d.Material.Density,
		Friction:    d.Material.Friction,
		Restitution: d.Material.Restitution,
		AirDrag:     d.Material.AirDrag,
		Static:      d.Material.Static,
		Sensor:      d.Material.Sensor,
		Label:       d.Label,
		Tint:        d.Tint,
	}
}
