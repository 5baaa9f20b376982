package catalog

import "fmt"

// Placement positions one definition inside a preset. Angle, Velocity and
// Static are overrides; nil leaves the definition's defaults untouched.
type Placement struct {
	Definition string   `yaml:"definition"`
	Position   Point    `yaml:"position"`
	Angle      *float64 `yaml:"angle,omitempty"`
	Velocity   *Point   `yaml:"velocity,omitempty"`
	Static     *bool    `yaml:"static,omitempty"`
}

// ConstraintSpec wires two placements by their original index in the
// preset's placement list. B may be nil, anchoring A to a world point.
type ConstraintSpec struct {
	Type      string  `yaml:"type"` // pin, spring, rope
	A         int     `yaml:"a"`
	B         *int    `yaml:"b,omitempty"`
	Anchor    *Point  `yaml:"anchor,omitempty"`
	Length    float64 `yaml:"length,omitempty"`
	Stiffness float64 `yaml:"stiffness,omitempty"`
}

// Settings are the optional initial globals a preset may carry. Nil fields
// leave the current value untouched.
type Settings struct {
	Gravity      *float64 `yaml:"gravity,omitempty"`
	TimeScale    *float64 `yaml:"time_scale,omitempty"`
	ShowTrails   *bool    `yaml:"show_trails,omitempty"`
	ShowVelocity *bool    `yaml:"show_velocity,omitempty"`
	ShowForces   *bool    `yaml:"show_forces,omitempty"`
}

// Preset is a named, immutable scene template.
type Preset struct {
	ID          string           `yaml:"id"`
	Label       string           `yaml:"label"`
	Description string           `yaml:"description,omitempty"`
	Placements  []Placement      `yaml:"placements"`
	Constraints []ConstraintSpec `yaml:"constraints,omitempty"`
	Settings    *Settings        `yaml:"settings,omitempty"`
}

func (p Preset) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: preset missing id", ErrInvalidDefinition)
	}
	for i, c := range p.Constraints {
		switch c.Type {
		case "pin", "spring", "rope":
		default:
			return fmt.Errorf("%w: preset %s constraint %d: unknown type %q",
				ErrInvalidDefinition, p.ID, i, c.Type)
		}
	}
	return nil
}
