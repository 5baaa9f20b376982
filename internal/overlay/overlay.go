// Package overlay turns current world state into per-frame draw
// instructions: motion trails, velocity and force vectors, and the
// selection highlight. It reads body position, velocity and bounds and
// nothing else; it never mutates the scene.
package overlay

import (
	"math"

	"github.com/san-kum/scenelab/internal/engine"
)

const (
	// TrailCapacity bounds each body's recorded positions; the oldest
	// point is evicted beyond it.
	TrailCapacity = 80

	// velocity vectors below this speed are noise and are not drawn
	velocityNoiseThreshold = 2.0

	velocityVectorScale = 0.25
	forceVectorScale    = 40.0

	// hue endpoints for velocity vectors; hue runs from slowHue down to
	// fastHue as speed approaches speedHueCap
	slowHue     = 210.0
	fastHue     = 0.0
	speedHueCap = 400.0
)

// Settings are the visualization toggles. They have no physical effect.
type Settings struct {
	Trails          bool
	VelocityVectors bool
	ForceVectors    bool
}

// Polyline is a trail: points oldest first, with matching opacities rising
// from transparent to opaque.
type Polyline struct {
	Points    []engine.Vec2
	Opacities []float64
	Tint      string
}

// Vector is an arrow draw instruction. Hue is in degrees; Dashed marks
// indicator arrows that do not represent live motion.
type Vector struct {
	From   engine.Vec2
	To     engine.Vec2
	Hue    float64
	Dashed bool
}

// Highlight is the padded outline drawn around the selected body.
type Highlight struct {
	Min     engine.Vec2
	Max     engine.Vec2
	Padding float64
	Glow    bool
}

// Frame is everything the presentation layer needs to draw one frame of
// annotations.
type Frame struct {
	Trails          []Polyline
	VelocityVectors []Vector
	ForceVectors    []Vector
	Highlight       *Highlight
}

// Generator owns the bounded trail buffers. Buffers for bodies that have
// left the world are pruned on the next frame; Reset drops all of them at
// once on clear/reset/load.
type Generator struct {
	trails map[int][]engine.Vec2
}

func NewGenerator() *Generator {
	return &Generator{trails: make(map[int][]engine.Vec2)}
}

// Reset drops every trail buffer.
func (g *Generator) Reset() {
	g.trails = make(map[int][]engine.Vec2)
}

// Frame reads the world and produces the draw instructions for this tick.
// selected may be nil; gravityScale drives the force indicator length.
func (g *Generator) Frame(w *engine.World, selected *engine.Body, gravityScale float64, s Settings) Frame {
	var f Frame

	seen := make(map[int]bool)
	for _, b := range w.Bodies() {
		if b.Static() || b.Boundary {
			continue
		}
		seen[b.ID()] = true

		if s.Trails {
			trail := append(g.trails[b.ID()], b.Position)
			if len(trail) > TrailCapacity {
				trail = trail[len(trail)-TrailCapacity:]
			}
			g.trails[b.ID()] = trail

			if len(trail) >= 2 {
				pts := make([]engine.Vec2, len(trail))
				copy(pts, trail)
				ops := make([]float64, len(trail))
				for i := range ops {
					ops[i] = float64(i+1) / float64(len(trail))
				}
				f.Trails = append(f.Trails, Polyline{Points: pts, Opacities: ops, Tint: b.Tint})
			}
		}

		if s.VelocityVectors {
			speed := b.Velocity.Len()
			if speed > velocityNoiseThreshold {
				capped := math.Min(speed, speedHueCap)
				hue := slowHue + (fastHue-slowHue)*(capped/speedHueCap)
				f.VelocityVectors = append(f.VelocityVectors, Vector{
					From: b.Position,
					To:   b.Position.Add(b.Velocity.Scale(velocityVectorScale)),
					Hue:  hue,
				})
			}
		}

		if s.ForceVectors {
			length := b.Mass * gravityScale * forceVectorScale
			f.ForceVectors = append(f.ForceVectors, Vector{
				From:   b.Position,
				To:     b.Position.Add(engine.Vec2{Y: length}),
				Dashed: true,
			})
		}
	}

	// prune buffers whose bodies are gone
	for id := range g.trails {
		if !seen[id] {
			delete(g.trails, id)
		}
	}

	if selected != nil {
		min, max := selected.Bounds()
		f.Highlight = &Highlight{Min: min, Max: max, Padding: 6, Glow: true}
	}

	return f
}

// DropTrail removes one body's trail buffer, for targeted resets.
func (g *Generator) DropTrail(bodyID int) {
	delete(g.trails, bodyID)
}
