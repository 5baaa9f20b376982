package physstate

import "github.com/san-kum/scenelab/internal/engine"

const (
	// DefaultRetention is the rolling sample window for general callers.
	DefaultRetention = 200

	// ExtendedRetention is the window for long-lived plot buffers.
	ExtendedRetention = 600
)

// Sample is one graph data point for the selected object.
type Sample struct {
	Time            float64
	Position        engine.Vec2
	Velocity        engine.Vec2
	Speed           float64
	KineticEnergy   float64
	PotentialEnergy float64
	TotalEnergy     float64
}

// SampleOf projects a derived state into a graph sample.
func SampleOf(t float64, s State) Sample {
	return Sample{
		Time:            t,
		Position:        s.Position,
		Velocity:        s.Velocity,
		Speed:           s.Speed,
		KineticEnergy:   s.KineticEnergy,
		PotentialEnergy: s.PotentialEnergy,
		TotalEnergy:     s.TotalEnergy,
	}
}

// GraphBuffer is a bounded rolling buffer of samples. Pushing beyond
// capacity evicts the oldest sample.
type GraphBuffer struct {
	capacity int
	samples  []Sample
}

func NewGraphBuffer(capacity int) *GraphBuffer {
	if capacity <= 0 {
		capacity = DefaultRetention
	}
	return &GraphBuffer{capacity: capacity}
}

func (g *GraphBuffer) Push(s Sample) {
	if len(g.samples) == g.capacity {
		copy(g.samples, g.samples[1:])
		g.samples = g.samples[:len(g.samples)-1]
	}
	g.samples = append(g.samples, s)
}

// Samples returns the retained window, oldest first. The slice is a copy.
func (g *GraphBuffer) Samples() []Sample {
	out := make([]Sample, len(g.samples))
	copy(out, g.samples)
	return out
}

// Series extracts one field across the window for plotting.
func (g *GraphBuffer) Series(extract func(Sample) float64) []float64 {
	out := make([]float64, len(g.samples))
	for i, s := range g.samples {
		out[i] = extract(s)
	}
	return out
}

func (g *GraphBuffer) Len() int      { return len(g.samples) }
func (g *GraphBuffer) Capacity() int { return g.capacity }

func (g *GraphBuffer) Reset() { g.samples = g.samples[:0] }
