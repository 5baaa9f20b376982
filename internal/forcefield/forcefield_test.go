package forcefield_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/scenelab/internal/catalog"
	"github.com/san-kum/scenelab/internal/engine"
	"github.com/san-kum/scenelab/internal/forcefield"
	"github.com/san-kum/scenelab/internal/scene"
)

var _ = Describe("fan falloff", func() {
	origin := engine.Vec2{}
	fan := catalog.EmitterSpec{Type: catalog.EmitterFan, Strength: 0.01, Direction: 0}

	at := func(d float64) engine.Vec2 {
		return forcefield.ForceOn(fan, origin, engine.Vec2{X: 0, Y: d}, 1.0)
	}

	It("is non-increasing in distance", func() {
		prev := at(1).Len()
		for d := 10.0; d < 320; d += 10 {
			cur := at(d).Len()
			Expect(cur).To(BeNumerically("<=", prev+1e-12), "distance %f", d)
			prev = cur
		}
	})

	It("is exactly zero at and beyond the cutoff", func() {
		Expect(at(forcefield.FanRadius)).To(Equal(engine.Vec2{}))
		Expect(at(forcefield.FanRadius + 1)).To(Equal(engine.Vec2{}))
		Expect(at(1000)).To(Equal(engine.Vec2{}))
	})

	It("pushes along the configured direction, not toward the emitter", func() {
		f := at(100)
		Expect(f.X).To(BeNumerically(">", 0))
		Expect(f.Y).To(BeNumerically("~", 0, 1e-9))
	})

	It("matches the linear law inside the radius", func() {
		f := at(100)
		Expect(f.Len()).To(BeNumerically("~", 0.01*(1-100.0/300.0), 1e-12))
	})

	It("exerts zero force at distance 301 and a +x force at distance 100", func() {
		Expect(at(301)).To(Equal(engine.Vec2{}))
		near := at(100)
		Expect(near.X).To(BeNumerically(">", 0))
	})
})

var _ = Describe("gravity well falloff", func() {
	origin := engine.Vec2{}
	well := catalog.EmitterSpec{Type: catalog.EmitterGravityWell, Strength: 0.0005}
	mass := 2.0

	at := func(d float64) engine.Vec2 {
		return forcefield.ForceOn(well, origin, engine.Vec2{X: d, Y: 0}, mass)
	}

	It("is zero inside the dead zone and beyond the outer cutoff", func() {
		Expect(at(10)).To(Equal(engine.Vec2{}))
		Expect(at(30)).To(Equal(engine.Vec2{}))
		Expect(at(250)).To(Equal(engine.Vec2{}))
		Expect(at(400)).To(Equal(engine.Vec2{}))
	})

	It("is strictly decreasing within the band", func() {
		prev := at(31).Len()
		Expect(prev).To(BeNumerically(">", 0))
		for d := 40.0; d < 250; d += 10 {
			cur := at(d).Len()
			Expect(cur).To(BeNumerically("<", prev), "distance %f", d)
			prev = cur
		}
	})

	It("follows the inverse-square mass-scaled law", func() {
		d := 100.0
		Expect(at(d).Len()).To(BeNumerically("~", 0.0005*mass*50000/(d*d), 1e-9))
	})

	It("attracts the body toward the emitter", func() {
		f := at(100)
		Expect(f.X).To(BeNumerically("<", 0))
		Expect(f.Y).To(BeNumerically("~", 0, 1e-9))
	})
})

var _ = Describe("evaluator", func() {
	var (
		world    *engine.World
		registry *scene.Registry
		eval     *forcefield.Evaluator
	)

	fanDef := catalog.Definition{
		ID:       "fan",
		Shape:    catalog.ShapeSpec{Kind: "rectangle", Width: 40, Height: 80},
		Material: catalog.MaterialSpec{Density: 0.004, Static: true},
		Emitter:  &catalog.EmitterSpec{Type: catalog.EmitterFan, Strength: 0.01, Direction: 0},
	}
	ballDef := catalog.Definition{
		ID:       "ball",
		Shape:    catalog.ShapeSpec{Kind: "circle", Radius: 10},
		Material: catalog.MaterialSpec{Density: 0.004},
	}

	BeforeEach(func() {
		world = engine.NewWorld()
		world.SetGravity(0)
		registry = scene.NewRegistry(world)
		registry.AddBoundaries(800, 600, 60)
		eval = forcefield.New(registry)
		world.OnBeforeStep(eval.Hook())
	})

	It("pushes a dynamic body in range and ignores one out of range", func() {
		_, err := registry.AddObject(fanDef, engine.Vec2{X: 100, Y: 300}, scene.Overrides{})
		Expect(err).NotTo(HaveOccurred())
		near, err := registry.AddObject(ballDef, engine.Vec2{X: 200, Y: 300}, scene.Overrides{})
		Expect(err).NotTo(HaveOccurred())
		far, err := registry.AddObject(ballDef, engine.Vec2{X: 401, Y: 300}, scene.Overrides{})
		Expect(err).NotTo(HaveOccurred())

		world.Step()

		nearBody, _ := registry.Body(near.ID)
		farBody, _ := registry.Body(far.ID)
		Expect(nearBody.Velocity.X).To(BeNumerically(">", 0))
		Expect(farBody.Velocity).To(Equal(engine.Vec2{}))
	})

	It("never moves the emitter itself or static bodies", func() {
		fan, _ := registry.AddObject(fanDef, engine.Vec2{X: 100, Y: 300}, scene.Overrides{})
		staticTrue := true
		wall, _ := registry.AddObject(ballDef, engine.Vec2{X: 200, Y: 300}, scene.Overrides{Static: &staticTrue})

		world.Step()

		fanBody, _ := registry.Body(fan.ID)
		wallBody, _ := registry.Body(wall.ID)
		Expect(fanBody.Velocity).To(Equal(engine.Vec2{}))
		Expect(wallBody.Velocity).To(Equal(engine.Vec2{}))
	})

	It("is deterministic for identical state", func() {
		registry.AddObject(fanDef, engine.Vec2{X: 100, Y: 300}, scene.Overrides{})
		ball, _ := registry.AddObject(ballDef, engine.Vec2{X: 200, Y: 300}, scene.Overrides{})
		body, _ := registry.Body(ball.ID)

		f1 := forcefield.ForceOn(*fanDef.Emitter, engine.Vec2{X: 100, Y: 300}, body.Position, body.Mass)
		f2 := forcefield.ForceOn(*fanDef.Emitter, engine.Vec2{X: 100, Y: 300}, body.Position, body.Mass)
		Expect(f1).To(Equal(f2))
	})

	It("does not accumulate force across evaluator calls within one tick", func() {
		registry.AddObject(fanDef, engine.Vec2{X: 100, Y: 300}, scene.Overrides{})
		ball, _ := registry.AddObject(ballDef, engine.Vec2{X: 200, Y: 300}, scene.Overrides{})

		world.Step()
		body, _ := registry.Body(ball.ID)
		v1 := body.Velocity.X

		// a second world with the same layout must integrate identically
		world2 := engine.NewWorld()
		world2.SetGravity(0)
		registry2 := scene.NewRegistry(world2)
		registry2.AddBoundaries(800, 600, 60)
		eval2 := forcefield.New(registry2)
		world2.OnBeforeStep(eval2.Hook())
		registry2.AddObject(fanDef, engine.Vec2{X: 100, Y: 300}, scene.Overrides{})
		ball2, _ := registry2.AddObject(ballDef, engine.Vec2{X: 200, Y: 300}, scene.Overrides{})
		world2.Step()
		body2, _ := registry2.Body(ball2.ID)

		Expect(body2.Velocity.X).To(Equal(v1))
	})
})
