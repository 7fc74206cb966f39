package sim_test

import (
	"context"
	"errors"
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ryanmcf10/three-body-simulation/internal/body"
	"github.com/ryanmcf10/three-body-simulation/internal/dynamo"
	"github.com/ryanmcf10/three-body-simulation/internal/integrators"
	"github.com/ryanmcf10/three-body-simulation/internal/sim"
	"gonum.org/v1/gonum/spatial/r3"
)

// separated places three bodies well apart, in pixels, with UI velocities.
func separated() [3]body.Body {
	return [3]body.Body{
		{Mass: 5, Position: r3.Vec{X: 300, Y: 400}, Velocity: r3.Vec{Y: 0.2}, Color: body.Color{R: 255}},
		{Mass: 5, Position: r3.Vec{X: 500, Y: 400}, Velocity: r3.Vec{Y: -0.2}, Color: body.Color{G: 255}},
		{Mass: 3, Position: r3.Vec{X: 400, Y: 240}, Velocity: r3.Vec{X: 0.3, Y: 0.1}, Color: body.Color{B: 255}},
	}
}

func totalMomentum(s sim.Snapshot) r3.Vec {
	var p r3.Vec
	for _, b := range s.Bodies {
		p = r3.Add(p, r3.Scale(b.Mass, b.Velocity))
	}
	return p
}

func unpaced() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Rate = 0
	return cfg
}

var _ = Describe("Simulation", func() {
	Describe("setup", func() {
		It("zeroes the total momentum", func() {
			s, err := sim.New(separated(), integrators.NewRK4(), unpaced())
			Expect(err).NotTo(HaveOccurred())

			p := totalMomentum(s.Snapshot())
			Expect(r3.Norm(p)).To(BeNumerically("<", 1e-12))
		})

		It("zeroes momentum for arbitrary masses and velocities", func() {
			bodies := [3]body.Body{
				{Mass: 0.3, Position: r3.Vec{X: 10, Y: 20}, Velocity: r3.Vec{X: 1.7, Y: -0.4}},
				{Mass: 9.5, Position: r3.Vec{X: 700, Y: 20}, Velocity: r3.Vec{X: -0.2, Y: 2.1}},
				{Mass: 4.1, Position: r3.Vec{X: 300, Y: 650}, Velocity: r3.Vec{X: 0.9, Y: 0.9}},
			}
			s, err := sim.New(bodies, integrators.NewRK4(), unpaced())
			Expect(err).NotTo(HaveOccurred())
			Expect(r3.Norm(totalMomentum(s.Snapshot()))).To(BeNumerically("<", 1e-12))
		})

		It("derives display radii from mass", func() {
			bodies := separated()
			bodies[0].Mass, bodies[1].Mass, bodies[2].Mass = 1, 8, 27
			s, err := sim.New(bodies, integrators.NewRK4(), unpaced())
			Expect(err).NotTo(HaveOccurred())

			snap := s.Snapshot()
			Expect(snap.Bodies[0].Radius).To(BeNumerically("~", 0.5, 1e-12))
			Expect(snap.Bodies[1].Radius).To(BeNumerically("~", 1.0, 1e-12))
			Expect(snap.Bodies[2].Radius).To(BeNumerically("~", 1.5, 1e-12))
		})

		It("converts positions and colours to internal units", func() {
			bodies := separated()
			bodies[0].Position = r3.Vec{X: 100, Y: 200}
			s, err := sim.New(bodies, integrators.NewRK4(), unpaced())
			Expect(err).NotTo(HaveOccurred())

			snap := s.Snapshot()
			Expect(snap.Bodies[0].Position).To(Equal(r3.Vec{X: 5, Y: -10}))
			Expect(snap.Bodies[0].Color).To(Equal([3]float64{1, 0, 0}))
			Expect(snap.Step).To(Equal(0))
			Expect(snap.Time).To(Equal(0.0))
		})

		It("rejects a non-positive mass naming the body", func() {
			bodies := separated()
			bodies[2].Mass = 0
			_, err := sim.New(bodies, integrators.NewRK4(), unpaced())
			Expect(errors.Is(err, dynamo.ErrInvalidMass)).To(BeTrue())

			var be *dynamo.BodyError
			Expect(errors.As(err, &be)).To(BeTrue())
			Expect(be.Index).To(Equal(2))
			Expect(err.Error()).To(ContainSubstring("body 3"))
		})

		DescribeTable("rejects invalid configuration",
			func(mutate func(*sim.Config)) {
				cfg := unpaced()
				mutate(&cfg)
				_, err := sim.New(separated(), integrators.NewRK4(), cfg)
				Expect(err).To(HaveOccurred())
			},
			Entry("zero dt", func(c *sim.Config) { c.Dt = 0 }),
			Entry("negative dt", func(c *sim.Config) { c.Dt = -0.1 }),
			Entry("NaN dt", func(c *sim.Config) { c.Dt = math.NaN() }),
			Entry("negative rate", func(c *sim.Config) { c.Rate = -1 }),
			Entry("rate beyond ticker resolution", func(c *sim.Config) { c.Rate = sim.MaxRate + 1 }),
			Entry("negative max steps", func(c *sim.Config) { c.MaxSteps = -5 }),
			Entry("zero scale", func(c *sim.Config) { c.Units.Scale = 0 }),
		)

		It("runs at the fastest accepted rate", func() {
			cfg := unpaced()
			cfg.Rate = sim.MaxRate
			cfg.MaxSteps = 2
			s, err := sim.New(separated(), integrators.NewRK4(), cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Run(context.Background())).To(Succeed())
			Expect(s.Snapshot().Step).To(Equal(2))
		})
	})

	Describe("stepping", func() {
		It("advances time by dt per step", func() {
			s, err := sim.New(separated(), integrators.NewRK4(), unpaced())
			Expect(err).NotTo(HaveOccurred())
			before := s.Snapshot()

			for i := 0; i < 5; i++ {
				Expect(s.Step()).To(Succeed())
			}

			after := s.Snapshot()
			Expect(after.Step).To(Equal(5))
			Expect(after.Time).To(BeNumerically("~", 0.5, 1e-12))
			Expect(after.Bodies[0].Position).NotTo(Equal(before.Bodies[0].Position))
			Expect(after.Bodies[2].Radius).To(Equal(before.Bodies[2].Radius))
		})

		It("conserves energy and momentum over a short horizon", func() {
			s, err := sim.New(separated(), integrators.NewRK4(), unpaced())
			Expect(err).NotTo(HaveOccurred())
			model := s.Model()

			y0 := s.Snapshot().State()
			e0 := model.Energy(y0)

			Expect(s.Step()).To(Succeed())
			y1 := s.Snapshot().State()

			Expect(math.Abs(model.Energy(y1)-e0) / math.Abs(e0)).To(BeNumerically("<", 1e-3))
			Expect(r3.Norm(model.Momentum(y1))).To(BeNumerically("<", 1e-9))
		})

		It("stops with the coincident bodies named", func() {
			bodies := separated()
			bodies[1].Position = bodies[0].Position
			s, err := sim.New(bodies, integrators.NewRK4(), unpaced())
			Expect(err).NotTo(HaveOccurred())

			err = s.Step()
			Expect(errors.Is(err, dynamo.ErrSingularSeparation)).To(BeTrue())

			var se *dynamo.SeparationError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect([]int{se.I, se.J}).To(Equal([]int{0, 1}))

			var step *dynamo.StepError
			Expect(errors.As(err, &step)).To(BeTrue())
			Expect(step.Step).To(Equal(0))

			Expect(s.Step()).To(MatchError(err))
			Expect(s.Err()).To(MatchError(err))
			Expect(s.Snapshot().Step).To(Equal(0))
		})
	})

	Describe("Run", func() {
		It("stops after MaxSteps and notifies every snapshot", func() {
			cfg := unpaced()
			cfg.MaxSteps = 10
			s, err := sim.New(separated(), integrators.NewRK4(), cfg)
			Expect(err).NotTo(HaveOccurred())

			rec := sim.NewRecorder(1)
			s.AddObserver(rec)
			var steps []int
			s.AddObserver(sim.ObserverFunc(func(snap sim.Snapshot) {
				steps = append(steps, snap.Step)
			}))

			Expect(s.Run(context.Background())).To(Succeed())

			Expect(steps).To(HaveLen(11))
			Expect(steps[0]).To(Equal(0))
			Expect(steps[10]).To(Equal(10))

			res := rec.Result(s)
			Expect(res.States).To(HaveLen(11))
			Expect(res.Times[10]).To(BeNumerically("~", 1.0, 1e-12))
			Expect(res.Masses).To(Equal([3]float64{5, 5, 3}))
			Expect(res.Err).NotTo(HaveOccurred())
		})

		It("keeps every interval-th snapshot", func() {
			cfg := unpaced()
			cfg.MaxSteps = 10
			s, _ := sim.New(separated(), integrators.NewRK4(), cfg)
			rec := sim.NewRecorder(2)
			s.AddObserver(rec)

			Expect(s.Run(context.Background())).To(Succeed())
			Expect(rec.Result(s).States).To(HaveLen(6))
		})

		It("runs until cancelled when unbounded", func() {
			cfg := sim.DefaultConfig()
			cfg.Rate = 1000
			s, err := sim.New(separated(), integrators.NewRK4(), cfg)
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			err = s.Run(ctx)
			Expect(errors.Is(err, context.DeadlineExceeded)).To(BeTrue())
			Expect(s.Snapshot().Step).To(BeNumerically(">", 0))
			Expect(s.Err()).NotTo(HaveOccurred())
		})

		It("returns immediately on an already cancelled context", func() {
			s, _ := sim.New(separated(), integrators.NewRK4(), unpaced())
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			Expect(s.Run(ctx)).To(MatchError(context.Canceled))
			Expect(s.Snapshot().Step).To(Equal(0))
		})

		It("returns the step error of a singular run", func() {
			bodies := separated()
			bodies[2].Position = bodies[1].Position
			s, _ := sim.New(bodies, integrators.NewRK4(), unpaced())

			err := s.Run(context.Background())
			var se *dynamo.SeparationError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect([]int{se.I, se.J}).To(Equal([]int{1, 2}))
		})
	})
})

var _ = Describe("Snapshot", func() {
	It("round-trips the integration state", func() {
		s, _ := sim.New(separated(), integrators.NewRK4(), unpaced())
		snap := s.Snapshot()
		y := snap.State()
		for i, b := range snap.Bodies {
			Expect(y.Position(i)).To(Equal(b.Position))
			Expect(y.Velocity(i)).To(Equal(b.Velocity))
		}
		Expect(snap.Masses()).To(Equal([3]float64{5, 5, 3}))
	})

	It("logs as a group", func() {
		s, _ := sim.New(separated(), integrators.NewRK4(), unpaced())
		v := s.Snapshot().LogValue()
		Expect(v.Group()).To(HaveLen(5))
	})
})
