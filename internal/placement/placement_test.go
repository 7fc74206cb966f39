package placement_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ryanmcf10/three-body-simulation/internal/body"
	"github.com/ryanmcf10/three-body-simulation/internal/dynamo"
	"github.com/ryanmcf10/three-body-simulation/internal/placement"
	"github.com/ryanmcf10/three-body-simulation/internal/units"
	"gonum.org/v1/gonum/spatial/r3"
)

var _ = Describe("Placement", func() {
	var p *placement.Placement

	BeforeEach(func() {
		p = placement.New(units.Default(), body.Color{R: 200})
	})

	It("starts at the position stage with the default mass", func() {
		Expect(p.Stage()).To(Equal(placement.StagePosition))
		Expect(p.IsReady()).To(BeFalse())
		Expect(p.Body().Mass).To(Equal(units.DefaultMaxMass))
		Expect(p.DisplayRadius()).To(Equal(15))
	})

	It("is not ready after position and size only", func() {
		Expect(p.SetPosition(r3.Vec{X: 100, Y: 100})).To(Succeed())
		Expect(p.SetSize(100)).To(Succeed())
		Expect(p.IsReady()).To(BeFalse())
		Expect(p.Stage()).To(Equal(placement.StageVelocity))
	})

	It("is ready after position, size and velocity in order", func() {
		Expect(p.SetPosition(r3.Vec{X: 100, Y: 100})).To(Succeed())
		Expect(p.SetSize(100)).To(Succeed())
		Expect(p.SetVelocity(r3.Vec{X: 200})).To(Succeed())
		Expect(p.IsReady()).To(BeTrue())

		b := p.Body()
		Expect(b.Position).To(Equal(r3.Vec{X: 100, Y: 100}))
		Expect(b.Mass).To(BeNumerically("~", 5, 1e-12))
		Expect(b.Velocity.X).To(BeNumerically("~", units.DefaultStandardVelocity, 1e-12))
		Expect(p.DisplayRadius()).To(Equal(12))
	})

	It("rejects actions out of order", func() {
		err := p.SetSize(50)
		Expect(errors.Is(err, dynamo.ErrOutOfOrder)).To(BeTrue())

		Expect(p.SetPosition(r3.Vec{})).To(Succeed())
		err = p.SetVelocity(r3.Vec{X: 1})
		Expect(errors.Is(err, dynamo.ErrOutOfOrder)).To(BeTrue())
		Expect(p.Stage()).To(Equal(placement.StageSize))
	})

	It("clamps the size at the maximum", func() {
		Expect(p.SetPosition(r3.Vec{})).To(Succeed())
		Expect(p.SetSize(10 * units.DefaultMaxVector)).To(Succeed())
		Expect(p.Body().Mass).To(Equal(units.DefaultMaxMass))
		Expect(p.DisplayRadius()).To(Equal(int(units.DefaultMaxRadius)))
	})

	Describe("pointer tracking", func() {
		It("previews each stage until committed", func() {
			p.Track(r3.Vec{X: 50, Y: 60})
			Expect(p.Body().Position).To(Equal(r3.Vec{X: 50, Y: 60}))
			Expect(p.Stage()).To(Equal(placement.StagePosition))
			Expect(p.Commit()).To(Succeed())

			// 3-4-5 triangle: drag distance 100 pixels.
			p.Track(r3.Vec{X: 110, Y: 140})
			Expect(p.Body().Mass).To(BeNumerically("~", 5, 1e-12))
			Expect(p.Body().Position).To(Equal(r3.Vec{X: 50, Y: 60}))
			Expect(p.Commit()).To(Succeed())

			p.Track(r3.Vec{X: 50, Y: 260})
			Expect(p.Body().Velocity.Y).To(BeNumerically("~", units.DefaultStandardVelocity, 1e-12))
			Expect(p.Commit()).To(Succeed())

			Expect(p.IsReady()).To(BeTrue())
			Expect(errors.Is(p.Commit(), dynamo.ErrOutOfOrder)).To(BeTrue())
		})

		It("ignores the pointer once ready", func() {
			Expect(p.SetPosition(r3.Vec{X: 1})).To(Succeed())
			Expect(p.SetSize(20)).To(Succeed())
			Expect(p.SetVelocity(r3.Vec{})).To(Succeed())
			before := p.Body()
			p.Track(r3.Vec{X: 700, Y: 700})
			Expect(p.Body()).To(Equal(before))
		})
	})

	It("labels stages", func() {
		Expect(placement.StageSize.String()).To(Equal("size"))
		Expect(placement.StageReady.Prompt()).To(ContainSubstring("SPACE"))
		Expect(placement.StagePosition.Prompt()).To(ContainSubstring("position"))
	})
})

var _ = Describe("Session", func() {
	var s *placement.Session

	BeforeEach(func() {
		s = placement.NewSession(units.Default(), placement.RandomColors(7))
	})

	It("refuses to hand off bodies before all three are ready", func() {
		Expect(s.Place(r3.Vec{X: 100, Y: 100}, 0.5, r3.Vec{X: 0.1})).To(Succeed())
		Expect(s.Ready()).To(BeFalse())

		_, err := s.Bodies()
		Expect(errors.Is(err, dynamo.ErrIncompleteInitialConditions)).To(BeTrue())
		var be *dynamo.BodyError
		Expect(errors.As(err, &be)).To(BeTrue())
		Expect(be.Index).To(Equal(1))
	})

	It("names a partially placed body", func() {
		Expect(s.Place(r3.Vec{X: 100, Y: 100}, 0.5, r3.Vec{})).To(Succeed())
		Expect(s.Place(r3.Vec{X: 300, Y: 100}, 0.5, r3.Vec{})).To(Succeed())
		Expect(s.Current().SetPosition(r3.Vec{X: 200, Y: 300})).To(Succeed())
		Expect(s.Current().SetSize(100)).To(Succeed())

		_, err := s.Bodies()
		var be *dynamo.BodyError
		Expect(errors.As(err, &be)).To(BeTrue())
		Expect(be.Index).To(Equal(2))
	})

	It("hands off three bodies in placement order", func() {
		Expect(s.Place(r3.Vec{X: 100, Y: 100}, 0.1, r3.Vec{X: 1})).To(Succeed())
		Expect(s.Place(r3.Vec{X: 300, Y: 100}, 0.2, r3.Vec{Y: 1})).To(Succeed())
		Expect(s.Place(r3.Vec{X: 200, Y: 300}, 0.3, r3.Vec{})).To(Succeed())

		Expect(s.Ready()).To(BeTrue())
		Expect(s.Current()).To(BeNil())

		bodies, err := s.Bodies()
		Expect(err).NotTo(HaveOccurred())
		Expect(bodies[0].Position).To(Equal(r3.Vec{X: 100, Y: 100}))
		Expect(bodies[1].Mass).To(BeNumerically("~", 2, 1e-12))
		Expect(bodies[2].Mass).To(BeNumerically("~", 3, 1e-12))

		colors := placement.RandomColors(7)
		for i := range bodies {
			Expect(bodies[i].Color).To(Equal(colors[i]))
		}

		Expect(errors.Is(s.Place(r3.Vec{}, 1, r3.Vec{}), dynamo.ErrOutOfOrder)).To(BeTrue())
		Expect(errors.Is(s.Commit(), dynamo.ErrOutOfOrder)).To(BeTrue())
	})

	It("advances through pointer commits", func() {
		for i := 0; i < 3; i++ {
			Expect(s.Index()).To(Equal(i))
			s.Track(r3.Vec{X: float64(100 * (i + 1)), Y: 100})
			Expect(s.Commit()).To(Succeed())
			s.Track(r3.Vec{X: float64(100*(i+1) + 50), Y: 100})
			Expect(s.Commit()).To(Succeed())
			s.Track(r3.Vec{X: float64(100 * (i + 1)), Y: 150})
			Expect(s.Commit()).To(Succeed())
		}
		Expect(s.Ready()).To(BeTrue())
		Expect(s.Placements()).To(HaveLen(3))
	})
})
