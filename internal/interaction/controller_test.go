package interaction_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballpit/internal/interaction"
	"github.com/san-kum/ballpit/internal/particle"
)

func velocities(st *particle.Store) []particle.Vec2 {
	vs := make([]particle.Vec2, st.Len())
	for i, p := range st.Particles() {
		vs[i] = p.Vel
	}
	return vs
}

var _ = Describe("Controller", func() {
	var (
		store *particle.Store
		ctrl  *interaction.Controller
	)

	BeforeEach(func() {
		var err error
		store, err = particle.NewStore([]particle.Particle{
			particle.Must(particle.New(100, 100, 20)),
			particle.Must(particle.New(130, 100, 20)),
			particle.Must(particle.New(400, 400, 20)).WithVelocity(1, 1),
		})
		Expect(err).NotTo(HaveOccurred())
		ctrl = interaction.NewController(store)
	})

	It("starts idle", func() {
		Expect(ctrl.State()).To(Equal(interaction.Idle))
		_, ok := ctrl.Active()
		Expect(ok).To(BeFalse())
	})

	Describe("hit-testing on pointer down", func() {
		It("stays idle when the pointer misses every particle", func() {
			Expect(ctrl.PointerDown(250, 250)).To(BeFalse())
			Expect(ctrl.State()).To(Equal(interaction.Idle))
		})

		It("selects a particle whose edge is exactly under the pointer", func() {
			Expect(ctrl.PointerDown(400, 420)).To(BeTrue())
			i, ok := ctrl.Active()
			Expect(ok).To(BeTrue())
			Expect(i).To(Equal(2))
		})

		It("selects the first particle in store order when several match", func() {
			ctrl.PointerDown(115, 100)
			i, _ := ctrl.Active()
			Expect(i).To(Equal(0))
		})

		It("records the pointer position as the anchor", func() {
			ctrl.PointerDown(405, 395)
			Expect(ctrl.State()).To(Equal(interaction.Dragging))
			Expect(ctrl.Anchor()).To(Equal(particle.Vec2{X: 405, Y: 395}))
		})

		It("keeps the current drag when a later press misses", func() {
			ctrl.PointerDown(400, 400)
			ctrl.PointerDown(700, 700)
			i, _ := ctrl.Active()
			Expect(i).To(Equal(2))
			Expect(ctrl.Anchor()).To(Equal(particle.Vec2{X: 400, Y: 400}))
		})
	})

	Describe("dragging", func() {
		BeforeEach(func() {
			Expect(ctrl.PointerDown(400, 400)).To(BeTrue())
		})

		It("sets velocity to the displacement from the anchor over ten", func() {
			ctrl.PointerMove(350, 430)
			p, _ := store.At(2)
			Expect(p.Vel).To(Equal(particle.Vec2{X: 5, Y: -3}))
		})

		It("does not move the anchor between moves", func() {
			ctrl.PointerMove(380, 400)
			ctrl.PointerMove(300, 400)
			p, _ := store.At(2)
			Expect(p.Vel).To(Equal(particle.Vec2{X: 10, Y: 0}))
			Expect(ctrl.Anchor()).To(Equal(particle.Vec2{X: 400, Y: 400}))
		})

		It("leaves every other particle untouched", func() {
			before := velocities(store)
			ctrl.PointerMove(320, 480)
			after := velocities(store)
			Expect(after[0]).To(Equal(before[0]))
			Expect(after[1]).To(Equal(before[1]))
		})

		It("never writes position", func() {
			ctrl.PointerMove(0, 0)
			p, _ := store.At(2)
			Expect(p.Pos).To(Equal(particle.Vec2{X: 400, Y: 400}))
		})

		It("keeps dragging with coordinates outside the surface", func() {
			ctrl.PointerMove(-100, 900)
			p, _ := store.At(2)
			Expect(p.Vel).To(Equal(particle.Vec2{X: 50, Y: -50}))
			Expect(ctrl.State()).To(Equal(interaction.Dragging))
		})

		It("releases on pointer up and keeps the last velocity", func() {
			ctrl.PointerMove(390, 410)
			ctrl.PointerUp()
			Expect(ctrl.State()).To(Equal(interaction.Idle))

			ctrl.PointerMove(0, 0)
			p, _ := store.At(2)
			Expect(p.Vel).To(Equal(particle.Vec2{X: 1, Y: -1}))
		})
	})

	It("ignores moves while idle", func() {
		before := velocities(store)
		ctrl.PointerMove(10, 10)
		Expect(velocities(store)).To(Equal(before))
	})

	It("dispatches typed events", func() {
		ctrl.Handle(interaction.Event{Kind: interaction.Down, X: 100, Y: 100})
		ctrl.Handle(interaction.Event{Kind: interaction.Move, X: 80, Y: 90})
		p, _ := store.At(0)
		Expect(p.Vel).To(Equal(particle.Vec2{X: 2, Y: 1}))

		ctrl.Handle(interaction.Event{Kind: interaction.Up})
		Expect(ctrl.State()).To(Equal(interaction.Idle))
	})

	It("is a no-op without a store", func() {
		c := interaction.NewController(nil)
		Expect(c.PointerDown(100, 100)).To(BeFalse())
		c.PointerMove(1, 1)
		c.PointerUp()
		Expect(c.State()).To(Equal(interaction.Idle))
	})
})

var _ = Describe("Local", func() {
	It("subtracts the surface offset from client coordinates", func() {
		x, y := interaction.Local(130, 75, 30, 25)
		Expect(x).To(Equal(100.0))
		Expect(y).To(Equal(50.0))
	})
})
