package sim

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/attractors/internal/gesture"
)

var _ = Describe("Transform", func() {
	var tr *Transform
	hand := gesture.HandMetrics{Present: true, CenterX: 0.9, CenterY: 0.2, Scale: 1}

	BeforeEach(func() {
		tr = NewTransform(DefaultTransformOptions())
	})

	It("starts at unit scale with no bias", func() {
		Expect(tr.State()).To(Equal(TransformState{Scale: 1}))
	})

	It("eases scale towards the hand target without snapping", func() {
		tr.Update(hand, 1.0/60)
		s := tr.State().Scale
		Expect(s).To(BeNumerically(">", 1))
		Expect(s).To(BeNumerically("<", TargetScale(1)))

		for i := 0; i < 300; i++ {
			tr.Update(hand, 1.0/60)
		}
		Expect(tr.State().Scale).To(BeNumerically("~", TargetScale(1), 1e-6))
	})

	It("maps hand scale into [0.6, 2.4]", func() {
		Expect(TargetScale(0)).To(BeNumerically("~", 0.6, 1e-12))
		Expect(TargetScale(1)).To(BeNumerically("~", 2.4, 1e-12))
	})

	It("biases rotation from the hand offset", func() {
		for i := 0; i < 60; i++ {
			tr.Update(hand, 1.0/60)
		}
		st := tr.State()
		Expect(st.BiasX).To(BeNumerically(">", 0))
		Expect(st.BiasY).To(BeNumerically("<", 0))
		Expect(st.RotY).To(BeNumerically(">", 0))
	})

	It("relaxes monotonically towards scale 1 when the hand is gone", func() {
		for i := 0; i < 120; i++ {
			tr.Update(hand, 1.0/60)
		}
		prev := tr.State().Scale
		Expect(prev).To(BeNumerically(">", 1))

		for i := 0; i < 100; i++ {
			tr.Update(gesture.HandMetrics{}, 1.0/60)
			cur := tr.State().Scale
			Expect(cur).To(BeNumerically("<=", prev))
			Expect(cur).To(BeNumerically(">=", 1))
			Expect(math.IsNaN(cur)).To(BeFalse())
			prev = cur
		}
		Expect(prev).To(BeNumerically("~", 1, 0.01))
	})

	It("relaxes upwards from a small hand without overshooting", func() {
		small := gesture.HandMetrics{Present: true, CenterX: 0.5, CenterY: 0.5, Scale: 0}
		for i := 0; i < 120; i++ {
			tr.Update(small, 1.0/60)
		}
		prev := tr.State().Scale
		for i := 0; i < 100; i++ {
			tr.Update(gesture.HandMetrics{}, 1.0/60)
			cur := tr.State().Scale
			Expect(cur).To(BeNumerically(">=", prev))
			Expect(cur).To(BeNumerically("<=", 1))
			prev = cur
		}
	})

	It("decays bias geometrically when the hand is gone", func() {
		for i := 0; i < 60; i++ {
			tr.Update(hand, 1.0/60)
		}
		b0 := tr.State().BiasX
		tr.Update(gesture.HandMetrics{}, 1.0/60)
		Expect(tr.State().BiasX).To(BeNumerically("~", b0*DefaultTransformOptions().Decay, 1e-12))
	})
})
