package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/attractors/internal/dynamo"
)

var _ = Describe("Selector", func() {
	It("starts at index 0", func() {
		Expect(NewSelector(3).Index()).To(Equal(0))
	})

	It("wraps around after N cycles", func() {
		s := NewSelector(5)
		for i := 0; i < 5; i++ {
			s.Next()
		}
		Expect(s.Index()).To(Equal(0))
	})

	It("visits every state in order", func() {
		s := NewSelector(3)
		Expect([]int{s.Next(), s.Next(), s.Next()}).To(Equal([]int{1, 2, 0}))
	})

	It("jumps directly to a chosen index", func() {
		s := NewSelector(4)
		Expect(s.Set(2)).To(Succeed())
		Expect(s.Index()).To(Equal(2))
		Expect(s.Next()).To(Equal(3))
	})

	DescribeTable("rejects indices outside the list",
		func(i int) {
			s := NewSelector(3)
			Expect(s.Set(i)).To(MatchError(dynamo.ErrSelectionRange))
			Expect(s.Index()).To(Equal(0))
		},
		Entry("negative", -1),
		Entry("one past the end", 3),
		Entry("far past the end", 42),
	)
})
