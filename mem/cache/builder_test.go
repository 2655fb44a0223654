package cache

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/csim/mem/addressing"
)

var _ = Describe("Builder", func() {
	It("should build a cache with the requested geometry", func() {
		c := MakeBuilder().
			WithGeometry(addressing.Geometry{
				SetBits:       3,
				Associativity: 2,
				BlockBits:     5,
			}).
			Build("L1")

		Expect(c.Name()).To(Equal("L1"))
		Expect(c.NumSets()).To(Equal(8))
		Expect(c.NumWays()).To(Equal(2))
	})

	It("should panic on an invalid geometry", func() {
		b := MakeBuilder().WithWayAssociativity(0)

		Expect(b.Geometry().Validate()).To(HaveOccurred())
		Expect(func() { b.Build("Cache") }).To(Panic())
	})

	It("should build with the lru strategy", func() {
		c := MakeBuilder().WithReplaceStrategy("lru").Build("Cache")

		Expect(c.Access(1, 0)).To(Equal(MissWithInsert))
	})

	It("should panic on an unsupported replace strategy", func() {
		b := MakeBuilder().WithReplaceStrategy("fifo")

		Expect(func() { b.Build("Cache") }).
			To(PanicWith(ContainSubstring("replace strategy fifo")))
	})
})

var _ = Describe("Outcome", func() {
	It("should print like the reference simulator", func() {
		Expect(Hit.String()).To(Equal("hit"))
		Expect(MissWithInsert.String()).To(Equal("miss"))
		Expect(MissWithEviction.String()).To(Equal("miss eviction"))
	})

	It("should classify outcomes", func() {
		Expect(Hit.IsMiss()).To(BeFalse())
		Expect(MissWithInsert.IsMiss()).To(BeTrue())
		Expect(MissWithInsert.IsEviction()).To(BeFalse())
		Expect(MissWithEviction.IsEviction()).To(BeTrue())
	})
})
