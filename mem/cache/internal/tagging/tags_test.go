package tagging

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Tags", func() {
	var (
		tags TagArray
	)

	BeforeEach(func() {
		tags = NewTagArray(16, 4)
	})

	It("should start with all blocks invalid", func() {
		Expect(tags.NumSets()).To(Equal(16))
		Expect(tags.NumWays()).To(Equal(4))

		set := tags.GetSet(3)
		Expect(set.Blocks).To(HaveLen(4))

		for i, block := range set.Blocks {
			Expect(block.IsValid).To(BeFalse())
			Expect(block.SetID).To(Equal(3))
			Expect(block.WayID).To(Equal(i))
		}
	})

	It("should lookup", func() {
		set := tags.GetSet(2)
		set.Blocks[1].Tag = 0x100
		set.Blocks[1].IsValid = true

		block, ok := tags.Lookup(2, 0x100)

		Expect(ok).To(BeTrue())
		Expect(block.WayID).To(Equal(1))
	})

	It("should not find a block in another set", func() {
		set := tags.GetSet(2)
		set.Blocks[1].Tag = 0x100
		set.Blocks[1].IsValid = true

		_, ok := tags.Lookup(3, 0x100)

		Expect(ok).To(BeFalse())
	})

	It("should not hit an invalid block", func() {
		set := tags.GetSet(0)
		set.Blocks[0].Tag = 0

		block, ok := tags.Lookup(0, 0)

		Expect(ok).To(BeFalse())
		Expect(block).To(BeZero())
	})

	It("should find way 0 as empty", func() {
		block, ok := tags.FindEmpty(5)

		Expect(ok).To(BeTrue())
		Expect(block.WayID).To(Equal(0))
	})

	It("should find the first invalid block", func() {
		set := tags.GetSet(5)
		set.Blocks[0].IsValid = true
		set.Blocks[2].IsValid = true

		block, ok := tags.FindEmpty(5)

		Expect(ok).To(BeTrue())
		Expect(block.WayID).To(Equal(1))
	})

	It("should report a full set", func() {
		set := tags.GetSet(5)
		for i := range set.Blocks {
			set.Blocks[i].IsValid = true
		}

		_, ok := tags.FindEmpty(5)

		Expect(ok).To(BeFalse())
	})

	It("should update a block", func() {
		block := Block{SetID: 7, WayID: 3, Tag: 0x42, IsValid: true}

		tags.Update(block)

		Expect(tags.GetSet(7).Blocks[3]).To(Equal(block))
	})

	It("should age other blocks when visiting a block", func() {
		set := tags.GetSet(1)
		set.Blocks[0].Age = 3
		set.Blocks[1].Age = 5

		tags.Visit(set.Blocks[1])

		Expect(set.Blocks[0].Age).To(Equal(uint64(4)))
		Expect(set.Blocks[1].Age).To(Equal(uint64(0)))
		Expect(set.Blocks[2].Age).To(Equal(uint64(1)))
		Expect(set.Blocks[3].Age).To(Equal(uint64(1)))
		Expect(tags.GetSet(0).Blocks[0].Age).To(Equal(uint64(0)))
	})

	It("should panic on a set out of range", func() {
		Expect(func() { tags.GetSet(16) }).To(Panic())
		Expect(func() { tags.Lookup(-1, 0) }).To(Panic())
	})

	It("should invalidate all blocks on reset", func() {
		tags.Update(Block{SetID: 0, WayID: 0, Tag: 1, IsValid: true, Age: 2})

		tags.Reset()

		Expect(tags.GetSet(0).Blocks[0]).To(Equal(Block{SetID: 0, WayID: 0}))
	})
})
