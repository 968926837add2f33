package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m60pair/insts"
	"github.com/sarchlab/m60pair/timing/pipeline"
)

var _ = Describe("HazardUnit", func() {
	var (
		h          *pipeline.HazardUnit
		prev, next *insts.UOp
	)

	BeforeEach(func() {
		h = pipeline.NewHazardUnit()
		prev = &insts.UOp{}
		next = &insts.UOp{}
	})

	Describe("Dependency", func() {
		It("should prefer the AGU result", func() {
			prev.AguResult = insts.A(0)
			prev.IeeResult = insts.A(0)
			Expect(h.Dependency(insts.A(0), prev)).To(Equal(pipeline.DependAguResult))
		})

		It("should find the IEE result", func() {
			prev.IeeResult = insts.D(3)
			Expect(h.Dependency(insts.D(3), prev)).To(Equal(pipeline.DependIeeResult))
			Expect(h.Dependency(insts.D(4), prev)).To(Equal(pipeline.DependNone))
		})

		It("should ignore non-register resources", func() {
			prev.IeeResult = insts.MemoryOperand
			prev.AguResult = insts.None
			Expect(h.Dependency(insts.MemoryOperand, prev)).To(Equal(pipeline.DependNone))
			Expect(h.Dependency(insts.None, prev)).To(Equal(pipeline.DependNone))
		})
	})

	Describe("DetectAguHazard", func() {
		It("should check the base before the index", func() {
			prev.AguResult = insts.A(1)
			prev.IeeResult = insts.D(2)
			next.AguBase = insts.A(1)
			next.AguIndex = insts.D(2)
			Expect(h.DetectAguHazard(prev, next)).
				To(Equal(pipeline.Test5BaseRegisterDependsOnAguResult))

			next.AguBase = insts.A(5)
			Expect(h.DetectAguHazard(prev, next)).
				To(Equal(pipeline.Test5IndexRegisterDependsOnIeeResult))
		})
	})

	Describe("bypass paths", func() {
		It("should forward a long move result to either IEE input", func() {
			prev.IeeOperation, prev.IeeOperationSize = insts.IeeMove, insts.Long
			prev.IeeResult = insts.D(0)
			next.IeeB = insts.D(0)
			Expect(h.MoveBypass(prev, next)).To(BeTrue())
			Expect(h.DetectIeeHazard(prev, next)).To(Equal(pipeline.Success))

			prev.IeeOperationSize = insts.Word
			Expect(h.MoveBypass(prev, next)).To(BeFalse())
			Expect(h.DetectIeeHazard(prev, next)).
				To(Equal(pipeline.Test6IeeBRegisterDependsOnIeeResult))
		})

		It("should forward a long result into a long store of a data register", func() {
			prev.IeeOperation, prev.IeeOperationSize = insts.IeeAdd, insts.Long
			prev.IeeResult = insts.D(1)
			next.IeeOperation, next.IeeOperationSize = insts.IeeMove, insts.Long
			next.IeeA = insts.D(1)
			next.IeeResult = insts.MemoryOperand
			Expect(h.StoreBypass(prev, next)).To(BeTrue())

			next.IeeResult = insts.D(2)
			Expect(h.StoreBypass(prev, next)).To(BeFalse())
			Expect(h.DetectIeeHazard(prev, next)).
				To(Equal(pipeline.Test6IeeARegisterDependsOnIeeResult))
		})

		It("should not forward address registers into a store", func() {
			prev.IeeOperationSize = insts.Long
			prev.IeeResult = insts.A(1)
			next.IeeOperation, next.IeeOperationSize = insts.IeeMove, insts.Long
			next.IeeA = insts.A(1)
			next.IeeResult = insts.MemoryOperand
			Expect(h.StoreBypass(prev, next)).To(BeFalse())
		})
	})
})
