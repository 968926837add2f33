package analysis_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m60pair/analysis"
	"github.com/sarchlab/m60pair/insts"
)

var _ = Describe("Program", func() {
	It("should refuse instructions past its capacity", func() {
		p := analysis.NewProgram(2)
		Expect(p.Add(&insts.Instruction{Valid: true})).To(Succeed())
		Expect(p.Full()).To(BeFalse())
		Expect(p.Add(&insts.Instruction{})).To(Succeed())
		Expect(p.Full()).To(BeTrue())

		Expect(p.Add(&insts.Instruction{Valid: true})).To(MatchError(analysis.ErrCapacityExceeded))
		Expect(p.Len()).To(Equal(2))
		Expect(p.Capacity()).To(Equal(2))
		Expect(p.ValidCount()).To(Equal(1))
	})
})
