package core_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m60pair/insts"
	"github.com/sarchlab/m60pair/timing/core"
	"github.com/sarchlab/m60pair/timing/pipeline"
)

var _ = Describe("Core", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	program := func(words ...uint16) []*insts.Instruction {
		var p []*insts.Instruction
		for i, w := range words {
			inst, _ := decoder.Decode(uint32(i*2), []uint16{w})
			p = append(p, inst)
		}
		return p
	}

	It("should estimate nothing for an empty stream", func() {
		s := core.Estimate(nil)
		Expect(s).To(Equal(core.Stats{}))
		Expect(s.Gain()).To(BeZero())
	})

	It("should pair two independent instructions", func() {
		// moveq #1,d0 ; moveq #2,d1
		s := core.Estimate(program(0x7001, 0x7202))
		Expect(s).To(Equal(core.Stats{Total: 2, Paired: 1, Sequential: 0, EstimatedCycles: 1}))
		Expect(s.Gain()).To(BeNumerically("~", 50.0))
	})

	It("should never offer an instruction for pairing twice", func() {
		// four independent moveq
		s := core.Estimate(program(0x7001, 0x7202, 0x7403, 0x7604))
		Expect(s.Paired).To(Equal(2))
		Expect(s.Sequential).To(Equal(0))
		Expect(s.EstimatedCycles).To(Equal(2))
	})

	It("should count the unpaired trailing instruction", func() {
		s := core.Estimate(program(0x7001, 0x7202, 0x7403))
		Expect(s.Total).To(Equal(3))
		Expect(s.Paired).To(Equal(1))
		// one for the trailing moveq and one for the adjustment
		Expect(s.Sequential).To(Equal(2))
		Expect(s.EstimatedCycles).To(Equal(3))
		Expect(s.Gain()).To(BeZero())
	})

	It("should serialise pOEP-only instructions", func() {
		// nop ; nop ; nop
		s := core.Estimate(program(0x4E71, 0x4E71, 0x4E71))
		Expect(s.Paired).To(Equal(0))
		Expect(s.Sequential).To(Equal(4))
		Expect(s.EstimatedCycles).To(Equal(4))
	})

	It("should skip invalid instructions", func() {
		// moveq ; line A ; moveq
		s := core.Estimate(program(0x7001, 0xA000, 0x7202))
		Expect(s.Total).To(Equal(2))
		Expect(s.Paired).To(Equal(0))
		Expect(s.Sequential).To(Equal(3))
	})

	It("should stay greedy when a later pairing would be better", func() {
		calls := 0
		c := core.NewCore(core.WithPairFunc(
			func(left, right *insts.Instruction) (pipeline.PairabilityTestResult, bool) {
				calls++
				if left.Offset == 0 {
					return pipeline.Success, true
				}
				return pipeline.Test4BothInstructionsReferenceMemory, true
			}))

		s := c.Estimate(program(0x7001, 0x7202, 0x7403))
		Expect(s.Paired).To(Equal(1))
		Expect(calls).To(Equal(1))
	})

	Describe("end-of-walk adjustment", func() {
		It("should add one cycle when fewer than half were paired", func() {
			// moveq ; nop ; moveq ; moveq: nop blocks the first pair
			s := core.Estimate(program(0x7001, 0x4E71, 0x7202, 0x7403))
			Expect(s.Total).To(Equal(4))
			Expect(s.Paired).To(Equal(1))
			// moveq and nop alone, then the adjustment
			Expect(s.Sequential).To(Equal(3))
			Expect(s.EstimatedCycles).To(Equal(4))
		})

		It("should not add a cycle when exactly half were paired", func() {
			s := core.Estimate(program(0x7001, 0x7202))
			Expect(s.Paired * 2).To(Equal(s.Total))
			Expect(s.Sequential).To(Equal(0))
		})

		It("should add a cycle to a single instruction", func() {
			s := core.Estimate(program(0x7001))
			Expect(s).To(Equal(core.Stats{Total: 1, Paired: 0, Sequential: 2, EstimatedCycles: 2}))
		})
	})

	It("should keep the estimate within the serial baseline once anything pairs", func() {
		streams := [][]uint16{
			{0x7001, 0x7202, 0x4E71},
			{0x2200, 0xD481, 0xD280, 0x2081, 0x4E75},
			{0x7001, 0x7202, 0x7403, 0x4E71, 0x7001},
		}
		for _, words := range streams {
			s := core.Estimate(program(words...))
			if s.Paired > 0 {
				Expect(s.EstimatedCycles).To(BeNumerically("<=", s.Total))
			}
		}
	})
})
