package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m60pair/insts"
)

var _ = Describe("DecodeLength", func() {
	DescribeTable("instruction lengths",
		func(words []uint16, expected int) {
			n, ok := insts.DecodeLength(words)
			Expect(ok).To(BeTrue())
			Expect(n).To(Equal(expected))
		},
		Entry("nop", []uint16{0x4E71}, 1),
		Entry("move.l d0,d1", []uint16{0x2200}, 1),
		Entry("move.l #imm,d0", []uint16{0x203C, 0x1234, 0x5678}, 3),
		Entry("move.w #imm,d0", []uint16{0x303C, 0x1234}, 2),
		Entry("move.w (d16,a0),(d16,a1)", []uint16{0x3368, 0x0004, 0x0008}, 3),
		Entry("move.l abs.l,abs.l", []uint16{0x23F9, 0, 0x1000, 0, 0x2000}, 5),
		Entry("move.l (d8,a0,d1.w),d2", []uint16{0x2430, 0x1004}, 2),
		Entry("move.l ([bd,a0,d1.l*4],od),d2", []uint16{0x2430, 0x1D22, 0x0008, 0x000C}, 4),
		Entry("lea (d16,a0),a1", []uint16{0x43E8, 0x0004}, 2),
		Entry("bra.s", []uint16{0x6002}, 1),
		Entry("bra.w", []uint16{0x6000, 0x0010}, 2),
		Entry("bra.l", []uint16{0x60FF, 0x0000, 0x0010}, 3),
		Entry("jsr (d16,pc)", []uint16{0x4EBA, 0x0010}, 2),
		Entry("movem.l list,-(sp)", []uint16{0x48E7, 0xFFFE}, 2),
		Entry("link a6,#-8", []uint16{0x4E56, 0xFFF8}, 2),
		Entry("muls.l d0,d1:d2", []uint16{0x4C00, 0x2C01}, 2),
		Entry("addi.l #imm,(a0)", []uint16{0x0690, 0x0000, 0x0001}, 3),
		Entry("btst #3,(d16,a0)", []uint16{0x0828, 0x0003, 0x0010}, 3),
		Entry("dbra d0", []uint16{0x51C8, 0xFFFE}, 2),
		Entry("trapne.w", []uint16{0x56FA, 0x0001}, 2),
		Entry("movep.w (d16,a0),d0", []uint16{0x0108, 0x0004}, 2),
		Entry("cas2.l", []uint16{0x0EFC, 0x0000, 0x0000}, 3),
		Entry("bfextu (a0){0:8},d1", []uint16{0xE9D0, 0x1008}, 2),
		Entry("fadd.x fp1,fp0", []uint16{0xF200, 0x0422}, 2),
		Entry("fmove.l #imm,fp0", []uint16{0xF23C, 0x4000, 0x0000, 0x0001}, 4),
		Entry("fbeq.w", []uint16{0xF281, 0x0010}, 2),
		Entry("move16 (a0)+,(a1)+", []uint16{0xF620, 0x9000}, 2),
	)

	It("should ignore words past the instruction", func() {
		n, ok := insts.DecodeLength([]uint16{0x4E71, 0x203C, 0x0000, 0x0001})
		Expect(ok).To(BeTrue())
		Expect(n).To(Equal(1))
	})

	It("should reject unrecognised opwords", func() {
		_, ok := insts.DecodeLength([]uint16{0xA000})
		Expect(ok).To(BeFalse())
	})

	It("should reject instructions that run past the supplied words", func() {
		_, ok := insts.DecodeLength([]uint16{0x203C, 0x0000})
		Expect(ok).To(BeFalse())
	})

	It("should reject instructions longer than eight words", func() {
		words := []uint16{
			0x23B0, 0x0133, 0x0000, 0x0010, 0x0000, 0x0020,
			0x0133, 0x0000, 0x0010, 0x0000, 0x0020,
		}
		_, ok := insts.DecodeLength(words)
		Expect(ok).To(BeFalse())
	})

	It("should reject invalid addressing modes", func() {
		// move.l d0,#imm
		_, ok := insts.DecodeLength([]uint16{0x29C0, 0x0000, 0x0000})
		Expect(ok).To(BeFalse())
	})

	It("should reject empty input", func() {
		_, ok := insts.DecodeLength(nil)
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	Describe("Parse", func() {
		It("should decode register moves", func() {
			op, err := decoder.Parse([]uint16{0x2200})
			Expect(err).ToNot(HaveOccurred())
			Expect(op.Op).To(Equal(insts.OpMOVE))
			Expect(op.Size).To(Equal(insts.Long))
			Expect(op.Src.Register()).To(Equal(insts.D(0)))
			Expect(op.Dst.Register()).To(Equal(insts.D(1)))
		})

		It("should decode MOVEA from the destination mode", func() {
			// movea.l d0,a1
			op, err := decoder.Parse([]uint16{0x2240})
			Expect(err).ToNot(HaveOccurred())
			Expect(op.Op).To(Equal(insts.OpMOVEA))
			Expect(op.Dst.Register()).To(Equal(insts.A(1)))
		})

		It("should sign-extend MOVEQ data", func() {
			op, err := decoder.Parse([]uint16{0x70FF})
			Expect(err).ToNot(HaveOccurred())
			Expect(op.Op).To(Equal(insts.OpMOVEQ))
			Expect(op.Src.Immediate).To(Equal(uint32(0xFFFFFFFF)))
		})

		It("should decode quick data of eight", func() {
			// addq.l #8,d0
			op, err := decoder.Parse([]uint16{0x5080})
			Expect(err).ToNot(HaveOccurred())
			Expect(op.Op).To(Equal(insts.OpADDQ))
			Expect(op.Src.Immediate).To(Equal(uint32(8)))
		})

		It("should decode branch displacements", func() {
			op, err := decoder.Parse([]uint16{0x67FE})
			Expect(err).ToNot(HaveOccurred())
			Expect(op.Op).To(Equal(insts.OpBcc))
			Expect(op.Cond).To(Equal(uint8(7)))
			Expect(op.Disp).To(Equal(int32(-2)))
		})

		It("should decode full-format memory indirect operands", func() {
			op, err := decoder.Parse([]uint16{0x2430, 0x1D22, 0x0008, 0x000C})
			Expect(err).ToNot(HaveOccurred())
			Expect(op.Src.Mode).To(Equal(insts.ModeIndex))
			Expect(op.Src.Full).To(BeTrue())
			Expect(op.Src.MemoryIndirect).To(BeTrue())
			Expect(op.Src.PostIndexed).To(BeFalse())
			Expect(op.Src.Base).To(Equal(insts.A(0)))
			Expect(op.Src.Index).To(Equal(insts.D(1)))
			Expect(op.Src.Scale).To(Equal(uint8(4)))
			Expect(op.Src.Disp).To(Equal(int32(8)))
			Expect(op.Src.OuterDisp).To(Equal(int32(12)))
		})

		It("should list MOVEM registers in D0-A7 order for predecrement", func() {
			// movem.l d0/a6,-(sp)
			op, err := decoder.Parse([]uint16{0x48E7, 0x8002})
			Expect(err).ToNot(HaveOccurred())
			Expect(op.Registers()).To(Equal([]insts.ExecutionResource{
				insts.D(0), insts.A(6),
			}))
		})

		It("should decode the register pair of 64-bit multiplies", func() {
			op, err := decoder.Parse([]uint16{0x4C00, 0x2C01})
			Expect(err).ToNot(HaveOccurred())
			Expect(op.Op).To(Equal(insts.OpMULS))
			Expect(op.Wide).To(BeTrue())
			Expect(op.Dst.Register()).To(Equal(insts.D(2)))
			Expect(op.Reg2).To(Equal(insts.D(1)))
		})
	})
})
