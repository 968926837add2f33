package disasm

import (
	"fmt"
	"strings"

	"github.com/sarchlab/m60pair/insts"
)

var fpuConditionNames = [32]string{
	"f", "eq", "ogt", "oge", "olt", "ole", "ogl", "or",
	"un", "ueq", "ugt", "uge", "ult", "ule", "ne", "t",
	"sf", "seq", "gt", "ge", "lt", "le", "gl", "gle",
	"ngle", "ngl", "nle", "nlt", "nge", "ngt", "sne", "st",
}

// fpuFormats are the size suffixes of the source format field.
var fpuFormats = [8]string{"l", "s", "x", "p", "w", "d", "b", "p"}

var fpuOpNames = map[uint16]string{
	0x00: "fmove", 0x01: "fint", 0x02: "fsinh", 0x03: "fintrz",
	0x04: "fsqrt", 0x06: "flognp1", 0x08: "fetoxm1", 0x09: "ftanh",
	0x0A: "fatan", 0x0C: "fasin", 0x0D: "fatanh", 0x0E: "fsin",
	0x0F: "ftan", 0x10: "fetox", 0x11: "ftwotox", 0x12: "ftentox",
	0x14: "flogn", 0x15: "flog10", 0x16: "flog2", 0x18: "fabs",
	0x19: "fcosh", 0x1A: "fneg", 0x1C: "facos", 0x1D: "fcos",
	0x1E: "fgetexp", 0x1F: "fgetman", 0x20: "fdiv", 0x21: "fmod",
	0x22: "fadd", 0x23: "fmul", 0x24: "fsgldiv", 0x25: "frem",
	0x26: "fscale", 0x27: "fsglmul", 0x28: "fsub", 0x38: "fcmp",
	0x3A: "ftst",
	0x40: "fsmove", 0x41: "fssqrt", 0x44: "fdmove", 0x45: "fdsqrt",
	0x58: "fsabs", 0x5A: "fsneg", 0x5C: "fdabs", 0x5E: "fdneg",
	0x60: "fsdiv", 0x62: "fsadd", 0x63: "fsmul", 0x64: "fddiv",
	0x66: "fdadd", 0x67: "fdmul", 0x68: "fssub", 0x6C: "fdsub",
}

func fpuOpName(cmd uint16) string {
	if name, ok := fpuOpNames[cmd&0x7F]; ok {
		return name
	}
	return "fgen"
}

// fpuGeneral returns the mnemonic and operands of an F-line general
// instruction.
func fpuGeneral(op *insts.Operation, words []uint16) (string, string) {
	cmd := op.FPUCommand
	src, dst := (cmd>>10)&7, (cmd>>7)&7

	switch cmd >> 13 {
	case 0:
		return fpuOpName(cmd) + ".x", fmt.Sprintf("FP%d, FP%d", src, dst)
	case 2:
		if cmd&0xFC00 == 0x5C00 {
			return "fmovecr.x", fmt.Sprintf("#$%x, FP%d", cmd&0x7F, dst)
		}
		return fpuOpName(cmd) + "." + fpuFormats[src],
			fmt.Sprintf("%s, FP%d", fpuSource(op, words), dst)
	case 3:
		return "fmove." + fpuFormats[src],
			fmt.Sprintf("FP%d, %s", dst, operand(&op.Dst, insts.Long))
	case 4:
		return "fmove.l", operand(&op.Src, insts.Long) + ", " + fpuControlList(cmd)
	case 5:
		return "fmove.l", fpuControlList(cmd) + ", " + operand(&op.Dst, insts.Long)
	case 6:
		return "fmovem.x", operand(&op.Src, insts.Long) + ", " + fpuRegisterList(cmd)
	case 7:
		return "fmovem.x", fpuRegisterList(cmd) + ", " + operand(&op.Dst, insts.Long)
	}
	return "fgen", ""
}

// fpuSource formats the source operand; immediates are printed from the
// raw extension words since they can be up to six words long.
func fpuSource(op *insts.Operation, words []uint16) string {
	if op.Src.Mode != insts.ModeImmediate {
		return operand(&op.Src, insts.Long)
	}
	var sb strings.Builder
	sb.WriteString("#$")
	for _, w := range words[op.Words-op.Src.ExtWords : op.Words] {
		fmt.Fprintf(&sb, "%04x", w)
	}
	return sb.String()
}

func fpuControlList(cmd uint16) string {
	var regs []string
	if cmd&0x1000 != 0 {
		regs = append(regs, "FPCR")
	}
	if cmd&0x0800 != 0 {
		regs = append(regs, "FPSR")
	}
	if cmd&0x0400 != 0 {
		regs = append(regs, "FPIAR")
	}
	return strings.Join(regs, "/")
}

// fpuRegisterList decodes an FMOVEM list. Dynamic lists name a data
// register; static predecrement lists are stored FP7..FP0 from bit 0.
func fpuRegisterList(cmd uint16) string {
	mode := (cmd >> 11) & 3
	if mode&1 != 0 {
		return fmt.Sprintf("D%d", (cmd>>4)&7)
	}

	var regs []string
	for i := uint16(0); i < 8; i++ {
		bit := 7 - i
		if mode == 0 {
			bit = i
		}
		if cmd&(1<<bit) != 0 {
			regs = append(regs, fmt.Sprintf("FP%d", i))
		}
	}
	return strings.Join(regs, "/")
}
