// Package disasm renders MC680x0 instruction words as assembly text.
//
// Output follows the Motorola syntax of the Musashi disassembler:
// lowercase mnemonics padded to eight columns, uppercase register names and
// dollar-prefixed hexadecimal numbers. Words that do not decode, or that
// need a newer CPU than the one selected, render as a dc.w directive.
//
// The text is for display only and never feeds the pairing analysis.
package disasm

import (
	"fmt"
	"strings"

	"github.com/sarchlab/m60pair/insts"
)

// Disassembler renders one instruction.
type Disassembler interface {
	// Disassemble returns the text of the instruction at the start of
	// words, loaded at address pc.
	Disassemble(pc uint32, words []uint16) string
}

// Formatter is the Disassembler built on the insts decoder.
type Formatter struct {
	cpu     CPUType
	decoder *insts.Decoder
}

// New creates a Formatter accepting the instruction set of cpu.
func New(cpu CPUType) *Formatter {
	return &Formatter{
		cpu:     cpu,
		decoder: insts.NewDecoder(),
	}
}

// CPU returns the selected CPU model.
func (f *Formatter) CPU() CPUType {
	return f.cpu
}

// Disassemble implements Disassembler.
func (f *Formatter) Disassemble(pc uint32, words []uint16) string {
	if len(words) == 0 {
		return ""
	}

	op, err := f.decoder.Parse(words)
	if err != nil || requiredCPU(op) > f.cpu {
		return illegal(words[0])
	}

	name, args := mnemonic(op), operands(op, pc, words)
	if op.Op == insts.OpFGEN {
		name, args = fpuGeneral(op, words)
	}
	if args == "" {
		return name
	}
	return fmt.Sprintf("%-7s %s", name, args)
}

func illegal(w uint16) string {
	return fmt.Sprintf("dc.w    $%04x; ILLEGAL", w)
}

// requiredCPU returns the oldest model that executes op.
func requiredCPU(op *insts.Operation) CPUType {
	cpu := CPU68000
	raise := func(c CPUType) {
		if c > cpu {
			cpu = c
		}
	}

	switch op.Op {
	case insts.OpRTD, insts.OpMOVEC, insts.OpMOVES, insts.OpBKPT,
		insts.OpMOVEfromCCR:
		raise(CPU68010)
	case insts.OpEXTB, insts.OpCAS, insts.OpCAS2, insts.OpCMP2, insts.OpCHK2,
		insts.OpPACK, insts.OpUNPK, insts.OpTRAPcc,
		insts.OpBFTST, insts.OpBFEXTU, insts.OpBFCHG, insts.OpBFEXTS,
		insts.OpBFCLR, insts.OpBFFFO, insts.OpBFSET, insts.OpBFINS,
		insts.OpFGEN, insts.OpFBcc, insts.OpFScc, insts.OpFSAVE,
		insts.OpFRESTORE:
		raise(CPU68020)
	case insts.OpMOVE16, insts.OpCINV, insts.OpCPUSH, insts.OpPFLUSH:
		raise(CPU68040)
	case insts.OpMULU, insts.OpMULS, insts.OpDIVU, insts.OpDIVS, insts.OpCHK,
		insts.OpBcc, insts.OpBRA, insts.OpBSR, insts.OpLINK:
		if op.Size == insts.Long {
			raise(CPU68020)
		}
	}

	for _, o := range []*insts.Operand{&op.Src, &op.Dst} {
		if o.Full || o.Scale > 1 {
			raise(CPU68020)
		}
	}
	return cpu
}

func mnemonic(op *insts.Operation) string {
	name := op.Op.String()
	switch op.Op {
	case insts.OpBcc, insts.OpScc, insts.OpDBcc, insts.OpTRAPcc:
		name += insts.ConditionName(op.Cond)
	case insts.OpFBcc:
		name += fpuConditionNames[op.Cond&31]
	case insts.OpDIVU, insts.OpDIVS:
		if op.Size == insts.Long && !op.Wide && op.Reg2 != op.Dst.Register() {
			name += "l"
		}
	}

	if hasSizeSuffix(op) {
		name += "." + op.Size.String()
	}
	return name
}

func hasSizeSuffix(op *insts.Operation) bool {
	switch op.Op {
	case insts.OpLEA, insts.OpPEA, insts.OpJMP, insts.OpJSR, insts.OpMOVEQ,
		insts.OpEXG, insts.OpSWAP, insts.OpUNLK, insts.OpScc, insts.OpDBcc,
		insts.OpBTST, insts.OpBCHG, insts.OpBCLR, insts.OpBSET,
		insts.OpNBCD, insts.OpTAS, insts.OpABCD, insts.OpSBCD,
		insts.OpBFTST, insts.OpBFEXTU, insts.OpBFCHG, insts.OpBFEXTS,
		insts.OpBFCLR, insts.OpBFFFO, insts.OpBFSET, insts.OpBFINS,
		insts.OpMOVEfromSR, insts.OpMOVEtoSR, insts.OpMOVEfromCCR,
		insts.OpMOVEtoCCR, insts.OpMOVEUSP, insts.OpSTOP, insts.OpRTD:
		return false
	case insts.OpBcc, insts.OpBRA, insts.OpBSR, insts.OpLINK, insts.OpFBcc:
		return op.Size == insts.Long
	}

	if op.Dst.Mode == insts.ModeCCR || op.Dst.Mode == insts.ModeSR {
		return false
	}
	return op.Size != insts.Unsized
}

func operands(op *insts.Operation, pc uint32, words []uint16) string {
	switch op.Op {
	case insts.OpBcc, insts.OpBRA, insts.OpBSR, insts.OpFBcc:
		return target(pc, op.Disp)
	case insts.OpDBcc:
		return operand(&op.Dst, op.Size) + ", " + target(pc, op.Disp)
	case insts.OpLINK:
		return fmt.Sprintf("%s, #%s", operand(&op.Src, op.Size), signedHex(op.Disp))
	case insts.OpRTD:
		return "#" + signedHex(op.Disp)
	case insts.OpTRAP, insts.OpSTOP:
		return fmt.Sprintf("#$%x", op.Data)
	case insts.OpBKPT:
		return fmt.Sprintf("#%d", op.Data)
	case insts.OpTRAPcc:
		switch op.Size {
		case insts.Word:
			return fmt.Sprintf("#$%x", words[1])
		case insts.Long:
			return fmt.Sprintf("#$%x", uint32(words[1])<<16|uint32(words[2]))
		}
		return ""
	case insts.OpMOVEQ:
		return fmt.Sprintf("#%s, %s", signedHex(int32(op.Src.Immediate)), operand(&op.Dst, op.Size))
	case insts.OpADDQ, insts.OpSUBQ, insts.OpASL, insts.OpASR, insts.OpLSL,
		insts.OpLSR, insts.OpROL, insts.OpROR, insts.OpROXL, insts.OpROXR:
		if op.Src.Mode == insts.ModeImmediate {
			return fmt.Sprintf("#%d, %s", op.Src.Immediate, operand(&op.Dst, op.Size))
		}
	case insts.OpMULU, insts.OpMULS, insts.OpDIVU, insts.OpDIVS:
		if op.Size == insts.Long {
			return mulDivLong(op)
		}
	case insts.OpBFTST, insts.OpBFEXTU, insts.OpBFCHG, insts.OpBFEXTS,
		insts.OpBFCLR, insts.OpBFFFO, insts.OpBFSET, insts.OpBFINS:
		return bitField(op)
	case insts.OpMOVEM:
		list := registerList(op.Registers())
		if op.Src.Mode == insts.ModeRegList {
			return list + ", " + operand(&op.Dst, op.Size)
		}
		return operand(&op.Src, op.Size) + ", " + list
	}

	var args []string
	for _, o := range []*insts.Operand{&op.Src, &op.Dst} {
		if s := operand(o, op.Size); s != "" {
			args = append(args, s)
		}
	}
	return strings.Join(args, ", ")
}

func target(pc uint32, disp int32) string {
	return fmt.Sprintf("$%x", pc+2+uint32(disp))
}

func signedHex(v int32) string {
	if v < 0 {
		return fmt.Sprintf("-$%x", -int64(v))
	}
	return fmt.Sprintf("$%x", v)
}

func regName(r insts.ExecutionResource) string {
	return strings.ToUpper(r.String())
}

func operand(o *insts.Operand, size insts.OperationSize) string {
	switch o.Mode {
	case insts.ModeDataReg:
		return fmt.Sprintf("D%d", o.Reg)
	case insts.ModeAddrReg:
		return fmt.Sprintf("A%d", o.Reg)
	case insts.ModeIndirect:
		return fmt.Sprintf("(A%d)", o.Reg)
	case insts.ModePostInc:
		return fmt.Sprintf("(A%d)+", o.Reg)
	case insts.ModePreDec:
		return fmt.Sprintf("-(A%d)", o.Reg)
	case insts.ModeDisp:
		return fmt.Sprintf("(%s,A%d)", signedHex(o.Disp), o.Reg)
	case insts.ModeIndex:
		return indexed(o, fmt.Sprintf("A%d", o.Reg))
	case insts.ModeAbsShort:
		return fmt.Sprintf("$%x.w", uint16(o.Absolute))
	case insts.ModeAbsLong:
		return fmt.Sprintf("$%x.l", o.Absolute)
	case insts.ModePCDisp:
		return fmt.Sprintf("(%s,PC)", signedHex(o.Disp))
	case insts.ModePCIndex:
		return indexed(o, "PC")
	case insts.ModeImmediate:
		return fmt.Sprintf("#$%x", truncate(o.Immediate, size))
	case insts.ModeCCR:
		return "CCR"
	case insts.ModeSR:
		return "SR"
	case insts.ModeUSP:
		return "USP"
	}
	return ""
}

func truncate(v uint32, size insts.OperationSize) uint32 {
	switch size {
	case insts.Byte:
		return v & 0xFF
	case insts.Word:
		return v & 0xFFFF
	}
	return v
}

// indexed formats the brief and full extension word modes. Suppressed
// components are left out.
func indexed(o *insts.Operand, base string) string {
	if o.Base == insts.None {
		base = ""
	}

	index := ""
	if o.Index != insts.None {
		index = regName(o.Index) + ".w"
		if o.IndexLong {
			index = regName(o.Index) + ".l"
		}
		if o.Scale > 1 {
			index += fmt.Sprintf("*%d", o.Scale)
		}
	}

	if !o.Full {
		return fmt.Sprintf("(%s,%s,%s)", signedHex(o.Disp), base, index)
	}

	var inner []string
	if o.Disp != 0 {
		inner = append(inner, signedHex(o.Disp))
	}
	if base != "" {
		inner = append(inner, base)
	}
	if index != "" && !o.PostIndexed {
		inner = append(inner, index)
	}
	if len(inner) == 0 {
		inner = append(inner, "$0")
	}
	if !o.MemoryIndirect {
		return "(" + strings.Join(inner, ",") + ")"
	}

	outer := []string{"[" + strings.Join(inner, ",") + "]"}
	if index != "" && o.PostIndexed {
		outer = append(outer, index)
	}
	if o.OuterDisp != 0 {
		outer = append(outer, signedHex(o.OuterDisp))
	}
	return "(" + strings.Join(outer, ",") + ")"
}

// registerList formats registers in D0..A7 order as ranges, "D0-D2/A5".
func registerList(regs []insts.ExecutionResource) string {
	var parts []string
	for i := 0; i < len(regs); {
		j := i
		for j+1 < len(regs) &&
			regs[j+1].Kind() == regs[i].Kind() &&
			regs[j+1].Num() == regs[j].Num()+1 {
			j++
		}
		if j == i {
			parts = append(parts, regName(regs[i]))
		} else {
			parts = append(parts, regName(regs[i])+"-"+regName(regs[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, "/")
}

func mulDivLong(op *insts.Operation) string {
	src := operand(&op.Src, op.Size)
	lo := op.Dst.Register()

	pair := op.Wide
	if op.Op == insts.OpDIVU || op.Op == insts.OpDIVS {
		pair = pair || op.Reg2 != lo
	}
	if pair {
		return fmt.Sprintf("%s, %s:%s", src, regName(op.Reg2), regName(lo))
	}
	return src + ", " + regName(lo)
}

func bitField(op *insts.Operation) string {
	width := uint32(op.BFWidth)
	if width == 0 {
		width = 32
	}
	field := fmt.Sprintf("%s{%s:%s}",
		operand(&op.Dst, op.Size),
		fieldValue(op.BFOffsetReg, uint32(op.BFOffset)),
		fieldValue(op.BFWidthReg, width))

	switch op.Op {
	case insts.OpBFEXTU, insts.OpBFEXTS, insts.OpBFFFO:
		return field + ", " + regName(op.Reg2)
	case insts.OpBFINS:
		return regName(op.Reg2) + ", " + field
	}
	return field
}

func fieldValue(reg insts.ExecutionResource, v uint32) string {
	if reg.IsDataRegister() {
		return regName(reg)
	}
	return fmt.Sprintf("%d", v)
}
