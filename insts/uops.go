package insts

// DecodeLength returns the number of words of the instruction at the start
// of words. It reports false when the leading word is unrecognised, an
// addressing mode is invalid, or the instruction runs past the supplied
// words or MaxWords.
func DecodeLength(words []uint16) (int, bool) {
	op, err := (&Decoder{}).Parse(words)
	if err != nil {
		return 0, false
	}
	return op.Words, true
}

// Decompose parses exactly one instruction and expands it into UOps. No
// UOps are returned on failure.
func (d *Decoder) Decompose(words []uint16) ([]UOp, error) {
	op, err := d.Parse(words)
	if err != nil {
		return nil, &DecodeError{Words: words, Err: err}
	}
	if op.Words != len(words) {
		return nil, &DecodeError{Words: words, Err: ErrLengthMismatch}
	}
	if !op.Op.Modeled() {
		return nil, &DecodeError{Words: words, Err: ErrUnmodeled}
	}

	e := &expansion{}
	d.expand(e, op)
	if len(e.uops) > MaxUOps {
		return nil, &DecodeError{Words: words, Err: ErrTooManyUOps}
	}

	e.stamp(Classify(words[0]).Pairability)
	return e.uops, nil
}

// Decode builds the Instruction at offset from its words. The instruction
// is always returned; it is marked invalid when decomposition fails.
func (d *Decoder) Decode(offset uint32, words []uint16) (*Instruction, error) {
	inst := &Instruction{
		Offset: offset,
		Words:  append([]uint16(nil), words...),
	}

	uops, err := d.Decompose(inst.Words)
	if err != nil {
		return inst, err
	}

	inst.UOps = uops
	inst.Valid = true
	return inst, nil
}

// expansion collects the UOps of one instruction. support marks the UOps
// that fetch a memory-indirect pointer.
type expansion struct {
	uops    []UOp
	support []bool
}

func (e *expansion) add(u UOp) {
	e.uops = append(e.uops, u)
	e.support = append(e.support, false)
}

// addAt appends u with its AGU fields taken from the memory operand o. A
// memory-indirect operand first gets a support UOp that reads the
// intermediate pointer.
func (e *expansion) addAt(u UOp, o *Operand) {
	if o == nil || !o.IsMemory() {
		e.add(u)
		return
	}

	if !o.MemoryIndirect {
		u.AguBase, u.AguIndex = o.Base, o.Index
		if r := o.AguUpdate(); r != None {
			u.AguResult = r
		}
		e.add(u)
		return
	}

	ptr := UOp{
		AguBase:          o.Base,
		IeeOperationSize: Long,
		MemoryRead:       true,
	}
	if !o.PostIndexed {
		ptr.AguIndex = o.Index
	}
	e.uops = append(e.uops, ptr)
	e.support = append(e.support, true)

	if o.PostIndexed {
		u.AguIndex = o.Index
	}
	e.add(u)
}

// stamp assigns the classifier's pairability. Only the last UOp of a
// pOEP-until-last instruction keeps that class; pointer fetches always
// issue alone.
func (e *expansion) stamp(p Pairability) {
	last := len(e.uops) - 1
	for i := range e.uops {
		switch {
		case e.support[i]:
			e.uops[i].Pairability = POEPOnly
		case p == POEPUntilLast && i < last:
			e.uops[i].Pairability = POEPOnly
		default:
			e.uops[i].Pairability = p
		}
	}
}

// memoryOperand returns the operand that addresses memory, if any.
func memoryOperand(ops ...*Operand) *Operand {
	for _, o := range ops {
		if o.IsMemory() {
			return o
		}
	}
	return nil
}

var aluOperations = map[Op]IeeOperation{
	OpADD: IeeAdd, OpADDA: IeeAdd, OpADDI: IeeAdd, OpADDQ: IeeAdd,
	OpSUB: IeeSub, OpSUBA: IeeSub, OpSUBI: IeeSub, OpSUBQ: IeeSub,
	OpAND: IeeAnd, OpANDI: IeeAnd,
	OpOR: IeeOr, OpORI: IeeOr,
	OpEOR: IeeEor, OpEORI: IeeEor,
	OpCMP: IeeCmp, OpCMPA: IeeCmp, OpCMPI: IeeCmp, OpCHK: IeeCmp,
	OpBTST: IeeBit, OpBCHG: IeeBit, OpBCLR: IeeBit, OpBSET: IeeBit,
	OpMOVEfromSR: IeeOther, OpMOVEtoSR: IeeOther,
	OpMOVEfromCCR: IeeOther, OpMOVEtoCCR: IeeOther, OpMOVEUSP: IeeOther,
}

var unaryOperations = map[Op]IeeOperation{
	OpNEG: IeeNeg, OpNEGX: IeeNeg, OpNOT: IeeNot, OpNBCD: IeeSub, OpTAS: IeeOther,
	OpEXT: IeeExt, OpEXTB: IeeExt, OpSWAP: IeeSwap,
}

var shiftOperations = map[Op]bool{
	OpASL: true, OpASR: true, OpLSL: true, OpLSR: true,
	OpROL: true, OpROR: true, OpROXL: true, OpROXR: true,
}

// push returns a UOp storing value through -(A7).
func push(value ExecutionResource) UOp {
	return UOp{
		IeeOperation:     IeeMove,
		IeeOperationSize: Long,
		IeeA:             value,
		IeeResult:        MemoryOperand,
		AguBase:          SP,
		AguResult:        SP,
		MemoryWrite:      true,
	}
}

// pop returns a UOp loading through (A7)+ into dst.
func pop(op IeeOperation, dst ExecutionResource) UOp {
	return UOp{
		IeeOperation:     op,
		IeeOperationSize: Long,
		IeeA:             MemoryOperand,
		IeeResult:        dst,
		AguBase:          SP,
		AguResult:        SP,
		MemoryRead:       true,
	}
}

func (d *Decoder) expand(e *expansion, op *Operation) {
	if iop, ok := aluOperations[op.Op]; ok {
		d.expandALU(e, op, iop)
		return
	}
	if iop, ok := unaryOperations[op.Op]; ok {
		d.expandUnary(e, op, iop)
		return
	}
	if shiftOperations[op.Op] {
		d.expandShift(e, op)
		return
	}

	switch op.Op {
	case OpMOVE, OpMOVEA:
		d.expandMove(e, op)

	case OpMOVEQ:
		e.add(UOp{IeeOperation: IeeMove, IeeOperationSize: Long, IeeResult: op.Dst.Register()})

	case OpCLR:
		e.addAt(UOp{
			IeeOperation:     IeeClr,
			IeeOperationSize: op.Size,
			IeeResult:        op.Dst.IeeSource(),
			MemoryWrite:      op.Dst.IsMemory(),
		}, &op.Dst)

	case OpTST:
		e.addAt(UOp{
			IeeOperation:     IeeTst,
			IeeOperationSize: op.Size,
			IeeA:             op.Dst.IeeSource(),
			MemoryRead:       op.Dst.IsMemory(),
		}, &op.Dst)

	case OpLEA:
		e.addAt(UOp{IeeOperation: IeeLea, IeeOperationSize: Long}, &op.Src)
		e.uops[len(e.uops)-1].AguResult = op.Dst.Register()

	case OpPEA:
		e.addAt(UOp{IeeOperation: IeeLea, IeeOperationSize: Long}, &op.Src)
		e.add(push(None))

	case OpEXG:
		x, y := op.Src.Register(), op.Dst.Register()
		e.add(UOp{IeeOperation: IeeMove, IeeOperationSize: Long, IeeA: x, IeeResult: y})
		e.add(UOp{IeeOperation: IeeMove, IeeOperationSize: Long, IeeA: y, IeeResult: x})

	case OpMULU, OpMULS, OpDIVU, OpDIVS:
		d.expandMulDiv(e, op)

	case OpBFTST, OpBFEXTU, OpBFCHG, OpBFEXTS, OpBFCLR, OpBFFFO, OpBFSET, OpBFINS:
		d.expandBitField(e, op)

	case OpABCD, OpSBCD, OpADDX, OpSUBX:
		d.expandExtended(e, op)

	case OpCMPM:
		e.addAt(UOp{
			IeeOperation:     IeeMove,
			IeeOperationSize: op.Size,
			IeeA:             MemoryOperand,
			MemoryRead:       true,
		}, &op.Src)
		e.addAt(UOp{
			IeeOperation:     IeeCmp,
			IeeOperationSize: op.Size,
			IeeB:             MemoryOperand,
			MemoryRead:       true,
		}, &op.Dst)

	case OpScc:
		e.addAt(UOp{
			IeeOperation:     IeeOther,
			IeeOperationSize: Byte,
			IeeResult:        op.Dst.IeeSource(),
			MemoryWrite:      op.Dst.IsMemory(),
		}, &op.Dst)

	case OpDBcc:
		dn := op.Dst.Register()
		e.add(UOp{IeeOperation: IeeBranch, IeeOperationSize: Word, IeeB: dn, IeeResult: dn})

	case OpBcc, OpBRA, OpFBcc:
		e.add(UOp{IeeOperation: IeeBranch, IeeOperationSize: op.Size})

	case OpBSR:
		u := push(None)
		u.IeeOperation = IeeBranch
		e.add(u)

	case OpJMP:
		e.addAt(UOp{IeeOperation: IeeBranch}, &op.Src)

	case OpJSR:
		e.addAt(UOp{IeeOperation: IeeBranch}, &op.Src)
		e.add(push(None))

	case OpRTS:
		e.add(pop(IeeBranch, None))

	case OpRTD:
		e.add(pop(IeeBranch, None))
		e.add(UOp{IeeOperation: IeeAdd, IeeOperationSize: Long, IeeB: SP, IeeResult: SP})

	case OpRTE, OpRTR:
		e.add(pop(IeeOther, None))

	case OpLINK:
		an := op.Src.Register()
		e.add(push(an))
		e.add(UOp{IeeOperation: IeeMove, IeeOperationSize: Long, IeeA: SP, IeeResult: an})
		e.add(UOp{IeeOperation: IeeAdd, IeeOperationSize: Long, IeeB: SP, IeeResult: SP})

	case OpUNLK:
		an := op.Src.Register()
		e.add(UOp{IeeOperation: IeeMove, IeeOperationSize: Long, IeeA: an, IeeResult: SP})
		e.add(pop(IeeMove, an))

	case OpMOVEM:
		d.expandMovem(e, op)

	case OpNOP:
		e.add(UOp{})

	case OpFGEN:
		e.addAt(UOp{
			IeeOperation: IeeOther,
			IeeA:         op.Src.IeeSource(),
			IeeResult:    op.Dst.IeeSource(),
			MemoryRead:   op.Src.IsMemory(),
			MemoryWrite:  op.Dst.IsMemory(),
		}, memoryOperand(&op.Src, &op.Dst))

	default:
		// TRAP, TRAPV, TRAPcc, ILLEGAL, BKPT, STOP and RESET
		e.add(UOp{IeeOperation: IeeOther})
	}
}

// expandALU handles the two-operand forms. ieeA is the source, ieeB the
// destination read as input, and the result the destination.
func (d *Decoder) expandALU(e *expansion, op *Operation, iop IeeOperation) {
	u := UOp{
		IeeOperation:     iop,
		IeeOperationSize: op.Size,
		IeeA:             op.Src.IeeSource(),
		IeeB:             op.Dst.IeeSource(),
		MemoryRead:       op.Src.IsMemory() || op.Dst.IsMemory(),
	}

	writes := true
	switch op.Op {
	case OpCMP, OpCMPA, OpCMPI, OpCHK, OpBTST:
		writes = false
	case OpMOVEfromSR, OpMOVEfromCCR, OpMOVEtoSR, OpMOVEtoCCR, OpMOVEUSP:
		u.IeeB = None
		u.MemoryRead = op.Src.IsMemory()
	}
	if writes {
		u.IeeResult = op.Dst.IeeSource()
		u.MemoryWrite = op.Dst.IsMemory()
	}

	e.addAt(u, memoryOperand(&op.Src, &op.Dst))
}

func (d *Decoder) expandUnary(e *expansion, op *Operation, iop IeeOperation) {
	e.addAt(UOp{
		IeeOperation:     iop,
		IeeOperationSize: op.Size,
		IeeB:             op.Dst.IeeSource(),
		IeeResult:        op.Dst.IeeSource(),
		MemoryRead:       op.Dst.IsMemory(),
		MemoryWrite:      op.Dst.IsMemory(),
	}, &op.Dst)
}

func (d *Decoder) expandMove(e *expansion, op *Operation) {
	if op.Src.IsMemory() && op.Dst.IsMemory() {
		e.addAt(UOp{
			IeeOperation:     IeeMove,
			IeeOperationSize: op.Size,
			IeeA:             MemoryOperand,
			MemoryRead:       true,
		}, &op.Src)
		e.addAt(UOp{
			IeeOperation:     IeeMove,
			IeeOperationSize: op.Size,
			IeeResult:        MemoryOperand,
			MemoryWrite:      true,
		}, &op.Dst)
		return
	}

	e.addAt(UOp{
		IeeOperation:     IeeMove,
		IeeOperationSize: op.Size,
		IeeA:             op.Src.IeeSource(),
		IeeResult:        op.Dst.IeeSource(),
		MemoryRead:       op.Src.IsMemory(),
		MemoryWrite:      op.Dst.IsMemory(),
	}, memoryOperand(&op.Src, &op.Dst))
}

func (d *Decoder) expandShift(e *expansion, op *Operation) {
	if op.Dst.IsMemory() {
		e.addAt(UOp{
			IeeOperation:     IeeShift,
			IeeOperationSize: Word,
			IeeB:             MemoryOperand,
			IeeResult:        MemoryOperand,
			MemoryRead:       true,
			MemoryWrite:      true,
		}, &op.Dst)
		return
	}

	dy := op.Dst.Register()
	e.add(UOp{
		IeeOperation:     IeeShift,
		IeeOperationSize: op.Size,
		IeeA:             op.Src.Register(),
		IeeB:             dy,
		IeeResult:        dy,
	})
}

// expandMulDiv handles the word forms and MULx.L/DIVx.L. A 64-bit product
// or a remainder register distinct from the quotient adds a second UOp.
func (d *Decoder) expandMulDiv(e *expansion, op *Operation) {
	iop := IeeMul
	if op.Op == OpDIVU || op.Op == OpDIVS {
		iop = IeeDiv
	}

	dn := op.Dst.Register()
	e.addAt(UOp{
		IeeOperation:     iop,
		IeeOperationSize: Long,
		IeeA:             op.Src.IeeSource(),
		IeeB:             dn,
		IeeResult:        dn,
		MemoryRead:       op.Src.IsMemory(),
	}, &op.Src)

	if op.Reg2 == None || op.Reg2 == dn {
		return
	}
	if iop == IeeDiv || op.Wide {
		e.add(UOp{IeeOperation: iop, IeeOperationSize: Long, IeeResult: op.Reg2})
	}
}

func (d *Decoder) expandBitField(e *expansion, op *Operation) {
	u := UOp{
		IeeOperation:     IeeBitField,
		IeeOperationSize: Long,
		IeeA:             op.BFOffsetReg,
		IeeB:             op.Dst.IeeSource(),
		MemoryRead:       op.Dst.IsMemory(),
	}

	switch op.Op {
	case OpBFEXTU, OpBFEXTS, OpBFFFO:
		u.IeeResult = op.Reg2
	case OpBFINS:
		u.IeeA = op.Reg2
		fallthrough
	case OpBFCHG, OpBFCLR, OpBFSET:
		u.IeeResult = op.Dst.IeeSource()
		u.MemoryWrite = op.Dst.IsMemory()
	}

	e.addAt(u, &op.Dst)
}

// expandExtended handles ABCD, SBCD, ADDX and SUBX. The -(Ay),-(Ax) form
// loads the source before the read-modify-write of the destination.
func (d *Decoder) expandExtended(e *expansion, op *Operation) {
	iop := IeeAdd
	if op.Op == OpSBCD || op.Op == OpSUBX {
		iop = IeeSub
	}

	if !op.Dst.IsMemory() {
		dx := op.Dst.Register()
		e.add(UOp{
			IeeOperation:     iop,
			IeeOperationSize: op.Size,
			IeeA:             op.Src.Register(),
			IeeB:             dx,
			IeeResult:        dx,
		})
		return
	}

	e.addAt(UOp{
		IeeOperation:     IeeMove,
		IeeOperationSize: op.Size,
		IeeA:             MemoryOperand,
		MemoryRead:       true,
	}, &op.Src)
	e.addAt(UOp{
		IeeOperation:     iop,
		IeeOperationSize: op.Size,
		IeeB:             MemoryOperand,
		IeeResult:        MemoryOperand,
		MemoryRead:       true,
		MemoryWrite:      true,
	}, &op.Dst)
}

// expandMovem emits one transfer per listed register. The effective
// address is computed once; an empty list still costs one AGU UOp.
func (d *Decoder) expandMovem(e *expansion, op *Operation) {
	toMemory := op.Dst.Mode != ModeRegList
	ea := &op.Src
	if toMemory {
		ea = &op.Dst
	}

	regs := op.Registers()
	if len(regs) == 0 {
		e.addAt(UOp{IeeOperation: IeeMove, IeeOperationSize: op.Size}, ea)
		return
	}

	var first UOp
	for i, r := range regs {
		u := UOp{IeeOperation: IeeMove, IeeOperationSize: op.Size}
		if toMemory {
			u.IeeA, u.IeeResult, u.MemoryWrite = r, MemoryOperand, true
		} else {
			u.IeeA, u.IeeResult, u.MemoryRead = MemoryOperand, r, true
		}

		if i == 0 {
			e.addAt(u, ea)
			first = e.uops[len(e.uops)-1]
			continue
		}
		u.AguBase, u.AguIndex, u.AguResult = first.AguBase, first.AguIndex, first.AguResult
		e.add(u)
	}
}
