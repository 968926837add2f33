package insts

// Operation is one instruction decoded from its words.
type Operation struct {
	Op   Op
	Size OperationSize
	Src  Operand
	Dst  Operand

	// Cond is the condition code of Bcc, DBcc, Scc, TRAPcc, FBcc and FScc.
	Cond uint8
	// Disp is the branch, LINK or RTD displacement.
	Disp int32
	// Data holds quick data, trap vectors and STOP/BKPT immediates.
	Data uint32
	// Mask is the MOVEM register mask as encoded.
	Mask uint16

	// Reg2 is the second data register of MULx.L/DIVx.L (Dh or Dr) and
	// the destination register of BFEXTU/BFEXTS/BFFFO/BFINS.
	Reg2 ExecutionResource
	// Signed and Wide qualify MULx.L and DIVx.L.
	Signed bool
	Wide   bool

	// Bit field offset and width; a register when the matching Reg field is set.
	BFOffset    uint8
	BFWidth     uint8
	BFOffsetReg ExecutionResource
	BFWidthReg  ExecutionResource

	// FPUCommand is the command word of an FPU general instruction.
	FPUCommand uint16

	// Words is the instruction length in words.
	Words int
}

// Registers returns the registers named by a MOVEM mask in D0..A7 order.
func (o *Operation) Registers() []ExecutionResource {
	mask := o.Mask
	if o.Dst.Mode == ModePreDec {
		mask = reverse16(mask)
	}
	var regs []ExecutionResource
	for i := uint8(0); i < 16; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		if i < 8 {
			regs = append(regs, D(i))
		} else {
			regs = append(regs, A(i-8))
		}
	}
	return regs
}

func reverse16(v uint16) uint16 {
	var r uint16
	for i := 0; i < 16; i++ {
		r = r<<1 | v&1
		v >>= 1
	}
	return r
}

func dataReg(n uint8) Operand {
	return Operand{Mode: ModeDataReg, Reg: n & 7}
}

func addrReg(n uint8) Operand {
	return Operand{Mode: ModeAddrReg, Reg: n & 7}
}

func quick(v uint32) Operand {
	return Operand{Mode: ModeImmediate, Immediate: v}
}

// sizeField decodes the common 2-bit size field (00 byte, 01 word, 10 long).
func sizeField(bits uint16) (OperationSize, bool) {
	switch bits & 3 {
	case 0:
		return Byte, true
	case 1:
		return Word, true
	case 2:
		return Long, true
	}
	return Unsized, false
}

// Decoder decodes MC68060 machine code into operations and UOps.
type Decoder struct{}

// NewDecoder creates a new MC68060 instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Parse decodes the instruction at the start of words. Extra trailing
// words are ignored; the returned Operation reports its own length.
func (d *Decoder) Parse(words []uint16) (*Operation, error) {
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	if len(words) > MaxWords {
		words = words[:MaxWords]
	}

	r := &wordReader{words: words, pos: 1}
	op := &Operation{}
	w := words[0]

	var err error
	switch w >> 12 {
	case 0x0:
		err = d.parseLine0(w, r, op)
	case 0x1, 0x2, 0x3:
		err = d.parseMove(w, r, op)
	case 0x4:
		err = d.parseLine4(w, r, op)
	case 0x5:
		err = d.parseLine5(w, r, op)
	case 0x6:
		err = d.parseBranch(w, r, op)
	case 0x7:
		err = d.parseMoveq(w, op)
	case 0x8:
		err = d.parseLine8(w, r, op)
	case 0x9, 0xD:
		err = d.parseAddSub(w, r, op)
	case 0xB:
		err = d.parseLineB(w, r, op)
	case 0xC:
		err = d.parseLineC(w, r, op)
	case 0xE:
		err = d.parseLineE(w, r, op)
	case 0xF:
		err = d.parseLineF(w, r, op)
	default:
		err = ErrUnknownOpcode
	}
	if err != nil {
		return nil, err
	}

	op.Words = r.pos
	return op, nil
}

// eaField reads the effective address in the low six bits of w.
func (r *wordReader) eaField(w uint16, imm int) (Operand, error) {
	return r.readEA(uint8(w>>3)&7, uint8(w)&7, imm)
}

func (d *Decoder) parseLine0(w uint16, r *wordReader, op *Operation) error {
	switch {
	case w == 0x003C || w == 0x023C || w == 0x0A3C || w == 0x007C || w == 0x027C || w == 0x0A7C:
		op.Op = [...]Op{OpORI, OpANDI, OpUnknown, OpUnknown, OpUnknown, OpEORI}[(w>>9)&7]
		imm, err := r.next()
		if err != nil {
			return err
		}
		op.Src = quick(uint32(imm))
		if w&0x40 != 0 {
			op.Size, op.Dst = Word, Operand{Mode: ModeSR}
		} else {
			op.Size, op.Dst = Byte, Operand{Mode: ModeCCR}
		}
		return nil

	case w == 0x0CFC || w == 0x0EFC:
		op.Op = OpCAS2
		return r.skip(2)

	case w&0xF138 == 0x0108:
		op.Op = OpMOVEP
		return r.skip(1)

	case w&0xF9C0 == 0x00C0:
		if (w>>9)&3 == 3 {
			return ErrUnknownOpcode
		}
		ext, err := r.next()
		if err != nil {
			return err
		}
		op.Op = OpCMP2
		if ext&0x0800 != 0 {
			op.Op = OpCHK2
		}
		op.Src, err = r.eaField(w, 0)
		if err != nil {
			return err
		}
		if !op.Src.isControl() {
			return ErrInvalidAddressingMode
		}
		return nil

	case w&0xFF00 == 0x0800:
		op.Op = [...]Op{OpBTST, OpBCHG, OpBCLR, OpBSET}[(w>>6)&3]
		bit, err := r.next()
		if err != nil {
			return err
		}
		op.Src = quick(uint32(bit & 0xFF))
		return d.bitDestination(w, r, op)

	case w&0xF9C0 == 0x08C0:
		op.Op = OpCAS
		if err := r.skip(1); err != nil {
			return err
		}
		var err error
		op.Dst, err = r.eaField(w, 0)
		if err != nil {
			return err
		}
		if !op.Dst.isMemoryAlterable() {
			return ErrInvalidAddressingMode
		}
		return nil

	case w&0xFF00 == 0x0E00:
		op.Op = OpMOVES
		if err := r.skip(1); err != nil {
			return err
		}
		var err error
		op.Dst, err = r.eaField(w, 0)
		if err != nil {
			return err
		}
		if !op.Dst.isMemoryAlterable() {
			return ErrInvalidAddressingMode
		}
		return nil

	case w&0x0100 != 0:
		op.Op = [...]Op{OpBTST, OpBCHG, OpBCLR, OpBSET}[(w>>6)&3]
		op.Src = dataReg(uint8(w >> 9))
		return d.bitDestination(w, r, op)
	}

	op.Op = [...]Op{OpORI, OpANDI, OpSUBI, OpADDI, OpUnknown, OpEORI, OpCMPI, OpUnknown}[(w>>9)&7]
	size, ok := sizeField(w >> 6)
	if op.Op == OpUnknown || !ok {
		return ErrUnknownOpcode
	}
	op.Size = size

	var err error
	op.Src, err = r.readEA(7, 4, immediateWords(size))
	if err != nil {
		return err
	}
	op.Dst, err = r.eaField(w, 0)
	if err != nil {
		return err
	}

	valid := op.Dst.isDataAlterable()
	if op.Op == OpCMPI {
		valid = op.Dst.isData() && op.Dst.Mode != ModeImmediate
	}
	if !valid {
		return ErrInvalidAddressingMode
	}
	return nil
}

// bitDestination reads the operand of BTST/BCHG/BCLR/BSET. Register
// operands are long, memory operands byte sized.
func (d *Decoder) bitDestination(w uint16, r *wordReader, op *Operation) error {
	var err error
	op.Dst, err = r.eaField(w, 1)
	if err != nil {
		return err
	}

	switch {
	case op.Dst.Mode == ModeDataReg:
		op.Size = Long
	case op.Op == OpBTST && op.Dst.isData():
		op.Size = Byte
	case op.Dst.isDataAlterable():
		op.Size = Byte
	default:
		return ErrInvalidAddressingMode
	}
	return nil
}

func (d *Decoder) parseMove(w uint16, r *wordReader, op *Operation) error {
	op.Size = [...]OperationSize{Unsized, Byte, Long, Word}[w>>12]

	var err error
	op.Src, err = r.eaField(w, immediateWords(op.Size))
	if err != nil {
		return err
	}
	if op.Src.Mode == ModeAddrReg && op.Size == Byte {
		return ErrInvalidAddressingMode
	}

	op.Dst, err = r.readEA(uint8(w>>6)&7, uint8(w>>9)&7, 0)
	if err != nil {
		return err
	}

	switch {
	case op.Dst.Mode == ModeAddrReg:
		if op.Size == Byte {
			return ErrInvalidAddressingMode
		}
		op.Op = OpMOVEA
	case op.Dst.isDataAlterable():
		op.Op = OpMOVE
	default:
		return ErrInvalidAddressingMode
	}
	return nil
}

func (d *Decoder) parseLine4(w uint16, r *wordReader, op *Operation) error {
	switch w {
	case 0x4AFC:
		op.Op = OpILLEGAL
		return nil
	case 0x4E70:
		op.Op = OpRESET
		return nil
	case 0x4E71:
		op.Op = OpNOP
		return nil
	case 0x4E72:
		op.Op = OpSTOP
		imm, err := r.next()
		op.Data = uint32(imm)
		return err
	case 0x4E73:
		op.Op = OpRTE
		return nil
	case 0x4E74:
		op.Op = OpRTD
		disp, err := r.next()
		op.Disp = int32(int16(disp))
		return err
	case 0x4E75:
		op.Op = OpRTS
		return nil
	case 0x4E76:
		op.Op = OpTRAPV
		return nil
	case 0x4E77:
		op.Op = OpRTR
		return nil
	case 0x4E7A, 0x4E7B:
		op.Op = OpMOVEC
		return r.skip(1)
	}

	reg := uint8(w) & 7

	switch {
	case w&0xFFF0 == 0x4E40:
		op.Op, op.Data = OpTRAP, uint32(w&0xF)
		return nil

	case w&0xFFF8 == 0x4E50:
		op.Op, op.Size, op.Src = OpLINK, Word, addrReg(reg)
		disp, err := r.next()
		op.Disp = int32(int16(disp))
		return err

	case w&0xFFF8 == 0x4808:
		op.Op, op.Size, op.Src = OpLINK, Long, addrReg(reg)
		disp, err := r.next32()
		op.Disp = int32(disp)
		return err

	case w&0xFFF8 == 0x4E58:
		op.Op, op.Src = OpUNLK, addrReg(reg)
		return nil

	case w&0xFFF0 == 0x4E60:
		op.Op, op.Size = OpMOVEUSP, Long
		if w&0x8 != 0 {
			op.Src, op.Dst = Operand{Mode: ModeUSP}, addrReg(reg)
		} else {
			op.Src, op.Dst = addrReg(reg), Operand{Mode: ModeUSP}
		}
		return nil

	case w&0xFFC0 == 0x4E80 || w&0xFFC0 == 0x4EC0:
		op.Op = OpJSR
		if w&0x40 != 0 {
			op.Op = OpJMP
		}
		return d.controlSource(w, r, op)

	case w&0xFFF8 == 0x4848:
		op.Op, op.Data = OpBKPT, uint32(reg)
		return nil

	case w&0xFFF8 == 0x4840:
		op.Op, op.Size, op.Dst = OpSWAP, Word, dataReg(reg)
		return nil

	case w&0xFFC0 == 0x4840:
		op.Op, op.Size = OpPEA, Long
		return d.controlSource(w, r, op)

	case w&0xFFF8 == 0x4880:
		op.Op, op.Size, op.Dst = OpEXT, Word, dataReg(reg)
		return nil

	case w&0xFFF8 == 0x48C0:
		op.Op, op.Size, op.Dst = OpEXT, Long, dataReg(reg)
		return nil

	case w&0xFFF8 == 0x49C0:
		op.Op, op.Size, op.Dst = OpEXTB, Long, dataReg(reg)
		return nil

	case w&0xFB80 == 0x4880:
		return d.parseMovem(w, r, op)

	case w&0xFFC0 == 0x4C00 || w&0xFFC0 == 0x4C40:
		return d.parseMulDivLong(w, r, op)

	case w&0xFFC0 == 0x4800 || w&0xFFC0 == 0x4AC0:
		op.Op, op.Size = OpNBCD, Byte
		if w&0x0200 != 0 {
			op.Op = OpTAS
		}
		return d.singleOperand(w, r, op, false)

	case w&0xFFC0 == 0x40C0 || w&0xFFC0 == 0x42C0:
		op.Op, op.Size = OpMOVEfromSR, Word
		op.Src = Operand{Mode: ModeSR}
		if w&0x0200 != 0 {
			op.Op, op.Src = OpMOVEfromCCR, Operand{Mode: ModeCCR}
		}
		var err error
		op.Dst, err = r.eaField(w, 0)
		if err != nil {
			return err
		}
		if !op.Dst.isDataAlterable() {
			return ErrInvalidAddressingMode
		}
		return nil

	case w&0xFFC0 == 0x44C0 || w&0xFFC0 == 0x46C0:
		op.Op, op.Size = OpMOVEtoCCR, Word
		op.Dst = Operand{Mode: ModeCCR}
		if w&0x0200 != 0 {
			op.Op, op.Dst = OpMOVEtoSR, Operand{Mode: ModeSR}
		}
		var err error
		op.Src, err = r.eaField(w, 1)
		if err != nil {
			return err
		}
		if !op.Src.isData() {
			return ErrInvalidAddressingMode
		}
		return nil

	case w&0xF900 == 0x4000 || w&0xFF00 == 0x4600 || w&0xFF00 == 0x4A00:
		size, ok := sizeField(w >> 6)
		if !ok {
			return ErrUnknownOpcode
		}
		op.Size = size
		op.Op = [...]Op{OpNEGX, OpCLR, OpNEG, OpNOT, OpUnknown, OpTST}[(w>>9)&7]
		return d.singleOperand(w, r, op, op.Op == OpTST)

	case w&0xF1C0 == 0x41C0:
		op.Op, op.Size = OpLEA, Long
		op.Dst = addrReg(uint8(w >> 9))
		return d.controlSource(w, r, op)

	case w&0xF140 == 0x4100:
		op.Op, op.Size = OpCHK, Long
		if w&0x80 != 0 {
			op.Size = Word
		}
		op.Dst = dataReg(uint8(w >> 9))
		var err error
		op.Src, err = r.eaField(w, immediateWords(op.Size))
		if err != nil {
			return err
		}
		if !op.Src.isData() {
			return ErrInvalidAddressingMode
		}
		return nil
	}

	return ErrUnknownOpcode
}

// singleOperand reads the destination of a one-operand instruction. TST
// also accepts address registers, PC-relative and immediate operands.
func (d *Decoder) singleOperand(w uint16, r *wordReader, op *Operation, readOnly bool) error {
	var err error
	op.Dst, err = r.eaField(w, immediateWords(op.Size))
	if err != nil {
		return err
	}

	if readOnly {
		if op.Dst.Mode == ModeAddrReg && op.Size == Byte {
			return ErrInvalidAddressingMode
		}
		return nil
	}
	if !op.Dst.isDataAlterable() {
		return ErrInvalidAddressingMode
	}
	return nil
}

func (d *Decoder) controlSource(w uint16, r *wordReader, op *Operation) error {
	var err error
	op.Src, err = r.eaField(w, 0)
	if err != nil {
		return err
	}
	if !op.Src.isControl() {
		return ErrInvalidAddressingMode
	}
	return nil
}

func (d *Decoder) parseMovem(w uint16, r *wordReader, op *Operation) error {
	op.Op, op.Size = OpMOVEM, Word
	if w&0x40 != 0 {
		op.Size = Long
	}

	mask, err := r.next()
	if err != nil {
		return err
	}
	op.Mask = mask

	ea, err := r.eaField(w, 0)
	if err != nil {
		return err
	}

	list := Operand{Mode: ModeRegList}
	if w&0x0400 != 0 {
		if !ea.isControl() && ea.Mode != ModePostInc {
			return ErrInvalidAddressingMode
		}
		op.Src, op.Dst = ea, list
	} else {
		if !(ea.isControl() && ea.isAlterable()) && ea.Mode != ModePreDec {
			return ErrInvalidAddressingMode
		}
		op.Src, op.Dst = list, ea
	}
	return nil
}

func (d *Decoder) parseMulDivLong(w uint16, r *wordReader, op *Operation) error {
	ext, err := r.next()
	if err != nil {
		return err
	}
	if ext&0x83F8 != 0 {
		return ErrUnknownOpcode
	}

	op.Size = Long
	op.Signed = ext&0x0800 != 0
	op.Wide = ext&0x0400 != 0
	op.Dst = dataReg(uint8(ext >> 12))
	op.Reg2 = D(uint8(ext))

	switch {
	case w&0x40 == 0 && op.Signed:
		op.Op = OpMULS
	case w&0x40 == 0:
		op.Op = OpMULU
	case op.Signed:
		op.Op = OpDIVS
	default:
		op.Op = OpDIVU
	}

	op.Src, err = r.eaField(w, 2)
	if err != nil {
		return err
	}
	if !op.Src.isData() {
		return ErrInvalidAddressingMode
	}
	return nil
}

func (d *Decoder) parseLine5(w uint16, r *wordReader, op *Operation) error {
	op.Cond = uint8(w>>8) & 0xF

	if w&0xC0 == 0xC0 {
		switch {
		case w&0x38 == 0x08:
			op.Op, op.Size, op.Dst = OpDBcc, Word, dataReg(uint8(w))
			disp, err := r.next()
			op.Disp = int32(int16(disp))
			return err

		case w&0x3F >= 0x3A:
			op.Op = OpTRAPcc
			switch w & 7 {
			case 2:
				op.Size = Word
				return r.skip(1)
			case 3:
				op.Size = Long
				return r.skip(2)
			case 4:
				return nil
			}
			return ErrUnknownOpcode
		}

		op.Op, op.Size = OpScc, Byte
		var err error
		op.Dst, err = r.eaField(w, 0)
		if err != nil {
			return err
		}
		if !op.Dst.isDataAlterable() {
			return ErrInvalidAddressingMode
		}
		return nil
	}

	op.Op = OpADDQ
	if w&0x0100 != 0 {
		op.Op = OpSUBQ
	}
	op.Size, _ = sizeField(w >> 6)

	data := uint32(w>>9) & 7
	if data == 0 {
		data = 8
	}
	op.Src = quick(data)

	var err error
	op.Dst, err = r.eaField(w, 0)
	if err != nil {
		return err
	}
	if !op.Dst.isAlterable() || (op.Dst.Mode == ModeAddrReg && op.Size == Byte) {
		return ErrInvalidAddressingMode
	}
	return nil
}

func (d *Decoder) parseBranch(w uint16, r *wordReader, op *Operation) error {
	op.Cond = uint8(w>>8) & 0xF
	switch op.Cond {
	case 0:
		op.Op = OpBRA
	case 1:
		op.Op = OpBSR
	default:
		op.Op = OpBcc
	}

	switch d8 := int8(w); d8 {
	case 0:
		op.Size = Word
		disp, err := r.next()
		op.Disp = int32(int16(disp))
		return err
	case -1:
		op.Size = Long
		disp, err := r.next32()
		op.Disp = int32(disp)
		return err
	default:
		op.Size = Byte
		op.Disp = int32(d8)
	}
	return nil
}

func (d *Decoder) parseMoveq(w uint16, op *Operation) error {
	if w&0x0100 != 0 {
		return ErrUnknownOpcode
	}
	op.Op, op.Size = OpMOVEQ, Long
	op.Src = quick(uint32(int32(int8(w))))
	op.Dst = dataReg(uint8(w >> 9))
	return nil
}

func (d *Decoder) parseLine8(w uint16, r *wordReader, op *Operation) error {
	reg := uint8(w>>9) & 7

	switch {
	case w&0x1C0 == 0x0C0 || w&0x1C0 == 0x1C0:
		op.Op, op.Size = OpDIVU, Word
		if w&0x100 != 0 {
			op.Op = OpDIVS
		}
		return d.dataSourceToRegister(w, r, op, reg)

	case w&0x1F0 == 0x100:
		op.Op, op.Size = OpSBCD, Byte
		d.extendedOperands(w, op)
		return nil

	case w&0x1F0 == 0x140 || w&0x1F0 == 0x180:
		op.Op = OpPACK
		if w&0x1F0 == 0x180 {
			op.Op = OpUNPK
		}
		return r.skip(1)
	}

	op.Op = OpOR
	return d.logical(w, r, op, reg)
}

// dataSourceToRegister decodes <ea>,Dn forms such as MULU.W and DIVS.W.
func (d *Decoder) dataSourceToRegister(w uint16, r *wordReader, op *Operation, reg uint8) error {
	var err error
	op.Src, err = r.eaField(w, immediateWords(op.Size))
	if err != nil {
		return err
	}
	if !op.Src.isData() {
		return ErrInvalidAddressingMode
	}
	op.Dst = dataReg(reg)
	return nil
}

// extendedOperands decodes the Dy,Dx and -(Ay),-(Ax) forms of
// ABCD, SBCD, ADDX and SUBX.
func (d *Decoder) extendedOperands(w uint16, op *Operation) {
	rx, ry := uint8(w>>9)&7, uint8(w)&7
	if w&0x8 != 0 {
		op.Src = Operand{Mode: ModePreDec, Reg: ry, Base: A(ry)}
		op.Dst = Operand{Mode: ModePreDec, Reg: rx, Base: A(rx)}
		return
	}
	op.Src, op.Dst = dataReg(ry), dataReg(rx)
}

// logical decodes the AND, OR and EOR register/memory forms.
func (d *Decoder) logical(w uint16, r *wordReader, op *Operation, reg uint8) error {
	size, ok := sizeField(w >> 6)
	if !ok {
		return ErrUnknownOpcode
	}
	op.Size = size

	ea, err := r.eaField(w, immediateWords(size))
	if err != nil {
		return err
	}

	if w&0x100 == 0 {
		if !ea.isData() {
			return ErrInvalidAddressingMode
		}
		op.Src, op.Dst = ea, dataReg(reg)
		return nil
	}

	valid := ea.isMemoryAlterable()
	if op.Op == OpEOR {
		valid = ea.isDataAlterable()
	}
	if !valid {
		return ErrInvalidAddressingMode
	}
	op.Src, op.Dst = dataReg(reg), ea
	return nil
}

func (d *Decoder) parseAddSub(w uint16, r *wordReader, op *Operation) error {
	add := w>>12 == 0xD
	reg := uint8(w>>9) & 7
	opmode := (w >> 6) & 7

	switch {
	case opmode == 3 || opmode == 7:
		op.Op = pick(add, OpADDA, OpSUBA)
		op.Size = Word
		if opmode == 7 {
			op.Size = Long
		}
		var err error
		op.Src, err = r.eaField(w, immediateWords(op.Size))
		op.Dst = addrReg(reg)
		return err

	case opmode >= 4 && w&0x30 == 0:
		op.Op = pick(add, OpADDX, OpSUBX)
		op.Size, _ = sizeField(opmode)
		d.extendedOperands(w, op)
		return nil
	}

	op.Op = pick(add, OpADD, OpSUB)
	op.Size, _ = sizeField(opmode)

	ea, err := r.eaField(w, immediateWords(op.Size))
	if err != nil {
		return err
	}

	if opmode < 4 {
		if ea.Mode == ModeAddrReg && op.Size == Byte {
			return ErrInvalidAddressingMode
		}
		op.Src, op.Dst = ea, dataReg(reg)
		return nil
	}
	if !ea.isMemoryAlterable() {
		return ErrInvalidAddressingMode
	}
	op.Src, op.Dst = dataReg(reg), ea
	return nil
}

func pick(cond bool, a, b Op) Op {
	if cond {
		return a
	}
	return b
}

func (d *Decoder) parseLineB(w uint16, r *wordReader, op *Operation) error {
	reg := uint8(w>>9) & 7
	opmode := (w >> 6) & 7

	switch {
	case opmode == 3 || opmode == 7:
		op.Op, op.Size = OpCMPA, Word
		if opmode == 7 {
			op.Size = Long
		}
		var err error
		op.Src, err = r.eaField(w, immediateWords(op.Size))
		op.Dst = addrReg(reg)
		return err

	case opmode >= 4 && w&0x38 == 0x08:
		op.Op = OpCMPM
		op.Size, _ = sizeField(opmode)
		ry := uint8(w) & 7
		op.Src = Operand{Mode: ModePostInc, Reg: ry, Base: A(ry)}
		op.Dst = Operand{Mode: ModePostInc, Reg: reg, Base: A(reg)}
		return nil

	case opmode >= 4:
		op.Op = OpEOR
		return d.logical(w, r, op, reg)
	}

	op.Op = OpCMP
	op.Size, _ = sizeField(opmode)
	var err error
	op.Src, err = r.eaField(w, immediateWords(op.Size))
	if err != nil {
		return err
	}
	if op.Src.Mode == ModeAddrReg && op.Size == Byte {
		return ErrInvalidAddressingMode
	}
	op.Dst = dataReg(reg)
	return nil
}

func (d *Decoder) parseLineC(w uint16, r *wordReader, op *Operation) error {
	rx, ry := uint8(w>>9)&7, uint8(w)&7

	switch {
	case w&0x1C0 == 0x0C0 || w&0x1C0 == 0x1C0:
		op.Op, op.Size = OpMULU, Word
		if w&0x100 != 0 {
			op.Op = OpMULS
		}
		return d.dataSourceToRegister(w, r, op, rx)

	case w&0x1F0 == 0x100:
		op.Op, op.Size = OpABCD, Byte
		d.extendedOperands(w, op)
		return nil

	case w&0x1F8 == 0x140:
		op.Op, op.Size, op.Src, op.Dst = OpEXG, Long, dataReg(rx), dataReg(ry)
		return nil
	case w&0x1F8 == 0x148:
		op.Op, op.Size, op.Src, op.Dst = OpEXG, Long, addrReg(rx), addrReg(ry)
		return nil
	case w&0x1F8 == 0x188:
		op.Op, op.Size, op.Src, op.Dst = OpEXG, Long, dataReg(rx), addrReg(ry)
		return nil
	}

	op.Op = OpAND
	return d.logical(w, r, op, rx)
}

var shiftOps = [4][2]Op{
	{OpASR, OpASL},
	{OpLSR, OpLSL},
	{OpROXR, OpROXL},
	{OpROR, OpROL},
}

var bitFieldOps = [8]Op{
	OpBFTST, OpBFEXTU, OpBFCHG, OpBFEXTS, OpBFCLR, OpBFFFO, OpBFSET, OpBFINS,
}

func (d *Decoder) parseLineE(w uint16, r *wordReader, op *Operation) error {
	left := (w >> 8) & 1

	if w&0xC0 == 0xC0 {
		if w&0x0800 != 0 {
			return d.parseBitField(w, r, op)
		}
		op.Op = shiftOps[(w>>9)&3][left]
		op.Size = Word
		var err error
		op.Dst, err = r.eaField(w, 0)
		if err != nil {
			return err
		}
		if !op.Dst.isMemoryAlterable() {
			return ErrInvalidAddressingMode
		}
		return nil
	}

	op.Op = shiftOps[(w>>3)&3][left]
	op.Size, _ = sizeField(w >> 6)
	op.Dst = dataReg(uint8(w))

	count := uint8(w>>9) & 7
	if w&0x20 != 0 {
		op.Src = dataReg(count)
		return nil
	}
	if count == 0 {
		count = 8
	}
	op.Src = quick(uint32(count))
	return nil
}

func (d *Decoder) parseBitField(w uint16, r *wordReader, op *Operation) error {
	op.Op = bitFieldOps[(w>>8)&7]
	op.Size = Long

	ext, err := r.next()
	if err != nil {
		return err
	}

	if ext&0x0800 != 0 {
		op.BFOffsetReg = D(uint8(ext >> 6))
	} else {
		op.BFOffset = uint8(ext>>6) & 31
	}
	if ext&0x0020 != 0 {
		op.BFWidthReg = D(uint8(ext))
	} else {
		op.BFWidth = uint8(ext) & 31
	}

	switch op.Op {
	case OpBFEXTU, OpBFEXTS, OpBFFFO, OpBFINS:
		op.Reg2 = D(uint8(ext >> 12))
	}

	op.Dst, err = r.eaField(w, 0)
	if err != nil {
		return err
	}

	valid := op.Dst.Mode == ModeDataReg || op.Dst.isControl()
	switch op.Op {
	case OpBFCHG, OpBFCLR, OpBFSET, OpBFINS:
		valid = op.Dst.Mode == ModeDataReg || (op.Dst.isControl() && op.Dst.isAlterable())
	}
	if !valid {
		return ErrInvalidAddressingMode
	}
	return nil
}

// fpuImmediateWords maps an FPU source format to its immediate length.
var fpuImmediateWords = [8]int{2, 2, 6, 6, 1, 4, 1, 0}

func (d *Decoder) parseLineF(w uint16, r *wordReader, op *Operation) error {
	switch {
	case w&0xFFC0 == 0xF200:
		return d.parseFPUGeneral(w, r, op)

	case w&0xFF80 == 0xF280:
		op.Op, op.Cond = OpFBcc, uint8(w)&0x3F
		if w&0x40 != 0 {
			op.Size = Long
			disp, err := r.next32()
			op.Disp = int32(disp)
			return err
		}
		op.Size = Word
		disp, err := r.next()
		op.Disp = int32(int16(disp))
		return err

	case w&0xFFC0 == 0xF240:
		op.Op = OpFScc
		if err := r.skip(1); err != nil {
			return err
		}
		switch {
		case w&0x38 == 0x08:
			return r.skip(1)
		case w&0x3F == 0x3A:
			return r.skip(1)
		case w&0x3F == 0x3B:
			return r.skip(2)
		case w&0x3F == 0x3C:
			return nil
		}
		_, err := r.eaField(w, 1)
		return err

	case w&0xFF80 == 0xF300:
		op.Op = OpFSAVE
		if w&0x40 != 0 {
			op.Op = OpFRESTORE
		}
		_, err := r.eaField(w, 0)
		return err

	case w&0xFF00 == 0xF400:
		op.Op = OpCINV
		if w&0x20 != 0 {
			op.Op = OpCPUSH
		}
		return nil

	case w&0xFF00 == 0xF500:
		op.Op = OpPFLUSH
		return nil

	case w&0xFFE0 == 0xF600:
		op.Op = OpMOVE16
		return r.skip(2)

	case w&0xFFF8 == 0xF620:
		op.Op = OpMOVE16
		return r.skip(1)
	}

	return ErrUnknownOpcode
}

func (d *Decoder) parseFPUGeneral(w uint16, r *wordReader, op *Operation) error {
	cmd, err := r.next()
	if err != nil {
		return err
	}
	op.Op, op.FPUCommand = OpFGEN, cmd

	format := (cmd >> 10) & 7
	switch cmd >> 13 {
	case 0:
		return nil
	case 2:
		if cmd&0xFC00 == 0x5C00 {
			// FMOVECR
			return nil
		}
		op.Src, err = r.eaField(w, fpuImmediateWords[format])
		return err
	case 3:
		op.Dst, err = r.eaField(w, 0)
		if err != nil {
			return err
		}
		if !op.Dst.isDataAlterable() {
			return ErrInvalidAddressingMode
		}
		return nil
	case 4:
		regs := 0
		for b := cmd >> 10 & 7; b != 0; b >>= 1 {
			regs += int(b & 1)
		}
		op.Src, err = r.eaField(w, 2*regs)
		return err
	case 5:
		op.Dst, err = r.eaField(w, 0)
		return err
	case 6:
		op.Src, err = r.eaField(w, 0)
		return err
	case 7:
		op.Dst, err = r.eaField(w, 0)
		return err
	}
	return ErrUnknownOpcode
}
