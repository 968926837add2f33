package insts

// AddressingMode is a decoded effective address mode.
type AddressingMode uint8

// Addressing modes. The first twelve are the encodable effective addresses;
// the rest name implicit operands used by some instructions.
const (
	ModeNone      AddressingMode = iota
	ModeDataReg                  // Dn
	ModeAddrReg                  // An
	ModeIndirect                 // (An)
	ModePostInc                  // (An)+
	ModePreDec                   // -(An)
	ModeDisp                     // (d16,An)
	ModeIndex                    // (d8,An,Xn) and full format
	ModeAbsShort                 // (xxx).W
	ModeAbsLong                  // (xxx).L
	ModePCDisp                   // (d16,PC)
	ModePCIndex                  // (d8,PC,Xn) and full format
	ModeImmediate                // #<data>
	ModeCCR                      // condition code register
	ModeSR                       // status register
	ModeUSP                      // user stack pointer
	ModeRegList                  // MOVEM register list
)

// Operand is a decoded instruction operand.
type Operand struct {
	Mode AddressingMode
	// Reg is the register number of the mode field.
	Reg uint8

	// Base and Index are the AGU sources. Index is None without an index.
	Base  ExecutionResource
	Index ExecutionResource

	IndexLong bool
	Scale     uint8

	// Full is set for 68020 full-format extension words.
	Full bool
	// MemoryIndirect is set when the full format fetches an intermediate
	// pointer from memory. PostIndexed applies Index after that fetch.
	MemoryIndirect bool
	PostIndexed    bool

	Disp      int32
	OuterDisp int32
	Absolute  uint32
	Immediate uint32

	// ExtWords counts the extension words consumed by this operand.
	ExtWords int
}

// IsMemory reports whether the operand is fetched from or stored to memory.
func (o *Operand) IsMemory() bool {
	switch o.Mode {
	case ModeIndirect, ModePostInc, ModePreDec, ModeDisp, ModeIndex,
		ModeAbsShort, ModeAbsLong, ModePCDisp, ModePCIndex:
		return true
	}
	return false
}

// Register returns the register named by a register-direct operand.
func (o *Operand) Register() ExecutionResource {
	switch o.Mode {
	case ModeDataReg:
		return D(o.Reg)
	case ModeAddrReg:
		return A(o.Reg)
	}
	return None
}

// IeeSource returns the resource the IEE consumes for this operand.
func (o *Operand) IeeSource() ExecutionResource {
	if o.IsMemory() {
		return MemoryOperand
	}
	return o.Register()
}

// AguUpdate returns the address register the AGU writes back, if any.
func (o *Operand) AguUpdate() ExecutionResource {
	if o.Mode == ModePostInc || o.Mode == ModePreDec {
		return A(o.Reg)
	}
	return None
}

func (o *Operand) isControl() bool {
	switch o.Mode {
	case ModeIndirect, ModeDisp, ModeIndex, ModeAbsShort, ModeAbsLong,
		ModePCDisp, ModePCIndex:
		return true
	}
	return false
}

func (o *Operand) isAlterable() bool {
	switch o.Mode {
	case ModeDataReg, ModeAddrReg, ModeIndirect, ModePostInc, ModePreDec,
		ModeDisp, ModeIndex, ModeAbsShort, ModeAbsLong:
		return true
	}
	return false
}

func (o *Operand) isDataAlterable() bool {
	return o.isAlterable() && o.Mode != ModeAddrReg
}

func (o *Operand) isMemoryAlterable() bool {
	return o.isAlterable() && o.IsMemory()
}

func (o *Operand) isData() bool {
	return o.Mode != ModeAddrReg && o.Mode != ModeNone
}

// wordReader walks the extension words of one instruction.
type wordReader struct {
	words []uint16
	pos   int
}

func (r *wordReader) next() (uint16, error) {
	if r.pos >= len(r.words) {
		return 0, ErrTruncated
	}
	w := r.words[r.pos]
	r.pos++
	return w, nil
}

func (r *wordReader) next32() (uint32, error) {
	hi, err := r.next()
	if err != nil {
		return 0, err
	}
	lo, err := r.next()
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

func (r *wordReader) skip(n int) error {
	if r.pos+n > len(r.words) {
		return ErrTruncated
	}
	r.pos += n
	return nil
}

// immediateWords returns the number of extension words of an immediate.
func immediateWords(size OperationSize) int {
	if size == Long {
		return 2
	}
	return 1
}

// readEA decodes the effective address in a 6-bit mode/register field.
// imm is the number of words an immediate operand occupies.
func (r *wordReader) readEA(mode, reg uint8, imm int) (Operand, error) {
	start := r.pos
	o := Operand{Reg: reg & 7}
	var err error

	switch mode & 7 {
	case 0:
		o.Mode = ModeDataReg
	case 1:
		o.Mode = ModeAddrReg
	case 2:
		o.Mode, o.Base = ModeIndirect, A(reg)
	case 3:
		o.Mode, o.Base = ModePostInc, A(reg)
	case 4:
		o.Mode, o.Base = ModePreDec, A(reg)
	case 5:
		o.Mode, o.Base = ModeDisp, A(reg)
		var d uint16
		d, err = r.next()
		o.Disp = int32(int16(d))
	case 6:
		o.Mode, o.Base = ModeIndex, A(reg)
		err = r.readIndex(&o)
	case 7:
		err = r.readSpecialEA(&o, imm)
	}
	if err != nil {
		return Operand{}, err
	}

	o.ExtWords = r.pos - start
	return o, nil
}

func (r *wordReader) readSpecialEA(o *Operand, imm int) error {
	switch o.Reg {
	case 0:
		o.Mode = ModeAbsShort
		w, err := r.next()
		o.Absolute = uint32(int32(int16(w)))
		return err
	case 1:
		o.Mode = ModeAbsLong
		v, err := r.next32()
		o.Absolute = v
		return err
	case 2:
		o.Mode, o.Base = ModePCDisp, PC
		d, err := r.next()
		o.Disp = int32(int16(d))
		return err
	case 3:
		o.Mode, o.Base = ModePCIndex, PC
		return r.readIndex(o)
	case 4:
		o.Mode = ModeImmediate
		switch imm {
		case 1:
			w, err := r.next()
			o.Immediate = uint32(w)
			return err
		case 2:
			v, err := r.next32()
			o.Immediate = v
			return err
		default:
			return r.skip(imm)
		}
	}
	return ErrInvalidAddressingMode
}

// readIndex decodes a brief or full format index extension word.
func (r *wordReader) readIndex(o *Operand) error {
	ext, err := r.next()
	if err != nil {
		return err
	}

	xn := uint8(ext>>12) & 7
	if ext&0x8000 != 0 {
		o.Index = A(xn)
	} else {
		o.Index = D(xn)
	}
	o.IndexLong = ext&0x0800 != 0
	o.Scale = 1 << ((ext >> 9) & 3)

	if ext&0x0100 == 0 {
		o.Disp = int32(int8(ext))
		return nil
	}

	// Full format: BS IS BD-SIZE 0 I/IS
	o.Full = true
	if ext&0x0008 != 0 {
		return ErrInvalidAddressingMode
	}
	if ext&0x0080 != 0 {
		o.Base = None
	}
	indexSuppressed := ext&0x0040 != 0
	if indexSuppressed {
		o.Index = None
	}

	switch (ext >> 4) & 3 {
	case 0:
		return ErrInvalidAddressingMode
	case 2:
		d, err := r.next()
		if err != nil {
			return err
		}
		o.Disp = int32(int16(d))
	case 3:
		v, err := r.next32()
		if err != nil {
			return err
		}
		o.Disp = int32(v)
	}

	iis := ext & 7
	if iis == 0 {
		return nil
	}
	if iis == 4 || (indexSuppressed && iis > 4) {
		return ErrInvalidAddressingMode
	}
	o.MemoryIndirect = true
	o.PostIndexed = iis > 4

	switch iis & 3 {
	case 2:
		d, err := r.next()
		if err != nil {
			return err
		}
		o.OuterDisp = int32(int16(d))
	case 3:
		v, err := r.next32()
		if err != nil {
			return err
		}
		o.OuterDisp = int32(v)
	}
	return nil
}
