package insts

// Capacity limits of one decoded instruction.
const (
	// MaxWords is the longest MC68060 instruction, in 16-bit words.
	MaxWords = 8
	// MaxUOps is the most UOps a single instruction decomposes into.
	MaxUOps = 16
)

// IeeOperation is the kind of work a UOp performs in the IEE.
type IeeOperation uint8

// IEE operations.
const (
	IeeNone IeeOperation = iota
	IeeMove
	IeeAdd
	IeeSub
	IeeAnd
	IeeOr
	IeeEor
	IeeCmp
	IeeTst
	IeeClr
	IeeNeg
	IeeNot
	IeeExt
	IeeSwap
	IeeShift
	IeeLea
	IeeMul
	IeeDiv
	IeeBit
	IeeBitField
	IeeBranch
	IeeOther
)

func (op IeeOperation) String() string {
	switch op {
	case IeeNone:
		return "none"
	case IeeMove:
		return "move"
	case IeeAdd:
		return "add"
	case IeeSub:
		return "sub"
	case IeeAnd:
		return "and"
	case IeeOr:
		return "or"
	case IeeEor:
		return "eor"
	case IeeCmp:
		return "cmp"
	case IeeTst:
		return "tst"
	case IeeClr:
		return "clr"
	case IeeNeg:
		return "neg"
	case IeeNot:
		return "not"
	case IeeExt:
		return "ext"
	case IeeSwap:
		return "swap"
	case IeeShift:
		return "shift"
	case IeeLea:
		return "lea"
	case IeeMul:
		return "mul"
	case IeeDiv:
		return "div"
	case IeeBit:
		return "bit"
	case IeeBitField:
		return "bitfield"
	case IeeBranch:
		return "branch"
	case IeeOther:
		return "other"
	}
	return "invalid"
}

// OperationSize is the data size an operation works on.
type OperationSize uint8

// Operation sizes.
const (
	Unsized OperationSize = iota
	Byte
	Word
	Long
)

func (s OperationSize) String() string {
	switch s {
	case Unsized:
		return ""
	case Byte:
		return "b"
	case Word:
		return "w"
	case Long:
		return "l"
	}
	return "?"
}

// Pairability is the superscalar class of a UOp: which operand execution
// pipelines it may issue to.
type Pairability uint8

// Pairability classes.
const (
	// PairabilityUnknown marks opwords the classifier does not recognise.
	PairabilityUnknown Pairability = iota
	// POEPOnly UOps issue alone in the primary OEP.
	POEPOnly
	// POEPOrSOEP UOps issue in either OEP.
	POEPOrSOEP
	// POEPUntilLast marks the final UOp of a multi-cycle instruction which
	// runs in the primary OEP and frees the secondary OEP on its last cycle.
	POEPUntilLast
)

func (p Pairability) String() string {
	switch p {
	case PairabilityUnknown:
		return "unknown"
	case POEPOnly:
		return "pOEP-only"
	case POEPOrSOEP:
		return "pOEP|sOEP"
	case POEPUntilLast:
		return "pOEP-until-last"
	}
	return "invalid"
}

// UOp is one micro-operation. AGU fields describe the address calculation,
// IEE fields the data operation. Pairing hazards are checked between UOps.
type UOp struct {
	IeeA      ExecutionResource
	IeeB      ExecutionResource
	IeeResult ExecutionResource

	AguBase   ExecutionResource
	AguIndex  ExecutionResource
	AguResult ExecutionResource

	IeeOperation     IeeOperation
	IeeOperationSize OperationSize

	MemoryRead  bool
	MemoryWrite bool

	Pairability Pairability
}

// AccessesMemory reports whether the UOp reads or writes a memory operand.
func (u *UOp) AccessesMemory() bool {
	return u.MemoryRead || u.MemoryWrite
}

// Instruction is one instruction recorded from a binary image.
type Instruction struct {
	// Offset is the byte offset of the first word in the image.
	Offset uint32
	// Words holds the 1..MaxWords instruction words.
	Words []uint16
	// UOps holds the decomposition; empty when the instruction is invalid.
	UOps []UOp
	// Valid is set when the words decomposed into UOps.
	Valid bool
	// Text is the display disassembly. It plays no part in the analysis.
	Text string
}

// Size returns the instruction length in bytes.
func (i *Instruction) Size() uint32 {
	return uint32(len(i.Words)) * 2
}

// FirstUOp returns the first UOp, or nil when there is none.
func (i *Instruction) FirstUOp() *UOp {
	if len(i.UOps) == 0 {
		return nil
	}
	return &i.UOps[0]
}

// LastUOp returns the last UOp, or nil when there is none.
func (i *Instruction) LastUOp() *UOp {
	if len(i.UOps) == 0 {
		return nil
	}
	return &i.UOps[len(i.UOps)-1]
}

// Pairable reports whether the instruction takes part in pairing: it must
// be valid and have at least one UOp.
func (i *Instruction) Pairable() bool {
	return i != nil && i.Valid && len(i.UOps) > 0
}
