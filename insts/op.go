package insts

// Op represents an MC68060 operation.
type Op uint8

// MC68060 operations.
const (
	OpUnknown Op = iota
	OpMOVE
	OpMOVEA
	OpMOVEQ
	OpADD
	OpADDA
	OpADDI
	OpADDQ
	OpADDX
	OpSUB
	OpSUBA
	OpSUBI
	OpSUBQ
	OpSUBX
	OpAND
	OpANDI
	OpOR
	OpORI
	OpEOR
	OpEORI
	OpCMP
	OpCMPA
	OpCMPI
	OpCMPM
	OpCLR
	OpNEG
	OpNEGX
	OpNOT
	OpTST
	OpEXT
	OpEXTB
	OpSWAP
	OpLEA
	OpPEA
	OpEXG
	OpASL
	OpASR
	OpLSL
	OpLSR
	OpROL
	OpROR
	OpROXL
	OpROXR
	OpMULU
	OpMULS
	OpDIVU
	OpDIVS
	OpBTST
	OpBCHG
	OpBCLR
	OpBSET
	OpBFTST
	OpBFEXTU
	OpBFCHG
	OpBFEXTS
	OpBFCLR
	OpBFFFO
	OpBFSET
	OpBFINS
	OpABCD
	OpSBCD
	OpNBCD
	OpScc
	OpDBcc
	OpBcc
	OpBRA
	OpBSR
	OpJMP
	OpJSR
	OpRTS
	OpRTE
	OpRTD
	OpRTR
	OpLINK
	OpUNLK
	OpMOVEM
	OpNOP
	OpTRAP
	OpTRAPV
	OpTRAPcc
	OpCHK
	OpTAS
	OpILLEGAL
	OpBKPT
	OpSTOP
	OpRESET
	OpMOVEfromSR
	OpMOVEtoSR
	OpMOVEfromCCR
	OpMOVEtoCCR
	OpMOVEUSP
	OpFGEN
	OpFBcc

	// Recognised for length decoding, not decomposed.
	OpMOVEP
	OpCAS
	OpCAS2
	OpCMP2
	OpCHK2
	OpMOVES
	OpMOVEC
	OpPACK
	OpUNPK
	OpFScc
	OpFSAVE
	OpFRESTORE
	OpCINV
	OpCPUSH
	OpPFLUSH
	OpMOVE16
)

// Modeled reports whether operations of this kind decompose into UOps.
func (op Op) Modeled() bool {
	return op != OpUnknown && op < OpMOVEP
}

var conditionNames = [16]string{
	"t", "f", "hi", "ls", "cc", "cs", "ne", "eq",
	"vc", "vs", "pl", "mi", "ge", "lt", "gt", "le",
}

// ConditionName returns the mnemonic suffix of an integer condition code.
func ConditionName(cond uint8) string {
	return conditionNames[cond&15]
}

func (op Op) String() string {
	switch op {
	case OpUnknown:
		return "unknown"
	case OpMOVE:
		return "move"
	case OpMOVEA:
		return "movea"
	case OpMOVEQ:
		return "moveq"
	case OpADD:
		return "add"
	case OpADDA:
		return "adda"
	case OpADDI:
		return "addi"
	case OpADDQ:
		return "addq"
	case OpADDX:
		return "addx"
	case OpSUB:
		return "sub"
	case OpSUBA:
		return "suba"
	case OpSUBI:
		return "subi"
	case OpSUBQ:
		return "subq"
	case OpSUBX:
		return "subx"
	case OpAND:
		return "and"
	case OpANDI:
		return "andi"
	case OpOR:
		return "or"
	case OpORI:
		return "ori"
	case OpEOR:
		return "eor"
	case OpEORI:
		return "eori"
	case OpCMP:
		return "cmp"
	case OpCMPA:
		return "cmpa"
	case OpCMPI:
		return "cmpi"
	case OpCMPM:
		return "cmpm"
	case OpCLR:
		return "clr"
	case OpNEG:
		return "neg"
	case OpNEGX:
		return "negx"
	case OpNOT:
		return "not"
	case OpTST:
		return "tst"
	case OpEXT:
		return "ext"
	case OpEXTB:
		return "extb"
	case OpSWAP:
		return "swap"
	case OpLEA:
		return "lea"
	case OpPEA:
		return "pea"
	case OpEXG:
		return "exg"
	case OpASL:
		return "asl"
	case OpASR:
		return "asr"
	case OpLSL:
		return "lsl"
	case OpLSR:
		return "lsr"
	case OpROL:
		return "rol"
	case OpROR:
		return "ror"
	case OpROXL:
		return "roxl"
	case OpROXR:
		return "roxr"
	case OpMULU:
		return "mulu"
	case OpMULS:
		return "muls"
	case OpDIVU:
		return "divu"
	case OpDIVS:
		return "divs"
	case OpBTST:
		return "btst"
	case OpBCHG:
		return "bchg"
	case OpBCLR:
		return "bclr"
	case OpBSET:
		return "bset"
	case OpBFTST:
		return "bftst"
	case OpBFEXTU:
		return "bfextu"
	case OpBFCHG:
		return "bfchg"
	case OpBFEXTS:
		return "bfexts"
	case OpBFCLR:
		return "bfclr"
	case OpBFFFO:
		return "bfffo"
	case OpBFSET:
		return "bfset"
	case OpBFINS:
		return "bfins"
	case OpABCD:
		return "abcd"
	case OpSBCD:
		return "sbcd"
	case OpNBCD:
		return "nbcd"
	case OpScc:
		return "s"
	case OpDBcc:
		return "db"
	case OpBcc:
		return "b"
	case OpBRA:
		return "bra"
	case OpBSR:
		return "bsr"
	case OpJMP:
		return "jmp"
	case OpJSR:
		return "jsr"
	case OpRTS:
		return "rts"
	case OpRTE:
		return "rte"
	case OpRTD:
		return "rtd"
	case OpRTR:
		return "rtr"
	case OpLINK:
		return "link"
	case OpUNLK:
		return "unlk"
	case OpMOVEM:
		return "movem"
	case OpNOP:
		return "nop"
	case OpTRAP:
		return "trap"
	case OpTRAPV:
		return "trapv"
	case OpTRAPcc:
		return "trap"
	case OpCHK:
		return "chk"
	case OpTAS:
		return "tas"
	case OpILLEGAL:
		return "illegal"
	case OpBKPT:
		return "bkpt"
	case OpSTOP:
		return "stop"
	case OpRESET:
		return "reset"
	case OpMOVEfromSR, OpMOVEtoSR, OpMOVEfromCCR, OpMOVEtoCCR, OpMOVEUSP:
		return "move"
	case OpFGEN:
		return "f"
	case OpFBcc:
		return "fb"
	case OpMOVEP:
		return "movep"
	case OpCAS:
		return "cas"
	case OpCAS2:
		return "cas2"
	case OpCMP2:
		return "cmp2"
	case OpCHK2:
		return "chk2"
	case OpMOVES:
		return "moves"
	case OpMOVEC:
		return "movec"
	case OpPACK:
		return "pack"
	case OpUNPK:
		return "unpk"
	case OpFScc:
		return "fs"
	case OpFSAVE:
		return "fsave"
	case OpFRESTORE:
		return "frestore"
	case OpCINV:
		return "cinv"
	case OpCPUSH:
		return "cpush"
	case OpPFLUSH:
		return "pflush"
	case OpMOVE16:
		return "move16"
	}
	return "invalid"
}
