package insts

import "fmt"

// ResourceKind tags an ExecutionResource.
type ResourceKind uint8

// Resource kinds.
const (
	KindNone ResourceKind = iota // no resource, or an immediate operand
	KindData                     // data register D0-D7
	KindAddr                     // address register A0-A7
	KindPC                       // program counter
	KindMemory                   // the operand fetched from or stored to memory
)

// ExecutionResource names a resource that a UOp reads or writes in the AGU
// or the IEE. Values are only built through D, A and the package variables,
// so two resources are the same hazard source exactly when they are equal.
type ExecutionResource struct {
	kind ResourceKind
	num  uint8
}

// Resources without a register number.
var (
	None          = ExecutionResource{}
	PC            = ExecutionResource{kind: KindPC}
	MemoryOperand = ExecutionResource{kind: KindMemory}
)

// D returns data register Dn.
func D(n uint8) ExecutionResource {
	return ExecutionResource{kind: KindData, num: n & 7}
}

// A returns address register An.
func A(n uint8) ExecutionResource {
	return ExecutionResource{kind: KindAddr, num: n & 7}
}

// SP is the active stack pointer.
var SP = A(7)

// Kind returns the resource tag.
func (r ExecutionResource) Kind() ResourceKind {
	return r.kind
}

// Num returns the register number for data and address registers.
func (r ExecutionResource) Num() uint8 {
	return r.num
}

// IsRegister reports whether r is a data or address register.
func (r ExecutionResource) IsRegister() bool {
	return r.kind == KindData || r.kind == KindAddr
}

// IsDataRegister reports whether r is one of D0-D7.
func (r ExecutionResource) IsDataRegister() bool {
	return r.kind == KindData
}

// IsAddressRegister reports whether r is one of A0-A7.
func (r ExecutionResource) IsAddressRegister() bool {
	return r.kind == KindAddr
}

func (r ExecutionResource) String() string {
	switch r.kind {
	case KindNone:
		return "-"
	case KindData:
		return fmt.Sprintf("d%d", r.num)
	case KindAddr:
		return fmt.Sprintf("a%d", r.num)
	case KindPC:
		return "pc"
	case KindMemory:
		return "<mem>"
	default:
		return "?"
	}
}
