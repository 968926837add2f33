package pipeline

import "github.com/sarchlab/m60pair/insts"

// DependencySource indicates which output of the pOEP UOp a register
// read in the sOEP depends on.
type DependencySource int

const (
	// DependNone means the register is not produced by the pOEP UOp.
	DependNone DependencySource = iota
	// DependAguResult means the pOEP AGU writes the register.
	DependAguResult
	// DependIeeResult means the pOEP IEE writes the register.
	DependIeeResult
)

// HazardUnit detects register dependencies between the UOps of a
// candidate pair.
type HazardUnit struct{}

// NewHazardUnit creates a new hazard detection unit.
func NewHazardUnit() *HazardUnit {
	return &HazardUnit{}
}

// Dependency reports whether reg is produced by prev. The AGU result is
// checked first. Only data and address registers carry dependencies.
func (h *HazardUnit) Dependency(reg insts.ExecutionResource, prev *insts.UOp) DependencySource {
	if !reg.IsRegister() {
		return DependNone
	}
	if reg == prev.AguResult {
		return DependAguResult
	}
	if reg == prev.IeeResult {
		return DependIeeResult
	}
	return DependNone
}

// DetectAguHazard is Test 5: the sOEP address calculation cannot use a
// register the pOEP UOp writes. The base register is checked before the
// index register.
func (h *HazardUnit) DetectAguHazard(prev, next *insts.UOp) PairabilityTestResult {
	switch h.Dependency(next.AguBase, prev) {
	case DependAguResult:
		return Test5BaseRegisterDependsOnAguResult
	case DependIeeResult:
		return Test5BaseRegisterDependsOnIeeResult
	}

	switch h.Dependency(next.AguIndex, prev) {
	case DependAguResult:
		return Test5IndexRegisterDependsOnAguResult
	case DependIeeResult:
		return Test5IndexRegisterDependsOnIeeResult
	}

	return Success
}

// DetectIeeHazard is Test 6: the sOEP IEE inputs cannot use a register the
// pOEP UOp writes, unless one of the bypass paths applies.
func (h *HazardUnit) DetectIeeHazard(prev, next *insts.UOp) PairabilityTestResult {
	if h.MoveBypass(prev, next) || h.StoreBypass(prev, next) {
		return Success
	}

	switch h.Dependency(next.IeeA, prev) {
	case DependAguResult:
		return Test6IeeARegisterDependsOnAguResult
	case DependIeeResult:
		return Test6IeeARegisterDependsOnIeeResult
	}

	switch h.Dependency(next.IeeB, prev) {
	case DependAguResult:
		return Test6IeeBRegisterDependsOnAguResult
	case DependIeeResult:
		return Test6IeeBRegisterDependsOnIeeResult
	}

	return Success
}

// MoveBypass reports the MOVE.L <ea>,Rx case: the pOEP result register is
// forwarded to either sOEP IEE input.
func (h *HazardUnit) MoveBypass(prev, next *insts.UOp) bool {
	if prev.IeeOperation != insts.IeeMove || prev.IeeOperationSize != insts.Long {
		return false
	}
	return next.IeeA.IsRegister() && next.IeeA == prev.IeeResult ||
		next.IeeB.IsRegister() && next.IeeB == prev.IeeResult
}

// StoreBypass reports the <op>.L <ea>,Dx / MOVE.L Dx,<mem> case: the
// store data comes straight from the pOEP execute result.
func (h *HazardUnit) StoreBypass(prev, next *insts.UOp) bool {
	return prev.IeeOperationSize == insts.Long &&
		next.IeeOperation == insts.IeeMove &&
		next.IeeOperationSize == insts.Long &&
		next.IeeResult == insts.MemoryOperand &&
		next.IeeA.IsDataRegister() &&
		next.IeeA == prev.IeeResult
}
