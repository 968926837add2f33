// Package pipeline models the MC68060 operand execution pipelines: which
// UOp pairs may issue together in the primary and secondary OEP.
package pipeline

import "github.com/sarchlab/m60pair/insts"

// PairabilityTestResult is the outcome of a pairability check. It is
// either Success or the single failure that rejected the pair.
type PairabilityTestResult int

// Pairability test results.
const (
	Success PairabilityTestResult = iota
	Test2FirstInstructionIsPOEPOnly
	Test2SecondInstructionIsNotPOEPOrSOEP
	Test3SecondInstructionUsesPCRelativeAddressing
	Test4BothInstructionsReferenceMemory
	Test5BaseRegisterDependsOnAguResult
	Test5BaseRegisterDependsOnIeeResult
	Test5IndexRegisterDependsOnAguResult
	Test5IndexRegisterDependsOnIeeResult
	Test6IeeARegisterDependsOnAguResult
	Test6IeeARegisterDependsOnIeeResult
	Test6IeeBRegisterDependsOnAguResult
	Test6IeeBRegisterDependsOnIeeResult
)

func (r PairabilityTestResult) String() string {
	switch r {
	case Success:
		return "Success"
	case Test2FirstInstructionIsPOEPOnly:
		return "Test2Failure_FirstInstructionIs_pOEPOnly"
	case Test2SecondInstructionIsNotPOEPOrSOEP:
		return "Test2Failure_SecondInstructionIsNot_pOEPOrsOEP"
	case Test3SecondInstructionUsesPCRelativeAddressing:
		return "Test3Failure_SecondInstructionUsesPCRelativeAddressing"
	case Test4BothInstructionsReferenceMemory:
		return "Test4Failure_BothInstructionsReferenceMemory"
	case Test5BaseRegisterDependsOnAguResult:
		return "Test5Failure_SecondInstructionBaseRegisterDependsOnFirstInstructionAguResult"
	case Test5BaseRegisterDependsOnIeeResult:
		return "Test5Failure_SecondInstructionBaseRegisterDependsOnFirstInstructionIeeResult"
	case Test5IndexRegisterDependsOnAguResult:
		return "Test5Failure_SecondInstructionIndexRegisterDependsOnFirstInstructionAguResult"
	case Test5IndexRegisterDependsOnIeeResult:
		return "Test5Failure_SecondInstructionIndexRegisterDependsOnFirstInstructionIeeResult"
	case Test6IeeARegisterDependsOnAguResult:
		return "Test6Failure_SecondInstructionIeeARegisterDependsOnFirstInstructionAguResult"
	case Test6IeeARegisterDependsOnIeeResult:
		return "Test6Failure_SecondInstructionIeeARegisterDependsOnFirstInstructionIeeResult"
	case Test6IeeBRegisterDependsOnAguResult:
		return "Test6Failure_SecondInstructionIeeBRegisterDependsOnFirstInstructionAguResult"
	case Test6IeeBRegisterDependsOnIeeResult:
		return "Test6Failure_SecondInstructionIeeBRegisterDependsOnFirstInstructionIeeResult"
	}
	return "Unknown"
}

// Succeeded reports whether the pair may issue in the same cycle.
func (r PairabilityTestResult) Succeeded() bool {
	return r == Success
}

// Rule is one pairability test over the UOp in the pOEP (prev) and the
// candidate for the sOEP (next).
type Rule struct {
	Name  string
	Check func(prev, next *insts.UOp) PairabilityTestResult
}

// Rules returns the pairability tests in the order they are applied.
// Each rule is independent of the others, so evaluation stops at the first
// failure; a lower-numbered failure always hides higher-numbered ones.
func Rules() []Rule {
	h := NewHazardUnit()
	return []Rule{
		{Name: "instruction classification", Check: checkClassification},
		{Name: "sOEP addressing modes", Check: checkAddressingMode},
		{Name: "operand data memory reference", Check: checkMemoryReference},
		{Name: "AGU register conflicts", Check: h.DetectAguHazard},
		{Name: "IEE register conflicts", Check: h.DetectIeeHazard},
	}
}

var defaultRules = Rules()

// CheckPairability decides whether next may issue in the sOEP alongside
// prev in the pOEP. The check is pure: the same pair always yields the
// same result.
func CheckPairability(prev, next *insts.UOp) PairabilityTestResult {
	for _, rule := range defaultRules {
		if result := rule.Check(prev, next); result != Success {
			return result
		}
	}
	return Success
}

// Test 2: a pOEP-only UOp cannot have a companion, and only pOEP|sOEP UOps
// may take the secondary slot.
func checkClassification(prev, next *insts.UOp) PairabilityTestResult {
	if prev.Pairability == insts.POEPOnly {
		return Test2FirstInstructionIsPOEPOnly
	}
	if next.Pairability != insts.POEPOrSOEP {
		return Test2SecondInstructionIsNotPOEPOrSOEP
	}
	return Success
}

// Test 3: the sOEP has no PC-relative addressing. Memory-indirect operands
// need no check here since their pointer fetch is always pOEP-only.
func checkAddressingMode(_, next *insts.UOp) PairabilityTestResult {
	if next.AguBase == insts.PC {
		return Test3SecondInstructionUsesPCRelativeAddressing
	}
	return Success
}

// Test 4: only one operand data memory reference per cycle.
func checkMemoryReference(prev, next *insts.UOp) PairabilityTestResult {
	if prev.AccessesMemory() && next.AccessesMemory() {
		return Test4BothInstructionsReferenceMemory
	}
	return Success
}
