package pipeline

import "github.com/sarchlab/m60pair/insts"

// PairVerdict is the pairability result of two adjacent instructions.
type PairVerdict struct {
	// First and Second are indices into the analysed instruction list.
	First  int
	Second int
	Result PairabilityTestResult
}

// PairInstructions checks whether right can dual-issue after left. Only
// the last UOp of left and the first UOp of right are tested. It reports
// false when either instruction is invalid or has no UOps.
func PairInstructions(left, right *insts.Instruction) (PairabilityTestResult, bool) {
	if !left.Pairable() || !right.Pairable() {
		return Success, false
	}
	return CheckPairability(left.LastUOp(), right.FirstUOp()), true
}

// AnalyzePairs lists the verdict of every adjacent pair in which both
// instructions are pairable. Unlike the cycle estimator it does not consume
// instructions: each instruction takes part in up to two verdicts.
func AnalyzePairs(instructions []*insts.Instruction) []PairVerdict {
	var verdicts []PairVerdict
	for i := 0; i+1 < len(instructions); i++ {
		result, ok := PairInstructions(instructions[i], instructions[i+1])
		if !ok {
			continue
		}
		verdicts = append(verdicts, PairVerdict{First: i, Second: i + 1, Result: result})
	}
	return verdicts
}

// CountSuccesses returns how many verdicts allow dual issue.
func CountSuccesses(verdicts []PairVerdict) int {
	n := 0
	for _, v := range verdicts {
		if v.Result.Succeeded() {
			n++
		}
	}
	return n
}
