// Package core projects the cycle cost of an MC68060 instruction stream.
// It walks the stream once and pairs adjacent instructions greedily using
// the pairability rules of the pipeline package.
package core

import (
	"github.com/sarchlab/m60pair/insts"
	"github.com/sarchlab/m60pair/timing/pipeline"
)

// Stats holds the projected execution counts of a stream.
type Stats struct {
	// Total is the number of valid instructions, the fully serial cost.
	Total int
	// Paired is the number of cycles in which two instructions issued.
	Paired int
	// Sequential is the number of cycles in which one instruction issued,
	// including the end-of-walk adjustment.
	Sequential int
	// EstimatedCycles is Paired + Sequential.
	EstimatedCycles int
}

// Gain returns how much faster the estimate is than the serial baseline,
// in percent. It is zero when pairing saves nothing.
func (s Stats) Gain() float64 {
	if s.Total == 0 || s.EstimatedCycles >= s.Total {
		return 0
	}
	return 100.0 * float64(s.Total-s.EstimatedCycles) / float64(s.Total)
}

// PairFunc decides whether right can issue in the same cycle as left. It
// reports false when the pair cannot be tested at all.
type PairFunc func(left, right *insts.Instruction) (pipeline.PairabilityTestResult, bool)

// CoreOption configures a Core.
type CoreOption func(*Core)

// WithPairFunc replaces the pairability check.
func WithPairFunc(pair PairFunc) CoreOption {
	return func(c *Core) {
		c.pair = pair
	}
}

// Core is the cycle cost estimator.
type Core struct {
	pair PairFunc
}

// NewCore creates a Core that pairs instructions with the MC68060 rules.
func NewCore(opts ...CoreOption) *Core {
	c := &Core{pair: pipeline.PairInstructions}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Estimate walks the instructions left to right. A pair that passes the
// pairability check costs one cycle and both instructions are consumed;
// otherwise the left instruction costs one cycle on its own. Invalid
// instructions cost nothing. A decision is never revisited, so the result
// is a heuristic rather than an optimal schedule.
//
// When fewer than half of the valid instructions were paired, one extra
// sequential cycle is added.
func (c *Core) Estimate(instructions []*insts.Instruction) Stats {
	var s Stats

	for _, inst := range instructions {
		if inst.Pairable() {
			s.Total++
		}
	}

	for i := 0; i < len(instructions); {
		if !instructions[i].Pairable() {
			i++
			continue
		}

		if i+1 < len(instructions) {
			result, ok := c.pair(instructions[i], instructions[i+1])
			if ok && result.Succeeded() {
				s.Paired++
				i += 2
				continue
			}
		}

		s.Sequential++
		i++
	}

	if s.Paired*2 < s.Total {
		s.Sequential++
	}

	s.EstimatedCycles = s.Paired + s.Sequential
	return s
}

// Estimate projects the cycle cost with the default MC68060 rules.
func Estimate(instructions []*insts.Instruction) Stats {
	return NewCore().Estimate(instructions)
}
