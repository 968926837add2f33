package analysis

import (
	"errors"

	"github.com/sarchlab/m60pair/insts"
)

// ErrCapacityExceeded is returned when adding to a full Program.
var ErrCapacityExceeded = errors.New("instruction capacity exceeded")

// Program is a bounded, ordered list of recorded instructions.
type Program struct {
	capacity     int
	instructions []*insts.Instruction
}

// NewProgram creates an empty Program holding at most capacity
// instructions.
func NewProgram(capacity int) *Program {
	return &Program{
		capacity:     capacity,
		instructions: make([]*insts.Instruction, 0, min(capacity, DefaultMaxInstructions)),
	}
}

// Add appends inst. The program is unchanged when it is already full.
func (p *Program) Add(inst *insts.Instruction) error {
	if p.Full() {
		return ErrCapacityExceeded
	}
	p.instructions = append(p.instructions, inst)
	return nil
}

// Full reports whether no further instruction can be added.
func (p *Program) Full() bool {
	return len(p.instructions) >= p.capacity
}

// Len returns the number of recorded instructions.
func (p *Program) Len() int {
	return len(p.instructions)
}

// Capacity returns the maximum number of instructions.
func (p *Program) Capacity() int {
	return p.capacity
}

// Instructions returns the recorded instructions in stream order.
func (p *Program) Instructions() []*insts.Instruction {
	return p.instructions
}

// ValidCount returns the number of instructions that decomposed into UOps.
func (p *Program) ValidCount() int {
	n := 0
	for _, inst := range p.instructions {
		if inst.Valid {
			n++
		}
	}
	return n
}
