// Package insts provides MC68060 instruction decoding.
//
// This package turns a big-endian stream of 16-bit instruction words into
// structured instruction representations and the micro-operations (UOps) the
// operand execution pipelines would run. It supports:
//   - Instruction length decoding for the 68000-68060 integer, FPU, cache
//     and MOVE16 encodings, including 68020+ full-format extension words
//   - Opcode classification into the MC68060 superscalar pairing classes
//   - Decomposition of the integer instruction set into 1..16 UOps, each
//     annotated with the AGU and IEE resources it reads and writes
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	n, ok := insts.DecodeLength(words)      // words of the next instruction
//	inst, err := decoder.Decode(offset, words[:n])
//	fmt.Printf("valid: %v, uops: %d, err: %v\n", inst.Valid, len(inst.UOps), err)
package insts
