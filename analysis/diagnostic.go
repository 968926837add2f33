package analysis

// DiagnosticKind classifies a non-fatal decode failure.
type DiagnosticKind uint8

// Diagnostic kinds.
const (
	// LengthUnclassified marks a leading word the length decoder does not
	// recognise. The walk continues one word later.
	LengthUnclassified DiagnosticKind = iota
	// DecompositionFailed marks words the UOp decomposer cannot model.
	DecompositionFailed
)

func (k DiagnosticKind) String() string {
	switch k {
	case LengthUnclassified:
		return "length unclassified"
	case DecompositionFailed:
		return "decomposition failed"
	}
	return "unknown"
}

// Diagnostic reports an instruction that was skipped or recorded invalid.
type Diagnostic struct {
	Kind DiagnosticKind
	// Offset is the byte offset of the first word.
	Offset uint32
	// Words are the words the walk advanced over.
	Words []uint16
	// Text is the display disassembly of Words.
	Text string
	// Err is the decoder error.
	Err error
}
