package insts

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Decode errors
	ErrEmpty                 = errors.New("no instruction words")
	ErrTruncated             = errors.New("instruction truncated")
	ErrUnknownOpcode         = errors.New("unknown opcode")
	ErrInvalidAddressingMode = errors.New("invalid addressing mode")

	// Decomposition errors
	ErrUnmodeled      = errors.New("opcode not modeled")
	ErrLengthMismatch = errors.New("word count does not match instruction length")
	ErrTooManyUOps    = errors.New("too many uops")
)

// DecodeError reports the words that failed to decode or decompose.
type DecodeError struct {
	Words []uint16
	Err   error
}

func (e *DecodeError) Error() string {
	var sb strings.Builder
	for i, w := range e.Words {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%04x", w)
	}
	return fmt.Sprintf("%v: %s", e.Err, sb.String())
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
