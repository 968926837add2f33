package disasm

import (
	"fmt"
	"strings"
)

// CPUType selects the instruction set a Formatter accepts.
type CPUType int

// Supported CPU models, oldest first.
const (
	CPU68000 CPUType = iota
	CPU68010
	CPU68020
	CPU68030
	CPU68040
	CPU68060
)

// DefaultCPU is the model used for display disassembly.
const DefaultCPU = CPU68040

var cpuNames = [...]string{"68000", "68010", "68020", "68030", "68040", "68060"}

func (c CPUType) String() string {
	if c < 0 || int(c) >= len(cpuNames) {
		return fmt.Sprintf("CPUType(%d)", int(c))
	}
	return cpuNames[c]
}

// ParseCPUType parses a model name such as "68040", "mc68020" or "020".
func ParseCPUType(s string) (CPUType, error) {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "mc")
	if len(name) == 3 {
		name = "68" + name
	}
	for i, n := range cpuNames {
		if n == name {
			return CPUType(i), nil
		}
	}
	return DefaultCPU, fmt.Errorf("unknown cpu type %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c CPUType) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(cpuNames) {
		return nil, fmt.Errorf("invalid cpu type %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CPUType) UnmarshalText(text []byte) error {
	t, err := ParseCPUType(string(text))
	if err != nil {
		return err
	}
	*c = t
	return nil
}
