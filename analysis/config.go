package analysis

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/m60pair/disasm"
	"github.com/sarchlab/m60pair/timing/cache"
)

// DefaultMaxInstructions is the number of instructions one analysis
// records before truncating.
const DefaultMaxInstructions = 1000

// AnalysisConfig holds the parameters of one analysis run.
type AnalysisConfig struct {
	// MaxInstructions caps the recorded program. Instructions past the cap
	// are not decoded. Default: 1000.
	MaxInstructions int `json:"max_instructions"`

	// CPUType selects the display disassembly variant. Default: 68040.
	CPUType disasm.CPUType `json:"cpu_type"`

	// RecordInvalid keeps instructions that fail to decompose in the
	// program, marked invalid. Default: false.
	RecordInvalid bool `json:"record_invalid"`

	// ICache is the instruction cache geometry used for the footprint.
	// Default: 8KB, 4-way, 16B lines.
	ICache cache.Config `json:"icache"`
}

// DefaultAnalysisConfig returns an AnalysisConfig with MC68060 defaults.
func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		MaxInstructions: DefaultMaxInstructions,
		CPUType:         disasm.DefaultCPU,
		RecordInvalid:   false,
		ICache:          cache.DefaultICacheConfig(),
	}
}

// LoadConfig loads an AnalysisConfig from a JSON file. Fields missing from
// the file keep their defaults.
func LoadConfig(path string) (*AnalysisConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis config file: %w", err)
	}

	config := DefaultAnalysisConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse analysis config: %w", err)
	}

	return config, nil
}

// SaveConfig writes an AnalysisConfig to a JSON file.
func (c *AnalysisConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize analysis config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write analysis config file: %w", err)
	}

	return nil
}

// Validate checks the capacity and cache geometry.
func (c *AnalysisConfig) Validate() error {
	if c.MaxInstructions <= 0 {
		return fmt.Errorf("max_instructions must be > 0")
	}
	if c.CPUType < disasm.CPU68000 || c.CPUType > disasm.CPU68060 {
		return fmt.Errorf("cpu_type %d is not supported", int(c.CPUType))
	}
	if err := c.ICache.Validate(); err != nil {
		return fmt.Errorf("icache: %w", err)
	}
	return nil
}

// Clone returns a copy of the AnalysisConfig.
func (c *AnalysisConfig) Clone() *AnalysisConfig {
	return &AnalysisConfig{
		MaxInstructions: c.MaxInstructions,
		CPUType:         c.CPUType,
		RecordInvalid:   c.RecordInvalid,
		ICache:          c.ICache,
	}
}
