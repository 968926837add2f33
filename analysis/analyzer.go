// Package analysis walks a raw MC68060 code image and runs the pairing,
// cycle and instruction-cache analyses over the recorded instructions.
package analysis

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/sarchlab/m60pair/disasm"
	"github.com/sarchlab/m60pair/insts"
	"github.com/sarchlab/m60pair/loader"
	"github.com/sarchlab/m60pair/timing/cache"
	"github.com/sarchlab/m60pair/timing/core"
	"github.com/sarchlab/m60pair/timing/pipeline"
)

// ErrNoInstructions is returned when an image yields no valid instruction.
var ErrNoInstructions = errors.New("no valid instructions found")

// Result is the outcome of one analysis.
type Result struct {
	// Size is the image size in bytes.
	Size int
	// Program holds the recorded instructions in stream order.
	Program *Program
	// Diagnostics lists the words that failed to decode, in stream order.
	Diagnostics []Diagnostic
	// Verdicts holds the pairability of every testable adjacent pair.
	Verdicts []pipeline.PairVerdict
	// Stats is the greedy cycle estimate.
	Stats core.Stats
	// ICache is the instruction cache footprint of the program.
	ICache cache.Statistics
	// Truncated is set when the walk stopped at the instruction capacity.
	Truncated bool
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the logger for decode traces and truncation warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithDisassembler replaces the display disassembler.
func WithDisassembler(d disasm.Disassembler) Option {
	return func(a *Analyzer) {
		a.disassembler = d
	}
}

// WithEstimator replaces the cycle estimator.
func WithEstimator(c *core.Core) Option {
	return func(a *Analyzer) {
		a.estimator = c
	}
}

// Analyzer runs analyses with a fixed configuration. It keeps no state
// between runs.
type Analyzer struct {
	config       *AnalysisConfig
	decoder      *insts.Decoder
	disassembler disasm.Disassembler
	estimator    *core.Core
	logger       *slog.Logger
}

// NewAnalyzer creates an Analyzer. The configuration is copied.
func NewAnalyzer(config *AnalysisConfig, opts ...Option) (*Analyzer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis config: %w", err)
	}

	a := &Analyzer{
		config:  config.Clone(),
		decoder: insts.NewDecoder(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.disassembler == nil {
		a.disassembler = disasm.New(a.config.CPUType)
	}
	if a.estimator == nil {
		a.estimator = core.NewCore()
	}
	return a, nil
}

// Config returns a copy of the analyzer configuration.
func (a *Analyzer) Config() *AnalysisConfig {
	return a.config.Clone()
}

// Run analyses a raw image. When no valid instruction is found the result
// is still returned, along with ErrNoInstructions, so its diagnostics can
// be reported.
func (a *Analyzer) Run(data []byte) (*Result, error) {
	img := loader.FromBytes("", data)
	result := &Result{
		Size:    img.Size(),
		Program: NewProgram(a.config.MaxInstructions),
	}

	a.walk(img, result)

	instructions := result.Program.Instructions()
	result.Verdicts = pipeline.AnalyzePairs(instructions)
	result.Stats = a.estimator.Estimate(instructions)

	icache := cache.New(a.config.ICache, cache.NewImageBacking(data))
	result.ICache = icache.FetchInstructions(instructions)

	if result.Program.ValidCount() == 0 {
		return result, ErrNoInstructions
	}
	return result, nil
}

// walk decodes the image front to back. Every iteration advances the
// offset by at least one word.
func (a *Analyzer) walk(img *loader.Image, result *Result) {
	size := img.Size()
	for offset := 0; offset < size; {
		if result.Program.Full() {
			result.Truncated = true
			a.logger.Warn("instruction capacity reached, truncating",
				"capacity", result.Program.Capacity(),
				"offset", offset)
			return
		}

		if offset+1 >= size {
			a.logger.Debug("skipping trailing odd byte", "offset", offset)
			offset += 2
			continue
		}

		words := img.Words(offset, insts.MaxWords)
		n, ok := insts.DecodeLength(words)
		if !ok {
			n = 1
		}
		words = words[:n]

		text := a.disassembler.Disassemble(0, words)
		inst, err := a.decoder.Decode(uint32(offset), words)
		inst.Text = text

		if err != nil {
			kind := DecompositionFailed
			if !ok {
				kind = LengthUnclassified
			}
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind:   kind,
				Offset: uint32(offset),
				Words:  inst.Words,
				Text:   text,
				Err:    err,
			})
			a.logger.Debug("decode failed",
				"offset", offset, "kind", kind.String(), "err", err)

			if a.config.RecordInvalid {
				a.record(result, inst)
			}
			offset += n * 2
			continue
		}

		a.logger.Debug("decoded",
			"offset", offset, "words", n, "uops", len(inst.UOps), "text", text)
		a.record(result, inst)
		offset += n * 2
	}
}

func (a *Analyzer) record(result *Result, inst *insts.Instruction) {
	if err := result.Program.Add(inst); err != nil {
		result.Truncated = true
		a.logger.Warn("instruction dropped", "offset", inst.Offset, "err", err)
	}
}
