// Package report prints the text report of an analysis. Numbers are
// formatted for the reader's language.
package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sarchlab/m60pair/analysis"
	"github.com/sarchlab/m60pair/insts"
	"github.com/sarchlab/m60pair/timing/cache"
	"github.com/sarchlab/m60pair/timing/core"
	"github.com/sarchlab/m60pair/timing/pipeline"
)

// Writer prints report sections to an output stream.
type Writer struct {
	out     io.Writer
	printer *message.Printer
	icache  bool
}

// Option configures a Writer.
type Option func(*Writer)

// WithICache adds the instruction cache footprint section.
func WithICache(enabled bool) Option {
	return func(w *Writer) {
		w.icache = enabled
	}
}

// NewWriter creates a Writer formatting for tag.
func NewWriter(out io.Writer, tag language.Tag, opts ...Option) *Writer {
	w := &Writer{
		out:     out,
		printer: message.NewPrinter(tag),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Writer) printf(format string, args ...any) {
	_, _ = w.printer.Fprintf(w.out, format, args...)
}

// Write prints the complete report of result for the image at path.
// Diagnostics are printed as warnings ahead of the instruction listing.
func (w *Writer) Write(path string, result *analysis.Result) {
	w.Header(path, result.Size)
	w.Warnings(result.Diagnostics)

	if result.Program.ValidCount() == 0 {
		w.NoInstructions()
		return
	}

	instructions := result.Program.Instructions()
	w.Instructions(instructions)

	w.printf("\nStarting pairing analysis...\n")
	w.Pairing(result.Verdicts, len(instructions))

	w.printf("Starting cycle analysis...\n")
	w.Cycles(result.Stats)

	if w.icache {
		w.ICache(result.ICache)
	}
	w.printf("Analysis complete.\n")
}

// Header prints the report title.
func (w *Writer) Header(path string, size int) {
	w.printf("M68060 Binary Analysis for: %s (%d bytes)\n\n", path, size)
}

// Warnings prints one line per diagnostic.
func (w *Writer) Warnings(diagnostics []analysis.Diagnostic) {
	for _, d := range diagnostics {
		w.printf("Warning: Failed to decode instruction: '%s' (opcode: %s) @ 0x%x\n",
			d.Text, opcodes(d.Words), d.Offset)
	}
}

// opcodes lists words with a trailing space each.
func opcodes(words []uint16) string {
	var sb strings.Builder
	for _, word := range words {
		sb.WriteString(hexWord(word))
		sb.WriteByte(' ')
	}
	return sb.String()
}

func hexWord(word uint16) string {
	return fmt.Sprintf("%04x", word)
}

// NoInstructions prints the message for an image without valid code.
func (w *Writer) NoInstructions() {
	w.printf("No valid instructions found in the file.\n")
}

// Instructions prints one line per instruction: index, words,
// disassembly, UOp count and the classifier pairability of the opword.
func (w *Writer) Instructions(instructions []*insts.Instruction) {
	w.printf("Instructions:\n")
	for i, inst := range instructions {
		hex := make([]string, len(inst.Words))
		for j, word := range inst.Words {
			hex[j] = hexWord(word)
		}

		w.printf("  %2d: %-24s %-30s [UOps: %d, %s]\n",
			i+1,
			strings.Join(hex, " "),
			inst.Text,
			len(inst.UOps),
			insts.Classify(inst.Words[0]).Pairability)
	}
}

// Pairing prints every testable adjacent pair verdict and the summary.
// The total counts all adjacent pairs of the listing.
func (w *Writer) Pairing(verdicts []pipeline.PairVerdict, instructions int) {
	w.printf("\nPairing Analysis:\n")
	for _, v := range verdicts {
		if v.Result.Succeeded() {
			w.printf("  Pair %d-%d: SUCCESS - Instructions can pair\n", v.First+1, v.Second+1)
		} else {
			w.printf("  Pair %d-%d: FAILED - %s\n", v.First+1, v.Second+1, v.Result)
		}
	}

	w.printf("\nPairing Summary:\n")
	w.printf("  Successful pairs: %d\n", pipeline.CountSuccesses(verdicts))
	w.printf("  Total adjacent pairs: %d\n", max(instructions-1, 0))
}

// Cycles prints the projected cycle cost.
func (w *Writer) Cycles(stats core.Stats) {
	w.printf("\nProjected Cycle Cost:\n")
	w.printf("  Total Instructions: %d\n", stats.Total)
	w.printf("  Paired Executions: %d\n", stats.Paired)
	w.printf("  Sequential Executions: %d\n", stats.Sequential)
	w.printf("  Estimated Cycles: %d (vs %d unpaired)\n", stats.EstimatedCycles, stats.Total)
	if stats.EstimatedCycles < stats.Total {
		w.printf("  Performance Gain: %.1f%% faster\n", stats.Gain())
	}
}

// ICache prints the instruction cache footprint.
func (w *Writer) ICache(stats cache.Statistics) {
	w.printf("\nInstruction Cache Footprint:\n")
	w.printf("  Lines Touched: %d\n", stats.Lines)
	w.printf("  Fetches: %d (%d hits, %d misses)\n", stats.Fetches, stats.Hits, stats.Misses)
	w.printf("  Evictions: %d\n", stats.Evictions)
}
