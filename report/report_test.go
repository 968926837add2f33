package report_test

import (
	"bytes"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/text/language"

	"github.com/sarchlab/m60pair/analysis"
	"github.com/sarchlab/m60pair/report"
	"github.com/sarchlab/m60pair/timing/pipeline"
)

func run(words ...uint16) *analysis.Result {
	data := make([]byte, 0, 2*len(words))
	for _, w := range words {
		data = append(data, byte(w>>8), byte(w))
	}
	analyzer, err := analysis.NewAnalyzer(analysis.DefaultAnalysisConfig())
	Expect(err).NotTo(HaveOccurred())
	result, _ := analyzer.Run(data)
	return result
}

var _ = Describe("Writer", func() {
	var (
		out bytes.Buffer
		w   *report.Writer
	)

	BeforeEach(func() {
		out.Reset()
		w = report.NewWriter(&out, language.English)
	})

	It("should print the full report of a pairable stream", func() {
		// moveq #1,d0; moveq #2,d1
		w.Write("test.bin", run(0x7001, 0x7202))

		expected := "M68060 Binary Analysis for: test.bin (4 bytes)\n\n" +
			"Instructions:\n" +
			fmt.Sprintf("  %2d: %-24s %-30s [UOps: %d, %s]\n", 1, "7001", "moveq   #$1, D0", 1, "pOEP|sOEP") +
			fmt.Sprintf("  %2d: %-24s %-30s [UOps: %d, %s]\n", 2, "7202", "moveq   #$2, D1", 1, "pOEP|sOEP") +
			"\nStarting pairing analysis...\n" +
			"\nPairing Analysis:\n" +
			"  Pair 1-2: SUCCESS - Instructions can pair\n" +
			"\nPairing Summary:\n" +
			"  Successful pairs: 1\n" +
			"  Total adjacent pairs: 1\n" +
			"Starting cycle analysis...\n" +
			"\nProjected Cycle Cost:\n" +
			"  Total Instructions: 2\n" +
			"  Paired Executions: 1\n" +
			"  Sequential Executions: 0\n" +
			"  Estimated Cycles: 1 (vs 2 unpaired)\n" +
			"  Performance Gain: 50.0% faster\n" +
			"Analysis complete.\n"
		Expect(out.String()).To(Equal(expected))
	})

	It("should name the failing test of a rejected pair", func() {
		// nop; moveq #1,d0
		w.Write("test.bin", run(0x4E71, 0x7001))

		Expect(out.String()).To(ContainSubstring(
			"  Pair 1-2: FAILED - " + pipeline.Test2FirstInstructionIsPOEPOnly.String() + "\n"))
		Expect(out.String()).To(ContainSubstring("  Successful pairs: 0\n"))
		Expect(out.String()).To(ContainSubstring("  Estimated Cycles: 3 (vs 2 unpaired)\n"))
		Expect(out.String()).NotTo(ContainSubstring("Performance Gain"))
	})

	It("should list words of multi-word instructions", func() {
		// move.w #$1234,d0
		w.Write("test.bin", run(0x303C, 0x1234))
		Expect(out.String()).To(ContainSubstring(fmt.Sprintf("   1: %-24s", "303c 1234")))
	})

	It("should warn about undecodable words and stop without instructions", func() {
		w.Write("bad.bin", run(0xA000, 0x0108, 0x0004))

		Expect(out.String()).To(Equal(
			"M68060 Binary Analysis for: bad.bin (6 bytes)\n\n" +
				"Warning: Failed to decode instruction: 'dc.w    $a000; ILLEGAL' (opcode: a000 ) @ 0x0\n" +
				"Warning: Failed to decode instruction: 'movep' (opcode: 0108 0004 ) @ 0x2\n" +
				"No valid instructions found in the file.\n"))
	})

	It("should print the instruction cache footprint when enabled", func() {
		w = report.NewWriter(&out, language.English, report.WithICache(true))
		w.Write("test.bin", run(0x7001, 0x7202))

		Expect(out.String()).To(ContainSubstring("\nInstruction Cache Footprint:\n" +
			"  Lines Touched: 1\n" +
			"  Fetches: 2 (1 hits, 1 misses)\n" +
			"  Evictions: 0\n" +
			"Analysis complete.\n"))
	})

	It("should group digits for the reader's language", func() {
		w.Header("big.bin", 1234)
		Expect(out.String()).To(Equal("M68060 Binary Analysis for: big.bin (1,234 bytes)\n\n"))

		out.Reset()
		report.NewWriter(&out, language.German).Header("big.bin", 1234)
		Expect(out.String()).To(Equal("M68060 Binary Analysis for: big.bin (1.234 bytes)\n\n"))
	})
})
