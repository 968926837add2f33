package main

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/m60pair/analysis"
	"github.com/sarchlab/m60pair/disasm"
)

var _ = Describe("m60pair", func() {
	var (
		dir            string
		stdout, stderr bytes.Buffer
	)

	writeImage := func(name string, data ...byte) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, data, 0o644)).To(Succeed())
		return path
	}

	execute := func(args ...string) int {
		stdout.Reset()
		stderr.Reset()
		return run(args, &stdout, &stderr)
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	Describe("usage", func() {
		It("should print usage without arguments", func() {
			Expect(execute()).To(Equal(1))
			Expect(stdout.String()).To(HavePrefix("M68060 Binary Analyzer\n"))
			Expect(stdout.String()).To(ContainSubstring("Usage: m60pair [flags] <raw_binary_file>\n"))
			Expect(stdout.String()).To(ContainSubstring("vasmm68k_mot -m68060 -Fbin file.s -o file.bin\n"))
			Expect(stdout.String()).To(ContainSubstring("--max-instructions"))
		})

		It("should print usage with two files", func() {
			Expect(execute("a.bin", "b.bin")).To(Equal(1))
			Expect(stdout.String()).To(HavePrefix("M68060 Binary Analyzer\n"))
		})

		It("should reject unknown flags", func() {
			Expect(execute("--bogus", "a.bin")).To(Equal(1))
			Expect(stdout.String()).To(HavePrefix("Error: "))
		})
	})

	Describe("file errors", func() {
		It("should report a missing file", func() {
			path := filepath.Join(dir, "missing.bin")
			Expect(execute(path)).To(Equal(1))
			Expect(stdout.String()).To(Equal("Error: Unable to open file '" + path + "'\n"))
		})

		It("should report an empty file", func() {
			path := writeImage("empty.bin")
			Expect(execute(path)).To(Equal(1))
			Expect(stdout.String()).To(Equal("Error: Empty or invalid file\n"))
		})
	})

	Describe("analysis", func() {
		It("should print the report of a valid binary", func() {
			// moveq #1,d0; moveq #2,d1
			path := writeImage("ok.bin", 0x70, 0x01, 0x72, 0x02)
			Expect(execute("--lang", "en", path)).To(Equal(0))

			out := stdout.String()
			Expect(out).To(HavePrefix("M68060 Binary Analysis for: " + path + " (4 bytes)\n\n"))
			Expect(out).To(ContainSubstring("  Pair 1-2: SUCCESS - Instructions can pair\n"))
			Expect(out).To(ContainSubstring("  Performance Gain: 50.0% faster\n"))
			Expect(out).To(HaveSuffix("Analysis complete.\n"))
			Expect(out).NotTo(ContainSubstring("Instruction Cache Footprint"))
		})

		It("should fail on a binary without valid instructions", func() {
			path := writeImage("bad.bin", 0xA0, 0x00, 0xA0, 0x01)
			Expect(execute("--lang", "en", path)).To(Equal(1))
			Expect(stdout.String()).To(ContainSubstring("Warning: Failed to decode instruction:"))
			Expect(stdout.String()).To(HaveSuffix("No valid instructions found in the file.\n"))
		})

		It("should disassemble for the selected cpu", func() {
			// extb.l d0
			path := writeImage("extb.bin", 0x49, 0xC0)
			Expect(execute("--lang", "en", "--cpu", "68000", path)).To(Equal(0))
			Expect(stdout.String()).To(ContainSubstring("dc.w    $49c0; ILLEGAL"))

			Expect(execute("--lang", "en", path)).To(Equal(0))
			Expect(stdout.String()).To(ContainSubstring("extb.l  D0"))
		})

		It("should reject an unknown cpu", func() {
			path := writeImage("ok.bin", 0x70, 0x01)
			Expect(execute("--cpu", "z80", path)).To(Equal(1))
			Expect(stdout.String()).To(ContainSubstring("unknown cpu type"))
		})

		It("should add the instruction cache section on request", func() {
			path := writeImage("ok.bin", 0x70, 0x01, 0x72, 0x02)
			Expect(execute("--lang", "en", "--icache", path)).To(Equal(0))
			Expect(stdout.String()).To(ContainSubstring("Instruction Cache Footprint:\n  Lines Touched: 1\n"))
		})

		It("should log decoding with --verbose", func() {
			path := writeImage("ok.bin", 0x70, 0x01)
			Expect(execute("--lang", "en", "-v", path)).To(Equal(0))
			Expect(stderr.String()).To(ContainSubstring("decoded"))
		})
	})

	Describe("configuration", func() {
		It("should apply a config file and let flags override it", func() {
			config := analysis.DefaultAnalysisConfig()
			config.MaxInstructions = 1
			configPath := filepath.Join(dir, "config.json")
			Expect(config.SaveConfig(configPath)).To(Succeed())

			path := writeImage("nops.bin", 0x4E, 0x71, 0x4E, 0x71, 0x4E, 0x71)
			Expect(execute("--lang", "en", "--config", configPath, path)).To(Equal(0))
			Expect(stdout.String()).To(ContainSubstring("  Total Instructions: 1\n"))
			Expect(stderr.String()).To(ContainSubstring("instruction capacity reached"))

			Expect(execute("--lang", "en", "--config", configPath, "--max-instructions", "3", path)).To(Equal(0))
			Expect(stdout.String()).To(ContainSubstring("  Total Instructions: 3\n"))
		})

		It("should save the effective configuration", func() {
			path := writeImage("ok.bin", 0x70, 0x01)
			savePath := filepath.Join(dir, "saved.json")
			Expect(execute("--lang", "en", "--cpu", "68020", "--save-config", savePath, path)).To(Equal(0))

			saved, err := analysis.LoadConfig(savePath)
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.CPUType).To(Equal(disasm.CPU68020))
		})

		It("should reject an invalid configuration", func() {
			path := writeImage("ok.bin", 0x70, 0x01)
			Expect(execute("--max-instructions", "0", path)).To(Equal(1))
			Expect(stdout.String()).To(ContainSubstring("max_instructions"))
		})
	})
})
