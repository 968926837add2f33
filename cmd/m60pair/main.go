// Package main provides the entry point for m60pair.
// m60pair reports how the instructions of a raw MC68060 binary pair in the
// two operand execution pipelines and projects their cycle cost.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jeandeaual/go-locale"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"

	"github.com/sarchlab/m60pair/analysis"
	"github.com/sarchlab/m60pair/disasm"
	"github.com/sarchlab/m60pair/loader"
	"github.com/sarchlab/m60pair/report"
)

var errUsage = errors.New("expected exactly one binary file")

type options struct {
	configPath      string
	saveConfigPath  string
	cpu             string
	maxInstructions int
	recordInvalid   bool
	icache          bool
	lang            string
	verbose         bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}

	exitCode := 0
	cmd := newRootCommand(stdout, stderr, &exitCode)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(stdout, cmd)
		} else {
			fmt.Fprintf(stdout, "Error: %v\n", err)
		}
		return 1
	}
	return exitCode
}

func newRootCommand(stdout, stderr io.Writer, exitCode *int) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "m60pair [flags] <raw_binary_file>",
		Short: "Analyzes M68K binary for instruction pairing and cycle costs",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errUsage
			}
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			*exitCode = analyze(args[0], opts, cmd.Flags(), stdout, stderr)
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Path to analysis configuration JSON file")
	flags.StringVar(&opts.saveConfigPath, "save-config", "", "Write the effective configuration to this JSON file")
	flags.StringVar(&opts.cpu, "cpu", disasm.DefaultCPU.String(), "CPU variant for the disassembly (68000-68060)")
	flags.IntVar(&opts.maxInstructions, "max-instructions", analysis.DefaultMaxInstructions, "Maximum number of instructions to record")
	flags.BoolVar(&opts.recordInvalid, "record-invalid", false, "Keep undecodable instructions in the listing")
	flags.BoolVar(&opts.icache, "icache", false, "Report the instruction cache footprint")
	flags.StringVar(&opts.lang, "lang", "", "Report language (default: detected from the environment)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose logging on stderr")

	return cmd
}

func printUsage(out io.Writer, cmd *cobra.Command) {
	fmt.Fprintf(out, "M68060 Binary Analyzer\n")
	fmt.Fprintf(out, "Analyzes M68K binary for instruction pairing and cycle costs\n")
	fmt.Fprintf(out, "Usage: %s [flags] <raw_binary_file>\n\n", cmd.Name())
	fmt.Fprintf(out, "Typically created using VASM:\n")
	fmt.Fprintf(out, "vasmm68k_mot -m68060 -Fbin file.s -o file.bin\n")
	fmt.Fprintf(out, "\nFlags:\n%s", cmd.Flags().FlagUsages())
}

// analyze runs one analysis and prints its report.
func analyze(path string, opts *options, flags *pflag.FlagSet, stdout, stderr io.Writer) int {
	logger := newLogger(stderr, opts.verbose)

	config, err := loadConfig(opts, flags)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}
	if opts.saveConfigPath != "" {
		if err := config.SaveConfig(opts.saveConfigPath); err != nil {
			fmt.Fprintf(stdout, "Error: %v\n", err)
			return 1
		}
	}

	img, err := loader.Load(path)
	if err != nil {
		logger.Debug("load failed", "path", path, "err", err)
		fmt.Fprintln(stdout, loadErrorMessage(path, err))
		return 1
	}

	analyzer, err := analysis.NewAnalyzer(config, analysis.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}

	result, err := analyzer.Run(img.Data)
	if result == nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}

	w := report.NewWriter(stdout, reportLanguage(opts.lang, logger), report.WithICache(opts.icache))
	w.Write(path, result)

	if err != nil {
		logger.Debug("analysis failed", "err", err)
		return 1
	}
	return 0
}

// loadConfig reads the configuration file, if any, and applies the flags
// that were set explicitly.
func loadConfig(opts *options, flags *pflag.FlagSet) (*analysis.AnalysisConfig, error) {
	config := analysis.DefaultAnalysisConfig()
	if opts.configPath != "" {
		var err error
		config, err = analysis.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
	}

	if flags.Changed("cpu") {
		cpu, err := disasm.ParseCPUType(opts.cpu)
		if err != nil {
			return nil, err
		}
		config.CPUType = cpu
	}
	if flags.Changed("max-instructions") {
		config.MaxInstructions = opts.maxInstructions
	}
	if flags.Changed("record-invalid") {
		config.RecordInvalid = opts.recordInvalid
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func loadErrorMessage(path string, err error) string {
	switch {
	case errors.Is(err, loader.ErrOpen):
		return fmt.Sprintf("Error: Unable to open file '%s'", path)
	case errors.Is(err, loader.ErrEmptyFile):
		return "Error: Empty or invalid file"
	}
	return "Error: Unable to read file"
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// reportLanguage picks the report language: the --lang flag, then the
// user's locales, then American English.
func reportLanguage(lang string, logger *slog.Logger) language.Tag {
	locales := []string{lang}
	if lang == "" {
		var err error
		locales, err = locale.GetLocales()
		if err != nil {
			logger.Debug("locale detection failed", "err", err)
		}
	}

	for _, l := range locales {
		if tag, err := language.Parse(l); err == nil {
			return tag
		}
	}
	return language.AmericanEnglish
}
