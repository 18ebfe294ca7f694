// Package main implements a CHIP-8 program disassembler
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mnafees/chip8vm/internal"
	"github.com/mnafees/chip8vm/pkg/options"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	input  string
	output string
	quiet  bool
}

func main() {
	opts := readArguments()
	logger := options.CreateLogger(false, opts.quiet)

	if err := disasmFile(opts); err != nil {
		logger.Error("Disassembling failed", log.String("error", err.Error()))
		os.Exit(1)
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet("chopper-disasm", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts optionFlags
	flags.StringVar(&opts.output, "o", "", "name of the output file, printed on console if no name given")
	flags.BoolVar(&opts.quiet, "q", false, "perform operations quietly")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) != 1 {
		printBanner(opts)
		fmt.Printf("usage: chopper-disasm [options] <CHIP-8 program>\n\n")
		flags.SetOutput(os.Stdout)
		flags.PrintDefaults()
		os.Exit(1)
	}
	opts.input = args[0]
	return opts
}

func printBanner(opts optionFlags) {
	if !opts.quiet {
		fmt.Println("[--------------------------------------]")
		fmt.Println("[ chopper-disasm - CHIP-8 disassembler ]")
		fmt.Printf("[--------------------------------------]\n\n")
		fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
	}
}

func disasmFile(opts optionFlags) error {
	program, err := os.ReadFile(opts.input)
	if err != nil {
		return fmt.Errorf("reading file '%s': %w", opts.input, err)
	}

	var outputFile io.WriteCloser
	if opts.output == "" {
		outputFile = os.Stdout
	} else {
		outputFile, err = os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("creating file '%s': %w", opts.output, err)
		}
	}

	if err := internal.Disassemble(outputFile, program); err != nil {
		_ = outputFile.Close()
		return fmt.Errorf("disassembling '%s': %w", opts.input, err)
	}
	return outputFile.Close()
}
