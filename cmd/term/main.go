// Package main implements the terminal frontend of the Chopper CHIP-8 emulator
package main

import (
	"errors"
	"os"

	"github.com/mnafees/chip8vm/internal"
	"github.com/mnafees/chip8vm/pkg/beep"
	"github.com/mnafees/chip8vm/pkg/keymap"
	"github.com/mnafees/chip8vm/pkg/options"
	"github.com/mnafees/chip8vm/pkg/term"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	opts, err := options.ParseFlags("chopper-term", os.Args[1:])
	// stdout carries the frames
	logger := options.CreateLoggerWithOutput(term.LogWriter(os.Stderr), opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *options.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage(os.Stderr)
		} else {
			logger.Error("Invalid options", log.String("error", err.Error()))
		}
		os.Exit(1)
	}
	options.PrintBanner(logger, opts, "Chopper | CHIP-8 Emulator", version, commit, date)
	if opts.Version {
		return
	}

	if err := run(logger, opts); err != nil {
		logger.Error("Emulation stopped", log.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *log.Logger, opts options.Program) error {
	layout, err := keymap.Lookup(opts.Keymap)
	if err != nil {
		return err
	}

	vm, err := internal.NewC8VM(logger)
	if err != nil {
		return err
	}
	if err := vm.LoadProgramFile(opts.Input); err != nil {
		return err
	}

	var buzzer term.Buzzer
	beeper, err := beep.New()
	if err != nil {
		logger.Warn("Audio unavailable", log.String("error", err.Error()))
	} else {
		buzzer = beeper
		defer func() {
			_ = beeper.Close()
		}()
	}

	return term.New(vm, layout, opts.InstructionsPerSecond, buzzer, logger).Run()
}
