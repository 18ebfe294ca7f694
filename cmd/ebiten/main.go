// Package main implements the Ebitengine frontend of the Chopper CHIP-8 emulator
package main

import (
	"errors"
	"os"

	"github.com/mnafees/chip8vm/internal"
	"github.com/mnafees/chip8vm/pkg/beep"
	"github.com/mnafees/chip8vm/pkg/ebitengine"
	"github.com/mnafees/chip8vm/pkg/keymap"
	"github.com/mnafees/chip8vm/pkg/options"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

const title = "Chopper | CHIP-8 Emulator"

func main() {
	opts, err := options.ParseFlags("chopper-ebiten", os.Args[1:])
	logger := options.CreateLogger(opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *options.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage(os.Stderr)
		} else {
			logger.Error("Invalid options", log.String("error", err.Error()))
		}
		os.Exit(1)
	}
	options.PrintBanner(logger, opts, title, version, commit, date)
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

	var buzzer ebitengine.Buzzer
	beeper, err := beep.New()
	if err != nil {
		logger.Warn("Audio unavailable", log.String("error", err.Error()))
	} else {
		buzzer = beeper
		defer func() {
			_ = beeper.Close()
		}()
	}

	game := ebitengine.NewGame(vm, layout, opts.Scale, opts.InstructionsPerSecond, buzzer, logger)
	return game.Run(title)
}
