// Package main implements the SDL frontend of the Chopper CHIP-8 emulator
package main

import (
	"errors"
	"os"
	"runtime"

	"github.com/mnafees/chip8vm/internal"
	"github.com/mnafees/chip8vm/pkg/keymap"
	"github.com/mnafees/chip8vm/pkg/options"
	"github.com/mnafees/chip8vm/pkg/sdl"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// SDL must be driven from the main OS thread
func init() {
	runtime.LockOSThread()
}

func main() {
	opts, err := options.ParseFlags("chopper", os.Args[1:])
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
	options.PrintBanner(logger, opts, "Chopper | CHIP-8 Emulator", version, commit, date)
	if opts.Version {
		return
	}

	layout, err := keymap.Lookup(opts.Keymap)
	if err != nil {
		logger.Error("Invalid key mapping", log.String("error", err.Error()))
		os.Exit(1)
	}

	vm, err := internal.NewC8VM(logger)
	if err != nil {
		logger.Error("Creating VM failed", log.String("error", err.Error()))
		os.Exit(1)
	}
	if err := vm.LoadProgramFile(opts.Input); err != nil {
		logger.Error("Loading program failed", log.String("error", err.Error()))
		os.Exit(1)
	}

	io := sdl.NewIO(vm, layout, opts.Scale, opts.InstructionsPerSecond, logger)
	if err := io.SetupWindow("Chopper | CHIP-8 Emulator"); err != nil {
		io.Destroy()
		logger.Error("Setting up window failed", log.String("error", err.Error()))
		os.Exit(1)
	}
	err = io.Loop()
	io.Destroy()
	if err != nil {
		logger.Error("Emulation stopped", log.String("error", err.Error()))
		os.Exit(1)
	}
}
