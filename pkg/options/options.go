// Package options handles the command line options shared by all frontends.
package options

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mnafees/chip8vm/pkg/host"
	"github.com/mnafees/chip8vm/pkg/keymap"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// Size presets for the rendered pixel size
var sizes = map[string]int{
	"small":  10,
	"normal": 20,
	"large":  30,
}

// Program contains the options of a frontend run
type Program struct {
	Input  string // path to the CHIP-8 program
	Keymap string
	Size   string
	Scale  int // rendered size of one CHIP-8 pixel, derived from Size

	InstructionsPerSecond int

	Debug   bool
	Quiet   bool
	Version bool
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage text and flag defaults to w
func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: %s [options] <CHIP-8 program>\n\n", e.flags.Name())
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	fmt.Fprintln(w)
}

// ParseFlags parses the command line arguments, excluding the program name
func ParseFlags(name string, args []string) (Program, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Program
	flags.StringVar(&opts.Keymap, "keymap", keymap.Default, "key mapping to use ("+strings.Join(keymap.Names(), "/")+")")
	flags.StringVar(&opts.Size, "size", "normal", "rendering size ("+strings.Join(sizeNames(), "/")+")")
	flags.IntVar(&opts.InstructionsPerSecond, "ips", host.DefaultInstructionsPerSecond, "instructions executed per second")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging of every executed instruction")
	flags.BoolVar(&opts.Quiet, "q", false, "only log errors")
	flags.BoolVar(&opts.Version, "version", false, "print the version and exit")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, &UsageError{flags: flags}
		}
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	if opts.Version {
		return opts, nil
	}

	rest := flags.Args()
	if len(rest) != 1 {
		return opts, &UsageError{flags: flags, msg: "expected exactly one CHIP-8 program"}
	}
	opts.Input = rest[0]

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// normalizeOptions validates option values and derives dependent fields
func normalizeOptions(opts *Program) error {
	opts.Keymap = strings.ToLower(opts.Keymap)
	if _, err := keymap.Lookup(opts.Keymap); err != nil {
		return err
	}

	opts.Size = strings.ToLower(opts.Size)
	scale, ok := sizes[opts.Size]
	if !ok {
		return fmt.Errorf("unsupported size '%s', valid options: %s", opts.Size, strings.Join(sizeNames(), ", "))
	}
	opts.Scale = scale

	if opts.InstructionsPerSecond <= 0 {
		return fmt.Errorf("instructions per second must be positive, got %d", opts.InstructionsPerSecond)
	}
	return nil
}

func sizeNames() []string {
	names := make([]string, 0, len(sizes))
	for name := range sizes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	return CreateLoggerWithOutput(nil, debug, quiet)
}

// CreateLoggerWithOutput creates a logger writing to w, nil selects stdout
func CreateLoggerWithOutput(w io.Writer, debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Output = w
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// PrintBanner logs the program name and version
func PrintBanner(logger *log.Logger, opts Program, name, version, commit, date string) {
	if opts.Quiet {
		return
	}
	logger.Info(name, log.String("version", buildinfo.Version(version, commit, date)))
}
