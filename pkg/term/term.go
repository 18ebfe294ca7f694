// Package term implements a terminal frontend that renders the display with
// half block characters and reads the keypad from raw stdin.
package term

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mnafees/chip8vm/internal"
	"github.com/mnafees/chip8vm/pkg/host"
	"github.com/mnafees/chip8vm/pkg/keymap"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

const (
	keyCtrlC     = 0x03
	keyEscape    = 0x1B
	keyBackspace = 0x7F

	// terminals report key presses only, a key stays down for this many frames
	holdFrames = 6

	frameDuration = time.Second / host.TimerFrequency

	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

var errTooSmall = errors.New("terminal too small")

// Buzzer is switched on while the sound timer is running
type Buzzer interface {
	Set(active bool)
}

type action int

const (
	actionNone action = iota
	actionQuit
	actionReset
)

// Terminal drives the VM from a raw mode terminal
type Terminal struct {
	vm     *internal.C8VM
	layout keymap.Layout
	pacer  *host.Pacer
	buzzer Buzzer
	logger *log.Logger

	out  io.Writer
	keys *keyHold
}

// New returns a terminal frontend for the VM. buzzer may be nil.
func New(vm *internal.C8VM, layout keymap.Layout, instructionsPerSecond int,
	buzzer Buzzer, logger *log.Logger) *Terminal {

	return &Terminal{
		vm:     vm,
		layout: layout,
		pacer:  host.NewPacer(instructionsPerSecond, time.Now()),
		buzzer: buzzer,
		logger: logger,
		out:    os.Stdout,
		keys:   newKeyHold(vm),
	}
}

// Run puts stdin into raw mode and runs the VM until Esc or Ctrl+C is
// pressed or the VM halts. The terminal state is restored on return.
func (t *Terminal) Run() error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("stdin is not a terminal")
	}
	if err := checkSize(int(os.Stdout.Fd())); err != nil {
		return err
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	fmt.Fprint(t.out, clearScreen+hideCursor)
	defer fmt.Fprint(t.out, showCursor+"\r\n")
	defer t.setBuzzer(false)

	// the reader is blocked in Read until the next key press and exits with the process
	input := make(chan byte, 16)
	go readInput(os.Stdin, input)

	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()

	for range ticker.C {
		if !t.frame(input) {
			return nil
		}
		if err := t.pacer.Advance(time.Now(), t.vm); err != nil {
			return err
		}
		if t.vm.IsDrawFlagSet() {
			t.render()
		}
		t.setBuzzer(t.vm.SoundActive())
	}
	return nil
}

// frame applies pending input and reports whether to keep running
func (t *Terminal) frame(input <-chan byte) bool {
	t.keys.tick()
	for {
		select {
		case b, ok := <-input:
			if !ok {
				return false
			}
			switch t.handleByte(b) {
			case actionQuit:
				return false
			case actionReset:
				t.keys.releaseAll()
				if err := t.vm.Reset(); err != nil {
					t.logger.Error("Reset failed", log.String("error", err.Error()))
				} else {
					t.logger.Info("Program restarted")
				}
			}
		default:
			return true
		}
	}
}

func (t *Terminal) handleByte(b byte) action {
	switch b {
	case keyCtrlC, keyEscape:
		return actionQuit
	case keyBackspace:
		return actionReset
	}
	if code, ok := t.layout.Key(rune(b)); ok {
		t.keys.press(code)
	}
	return actionNone
}

func (t *Terminal) render() {
	display := t.vm.Display()
	fmt.Fprint(t.out, cursorHome)
	// raw mode does not translate newlines
	for _, line := range strings.Split(strings.TrimSuffix(display.String(), "\n"), "\n") {
		fmt.Fprint(t.out, line, "\r\n")
	}
	t.vm.UnsetDrawFlag()
}

func (t *Terminal) setBuzzer(active bool) {
	if t.buzzer != nil {
		t.buzzer.Set(active)
	}
}

func checkSize(fd int) error {
	width, height, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("getting terminal size: %w", err)
	}
	if width < internal.ScreenWidth || height < internal.ScreenHeight/2 {
		return fmt.Errorf("%w: need %dx%d, have %dx%d", errTooSmall,
			internal.ScreenWidth, internal.ScreenHeight/2, width, height)
	}
	return nil
}

func readInput(r io.Reader, input chan<- byte) {
	defer close(input)
	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			input <- b
		}
		if err != nil {
			return
		}
	}
}

// LogWriter returns a writer for log output while the terminal is in raw
// mode, where a line feed does not return the cursor.
func LogWriter(w io.Writer) io.Writer {
	return &crlfWriter{w: w}
}

type crlfWriter struct {
	w io.Writer
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}

// keyHold emulates key releases for input that only reports presses
type keyHold struct {
	vm     keySetter
	frames [internal.KeyCount]int
}

type keySetter interface {
	SetKey(code uint8, pressed bool)
}

func newKeyHold(vm keySetter) *keyHold {
	return &keyHold{vm: vm}
}

func (k *keyHold) press(code uint8) {
	if int(code) >= len(k.frames) {
		return
	}
	k.frames[code] = holdFrames
	k.vm.SetKey(code, true)
}

// tick ages all held keys by one frame and releases expired ones
func (k *keyHold) tick() {
	for code, left := range k.frames {
		if left == 0 {
			continue
		}
		k.frames[code] = left - 1
		if left == 1 {
			k.vm.SetKey(uint8(code), false)
		}
	}
}

func (k *keyHold) releaseAll() {
	for code, left := range k.frames {
		if left > 0 {
			k.frames[code] = 0
			k.vm.SetKey(uint8(code), false)
		}
	}
}
