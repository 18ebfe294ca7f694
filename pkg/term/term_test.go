package term

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/mnafees/chip8vm/internal"
	"github.com/mnafees/chip8vm/pkg/keymap"
	"github.com/mnafees/chip8vm/pkg/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

type keyEvent struct {
	code    uint8
	pressed bool
}

type recordingSetter struct {
	events []keyEvent
}

func (r *recordingSetter) SetKey(code uint8, pressed bool) {
	r.events = append(r.events, keyEvent{code, pressed})
}

func TestKeyHold_ReleasesAfterHoldFrames(t *testing.T) {
	rec := &recordingSetter{}
	k := newKeyHold(rec)

	k.press(0xA)
	assert.Equal(t, []keyEvent{{0xA, true}}, rec.events)

	for range holdFrames - 1 {
		k.tick()
	}
	assert.Len(t, rec.events, 1)

	k.tick()
	assert.Equal(t, []keyEvent{{0xA, true}, {0xA, false}}, rec.events)

	// no further releases once expired
	k.tick()
	assert.Len(t, rec.events, 2)
}

func TestKeyHold_RepeatExtendsHold(t *testing.T) {
	rec := &recordingSetter{}
	k := newKeyHold(rec)

	k.press(1)
	k.tick()
	k.tick()
	k.press(1)
	for range holdFrames - 1 {
		k.tick()
	}
	assert.Len(t, rec.events, 2)
	k.tick()
	assert.Equal(t, keyEvent{1, false}, rec.events[2])
}

func TestKeyHold_ReleaseAll(t *testing.T) {
	rec := &recordingSetter{}
	k := newKeyHold(rec)

	k.press(2)
	k.press(0xF)
	k.press(16)
	assert.Len(t, rec.events, 2)

	k.releaseAll()
	assert.Equal(t, []keyEvent{{2, true}, {0xF, true}, {2, false}, {0xF, false}}, rec.events)
}

func newTestTerminal(t *testing.T) (*Terminal, *internal.C8VM, *bytes.Buffer) {
	t.Helper()

	logger := log.NewTestLogger(t)
	vm, err := internal.NewC8VM(logger)
	assert.NoError(t, err)
	layout, err := keymap.Lookup(keymap.Default)
	assert.NoError(t, err)

	term := New(vm, layout, 700, nil, logger)
	buf := &bytes.Buffer{}
	term.out = buf
	return term, vm, buf
}

func TestTerminal_HandleByte(t *testing.T) {
	term, _, _ := newTestTerminal(t)

	assert.Equal(t, actionQuit, term.handleByte(keyCtrlC))
	assert.Equal(t, actionQuit, term.handleByte(keyEscape))
	assert.Equal(t, actionReset, term.handleByte(keyBackspace))

	assert.Equal(t, actionNone, term.handleByte('v'))

	// upper case input maps to the same key
	assert.Equal(t, actionNone, term.handleByte('X'))
	assert.Equal(t, holdFrames, term.keys.frames[0xF])
	assert.Equal(t, holdFrames, term.keys.frames[0x0])

	assert.Equal(t, actionNone, term.handleByte('m'))
}

func TestTerminal_Frame(t *testing.T) {
	term, _, _ := newTestTerminal(t)

	input := make(chan byte, 4)
	input <- '1'
	assert.True(t, term.frame(input))
	assert.Equal(t, holdFrames, term.keys.frames[1])

	input <- keyBackspace
	assert.True(t, term.frame(input))
	assert.Equal(t, 0, term.keys.frames[1])

	input <- keyEscape
	assert.False(t, term.frame(input))

	close(input)
	assert.False(t, term.frame(input))
}

func TestTerminal_Render(t *testing.T) {
	term, vm, buf := newTestTerminal(t)
	// LD I, font 0 (V0 = 0); DRW V0, V0, 5
	assert.NoError(t, vm.LoadProgram([]byte{0xF0, 0x29, 0xD0, 0x05}))
	assert.NoError(t, vm.Step())
	assert.NoError(t, vm.Step())

	term.render()
	assert.False(t, vm.IsDrawFlagSet())

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, cursorHome))
	lines := strings.Split(strings.TrimPrefix(out, cursorHome), "\r\n")
	assert.Len(t, lines, internal.ScreenHeight/2+1)
	assert.True(t, strings.HasPrefix(lines[0], "█▀▀█"))
	assert.True(t, strings.HasPrefix(lines[1], "█  █"))
	assert.True(t, strings.HasPrefix(lines[2], "▀▀▀▀"))
}

func TestLogWriter_ReturnsCarriage(t *testing.T) {
	var buf bytes.Buffer
	logger := options.CreateLoggerWithOutput(LogWriter(&buf), false, false)
	vm, err := internal.NewC8VM(logger)
	assert.NoError(t, err)
	layout, err := keymap.Lookup(keymap.Default)
	assert.NoError(t, err)
	term := New(vm, layout, 700, nil, logger)
	term.out = io.Discard

	input := make(chan byte, 1)
	input <- keyBackspace
	assert.True(t, term.frame(input))

	out := buf.String()
	assert.Contains(t, out, "Program restarted")
	assert.True(t, strings.HasSuffix(out, "\r\n"))
	assert.Equal(t, strings.Count(out, "\n"), strings.Count(out, "\r\n"))
}
