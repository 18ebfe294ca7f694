package internal

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestMemory_ReadWrite(t *testing.T) {
	var m Memory

	assert.NoError(t, m.Write(0xFFF, 0x42))
	b, err := m.Read(0xFFF)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x42), b)

	_, err = m.Read(0x1000)
	assert.True(t, errors.Is(err, ErrMemoryOutOfRange))
	err = m.Write(0x1000, 1)
	assert.True(t, errors.Is(err, ErrMemoryOutOfRange))
}

func TestMemory_LoadProgram(t *testing.T) {
	var m Memory

	assert.NoError(t, m.LoadProgram([]byte{1, 2, 3, 4}))
	assert.NoError(t, m.LoadProgram([]byte{9}))

	b, _ := m.Read(ProgramStart)
	assert.Equal(t, uint8(9), b)
	b, _ = m.Read(ProgramStart + 1)
	assert.Equal(t, uint8(0), b)

	full := make([]byte, MaxProgramSize)
	full[len(full)-1] = 0xAA
	assert.NoError(t, m.LoadProgram(full))
	b, _ = m.Read(0xFFF)
	assert.Equal(t, uint8(0xAA), b)

	err := m.LoadProgram(make([]byte, MaxProgramSize+1))
	assert.True(t, errors.Is(err, ErrProgramTooLarge))
	b, _ = m.Read(0xFFF)
	assert.Equal(t, uint8(0xAA), b)
}

func TestMemory_LoadFont(t *testing.T) {
	var m Memory

	assert.NoError(t, m.LoadFont(fontset))
	b, _ := m.Read(FontAddress(0xF) + 4)
	assert.Equal(t, uint8(0x80), b)

	err := m.LoadFont(fontset[:10])
	assert.True(t, errors.Is(err, ErrInvalidFont))
}

func TestRegisters_Stack(t *testing.T) {
	var r Registers

	_, err := r.Pop()
	assert.True(t, errors.Is(err, ErrStackUnderflow))

	for i := range uint16(StackDepth) {
		assert.NoError(t, r.Push(0x200+i*2))
	}
	err = r.Push(0x300)
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, StackDepth, r.Depth())

	addr, err := r.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x21E), addr)
	assert.Equal(t, StackDepth-1, r.Depth())
}

func TestRegisters_Masking(t *testing.T) {
	var r Registers

	r.SetI(0x1234)
	assert.Equal(t, uint16(0x234), r.I)
	r.SetPC(0xF00E)
	assert.Equal(t, uint16(0x00E), r.PC)
}
