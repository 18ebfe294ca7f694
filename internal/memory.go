package internal

import "fmt"

// Memory layout constants
const (
	TotalMemory    = 0x1000
	ProgramStart   = 0x200
	MaxProgramSize = TotalMemory - ProgramStart

	FontAddr      = 0x050
	FontGlyphSize = 5
)

var fontset = []uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Memory is the 4 KB address space of the VM
type Memory struct {
	data [TotalMemory]uint8
}

// Read returns the byte stored at addr
func (m *Memory) Read(addr uint16) (uint8, error) {
	if addr >= TotalMemory {
		return 0, fmt.Errorf("%w: read at %04X", ErrMemoryOutOfRange, addr)
	}
	return m.data[addr], nil
}

// Write stores b at addr
func (m *Memory) Write(addr uint16, b uint8) error {
	if addr >= TotalMemory {
		return fmt.Errorf("%w: write at %04X", ErrMemoryOutOfRange, addr)
	}
	m.data[addr] = b
	return nil
}

// LoadProgram copies a program image to ProgramStart. The remainder of the
// program area is zeroed so that a shorter program never inherits bytes
// from a previous one.
func (m *Memory) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	n := copy(m.data[ProgramStart:], program)
	clear(m.data[ProgramStart+n:])
	return nil
}

// LoadFont copies the 16 hexadecimal digit glyphs to FontAddr
func (m *Memory) LoadFont(font []byte) error {
	if len(font) != 16*FontGlyphSize {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidFont, 16*FontGlyphSize, len(font))
	}
	copy(m.data[FontAddr:], font)
	return nil
}

// FontAddress returns the address of the glyph for the low nibble of digit
func FontAddress(digit uint8) uint16 {
	return FontAddr + uint16(digit&0x0F)*FontGlyphSize
}
