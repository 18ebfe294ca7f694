package internal

import "fmt"

// StackDepth is the number of return addresses the call stack holds
const StackDepth = 16

const addrMask = 0x0FFF

// Registers holds the general purpose registers, the index register, the
// program counter and the call stack.
type Registers struct {
	V  [16]uint8 // V0-VF, VF doubles as the flag register
	I  uint16    // index register, 12 significant bits
	PC uint16    // program counter, 12 significant bits

	sp    uint8
	stack [StackDepth]uint16
}

// SetI sets the index register, keeping the low 12 bits
func (r *Registers) SetI(addr uint16) {
	r.I = addr & addrMask
}

// SetPC sets the program counter, keeping the low 12 bits
func (r *Registers) SetPC(addr uint16) {
	r.PC = addr & addrMask
}

// Push stores a return address on the call stack
func (r *Registers) Push(addr uint16) error {
	if int(r.sp) >= StackDepth {
		return fmt.Errorf("%w: depth %d", ErrStackOverflow, r.sp)
	}
	r.stack[r.sp] = addr & addrMask
	r.sp++
	return nil
}

// Pop removes and returns the most recent return address
func (r *Registers) Pop() (uint16, error) {
	if r.sp == 0 {
		return 0, ErrStackUnderflow
	}
	r.sp--
	return r.stack[r.sp], nil
}

// Depth returns the number of addresses on the call stack
func (r *Registers) Depth() int {
	return int(r.sp)
}

func (r *Registers) reset() {
	*r = Registers{PC: ProgramStart}
}
