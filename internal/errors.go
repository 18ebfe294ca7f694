package internal

import (
	"errors"
	"fmt"
)

// Errors reported by the VM. Runtime failures are wrapped in a HaltError.
var (
	ErrProgramTooLarge  = errors.New("program size exceeds the maximum size")
	ErrInvalidOpcode    = errors.New("invalid opcode")
	ErrStackOverflow    = errors.New("stack overflow")
	ErrStackUnderflow   = errors.New("stack underflow")
	ErrMemoryOutOfRange = errors.New("memory access out of range")
	ErrInvalidFont      = errors.New("invalid font data")
)

// HaltError describes the condition that stopped the VM.
type HaltError struct {
	Err    error  // one of the sentinel errors above
	PC     uint16 // address of the faulting instruction
	Opcode uint16 // raw opcode at PC
	Depth  int    // call stack depth at the time of the fault
}

func (e *HaltError) Error() string {
	return fmt.Sprintf("halted at %03X (opcode %04X, stack depth %d): %v", e.PC, e.Opcode, e.Depth, e.Err)
}

func (e *HaltError) Unwrap() error {
	return e.Err
}
