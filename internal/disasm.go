package internal

import (
	"fmt"
	"io"
)

// Disassemble writes a listing of the program to w, one instruction per
// line with its address and raw opcode:
//
//	0200: 00E0  CLS
//
// The program is assumed to be loaded at ProgramStart. Opcodes that do not
// decode are listed as data words, a trailing odd byte as a data byte.
func Disassemble(w io.Writer, program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes", ErrProgramTooLarge, len(program))
	}

	addr := uint16(ProgramStart)
	for i := 0; i < len(program); i += InstructionSize {
		if i+1 == len(program) {
			_, err := fmt.Fprintf(w, "%04X: %02X    .byte $%02X\n", addr, program[i], program[i])
			return err
		}

		opcode := uint16(program[i])<<8 | uint16(program[i+1])
		inst, _ := Decode(opcode)
		if _, err := fmt.Fprintf(w, "%04X: %04X  %s\n", addr, opcode, inst); err != nil {
			return err
		}
		addr += InstructionSize
	}
	return nil
}
