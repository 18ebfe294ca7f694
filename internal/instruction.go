package internal

import "fmt"

// Op identifies a decoded instruction
type Op uint8

// Instruction set of the original CHIP-8 interpreter. Mnemonics follow
// http://devernay.free.fr/hacks/chip8/C8TECH10.HTM
const (
	OpInvalid Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpJP         // 1nnn
	OpCALL       // 2nnn
	OpSEByte     // 3xkk
	OpSNEByte    // 4xkk
	OpSEReg      // 5xy0
	OpLDByte     // 6xkk
	OpADDByte    // 7xkk
	OpLDReg      // 8xy0
	OpOR         // 8xy1
	OpAND        // 8xy2
	OpXOR        // 8xy3
	OpADDReg     // 8xy4
	OpSUB        // 8xy5
	OpSHR        // 8xy6
	OpSUBN       // 8xy7
	OpSHL        // 8xyE
	OpSNEReg     // 9xy0
	OpLDI        // Annn
	OpJPV0       // Bnnn
	OpRND        // Cxkk
	OpDRW        // Dxyn
	OpSKP        // Ex9E
	OpSKNP       // ExA1
	OpLDVxDT     // Fx07
	OpLDVxK      // Fx0A
	OpLDDTVx     // Fx15
	OpLDSTVx     // Fx18
	OpADDI       // Fx1E
	OpLDF        // Fx29
	OpLDB        // Fx33
	OpLDMemVx    // Fx55
	OpLDVxMem    // Fx65
)

var opNames = [...]string{
	OpInvalid: "???",
	OpCLS:     "CLS",
	OpRET:     "RET",
	OpJP:      "JP",
	OpCALL:    "CALL",
	OpSEByte:  "SE",
	OpSNEByte: "SNE",
	OpSEReg:   "SE",
	OpLDByte:  "LD",
	OpADDByte: "ADD",
	OpLDReg:   "LD",
	OpOR:      "OR",
	OpAND:     "AND",
	OpXOR:     "XOR",
	OpADDReg:  "ADD",
	OpSUB:     "SUB",
	OpSHR:     "SHR",
	OpSUBN:    "SUBN",
	OpSHL:     "SHL",
	OpSNEReg:  "SNE",
	OpLDI:     "LD",
	OpJPV0:    "JP",
	OpRND:     "RND",
	OpDRW:     "DRW",
	OpSKP:     "SKP",
	OpSKNP:    "SKNP",
	OpLDVxDT:  "LD",
	OpLDVxK:   "LD",
	OpLDDTVx:  "LD",
	OpLDSTVx:  "LD",
	OpADDI:    "ADD",
	OpLDF:     "LD",
	OpLDB:     "LD",
	OpLDMemVx: "LD",
	OpLDVxMem: "LD",
}

// String returns the mnemonic of the operation
func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return opNames[OpInvalid]
}

// Instruction is a decoded opcode together with its operand fields
type Instruction struct {
	Op     Op
	Opcode uint16 // raw 16-bit opcode
	X      uint8  // the lower 4 bits of the high byte of the instruction
	Y      uint8  // the upper 4 bits of the low byte of the instruction
	N      uint8  // the lowest 4 bits of the instruction
	KK     uint8  // the lowest 8 bits of the instruction
	NNN    uint16 // the lowest 12 bits of the instruction
}

// Decode splits a 16-bit opcode into its fields and identifies the
// instruction. Unknown opcodes return ErrInvalidOpcode.
func Decode(opcode uint16) (Instruction, error) {
	inst := Instruction{
		Opcode: opcode,
		X:      uint8((opcode >> 8) & 0x000F),
		Y:      uint8((opcode >> 4) & 0x000F),
		N:      uint8(opcode & 0x000F),
		KK:     uint8(opcode & 0x00FF),
		NNN:    opcode & 0x0FFF,
	}

	switch opcode & 0xF000 { // Compare against the first 4 bits of the instruction only
	case 0x0000:
		switch opcode {
		case 0x00E0:
			inst.Op = OpCLS
		case 0x00EE:
			inst.Op = OpRET
		}
	case 0x1000:
		inst.Op = OpJP
	case 0x2000:
		inst.Op = OpCALL
	case 0x3000:
		inst.Op = OpSEByte
	case 0x4000:
		inst.Op = OpSNEByte
	case 0x5000:
		if inst.N == 0x0 {
			inst.Op = OpSEReg
		}
	case 0x6000:
		inst.Op = OpLDByte
	case 0x7000:
		inst.Op = OpADDByte
	case 0x8000:
		switch inst.N {
		case 0x0:
			inst.Op = OpLDReg
		case 0x1:
			inst.Op = OpOR
		case 0x2:
			inst.Op = OpAND
		case 0x3:
			inst.Op = OpXOR
		case 0x4:
			inst.Op = OpADDReg
		case 0x5:
			inst.Op = OpSUB
		case 0x6:
			inst.Op = OpSHR
		case 0x7:
			inst.Op = OpSUBN
		case 0xE:
			inst.Op = OpSHL
		}
	case 0x9000:
		if inst.N == 0x0 {
			inst.Op = OpSNEReg
		}
	case 0xA000:
		inst.Op = OpLDI
	case 0xB000:
		inst.Op = OpJPV0
	case 0xC000:
		inst.Op = OpRND
	case 0xD000:
		inst.Op = OpDRW
	case 0xE000:
		switch inst.KK {
		case 0x9E:
			inst.Op = OpSKP
		case 0xA1:
			inst.Op = OpSKNP
		}
	case 0xF000:
		switch inst.KK {
		case 0x07:
			inst.Op = OpLDVxDT
		case 0x0A:
			inst.Op = OpLDVxK
		case 0x15:
			inst.Op = OpLDDTVx
		case 0x18:
			inst.Op = OpLDSTVx
		case 0x1E:
			inst.Op = OpADDI
		case 0x29:
			inst.Op = OpLDF
		case 0x33:
			inst.Op = OpLDB
		case 0x55:
			inst.Op = OpLDMemVx
		case 0x65:
			inst.Op = OpLDVxMem
		}
	}

	if inst.Op == OpInvalid {
		return inst, fmt.Errorf("%w: %04X", ErrInvalidOpcode, opcode)
	}
	return inst, nil
}

// String formats the instruction in assembler syntax
func (inst Instruction) String() string {
	name := inst.Op.String()
	switch inst.Op {
	case OpCLS, OpRET:
		return name
	case OpJP, OpCALL:
		return fmt.Sprintf("%s $%03X", name, inst.NNN)
	case OpSEByte, OpSNEByte, OpLDByte, OpADDByte, OpRND:
		return fmt.Sprintf("%s V%X, $%02X", name, inst.X, inst.KK)
	case OpSEReg, OpSNEReg, OpLDReg, OpOR, OpAND, OpXOR, OpADDReg, OpSUB, OpSUBN:
		return fmt.Sprintf("%s V%X, V%X", name, inst.X, inst.Y)
	case OpSHR, OpSHL, OpSKP, OpSKNP:
		return fmt.Sprintf("%s V%X", name, inst.X)
	case OpLDI:
		return fmt.Sprintf("%s I, $%03X", name, inst.NNN)
	case OpJPV0:
		return fmt.Sprintf("%s V0, $%03X", name, inst.NNN)
	case OpDRW:
		return fmt.Sprintf("%s V%X, V%X, $%X", name, inst.X, inst.Y, inst.N)
	case OpLDVxDT:
		return fmt.Sprintf("%s V%X, DT", name, inst.X)
	case OpLDVxK:
		return fmt.Sprintf("%s V%X, K", name, inst.X)
	case OpLDDTVx:
		return fmt.Sprintf("%s DT, V%X", name, inst.X)
	case OpLDSTVx:
		return fmt.Sprintf("%s ST, V%X", name, inst.X)
	case OpADDI:
		return fmt.Sprintf("%s I, V%X", name, inst.X)
	case OpLDF:
		return fmt.Sprintf("%s F, V%X", name, inst.X)
	case OpLDB:
		return fmt.Sprintf("%s B, V%X", name, inst.X)
	case OpLDMemVx:
		return fmt.Sprintf("%s [I], V%X", name, inst.X)
	case OpLDVxMem:
		return fmt.Sprintf("%s V%X, [I]", name, inst.X)
	}
	return fmt.Sprintf(".word $%04X", inst.Opcode)
}
